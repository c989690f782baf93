// Package screens holds the screen controllers of the notes client: Auth,
// NoteList, AddNote and NoteDetail.
//
// A controller owns its screen state as a State value and runs backend work
// through Launch, bound to the screen's Lifetime. Closing the lifetime
// cancels outstanding work and drops its results, so a screen that was
// navigated away from is never updated. Failures end up as an alert and the
// state returns to where it was before the attempt.
//
// Controllers never print; they talk to the user through Alerter and
// Confirmer and move between routes through Navigator.
package screens
