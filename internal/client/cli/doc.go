// Package cli is the terminal front end of the notes client.
//
// Each screen of the app (auth, note list, compose, note detail) is mounted
// as a terminal screen with its own command set. A REPL reads one command per
// line and dispatches it to the mounted screen; after every command the App
// reconciles the mounted screens with the navigation shell and the route
// stack. Typical flow: sign in, list notes, open or add a note, sign out.
//
// Commands per screen:
//
//	auth:    signin, signup
//	notes:   list, refresh, open <n>, add, delete <n>, signout
//	compose: title, content, attach [paths], detach <n>, draft, save, back
//	note:    show, preview <n>, close, delete, edit, back
//
// help and exit work everywhere. The REPL is started via App.Run, which
// blocks until the user exits or input ends.
package cli
