// Package models contains the data types shared by the backend client, the
// services and the screens: notes, media references, pending media files and
// sessions.
package models
