// Package session persists committed edit state per asset so
// non-destructive edits survive process restarts. Records live in a SQLite
// database inside the configured session directory; a file lock guards the
// database against concurrent cliplab instances.
//
// A Record is a plain snapshot of the controller and cover state. Snapshot
// captures one; Apply replays one through the controller's public
// operations so every restored value passes the same validation as live
// edits.
package session
