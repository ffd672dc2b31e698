// Package cli implements the interactive todokeeper client: a REPL over the
// session manager and the API client.
//
// The visible todo list is plain local state reconciled from server-confirmed
// entities after each mutation; it is never mutated ahead of a confirming
// round trip, except that a confirmed delete removes the row immediately.
// If two mutations on the same todo are issued in quick succession, the last
// response to resolve wins locally. That race is accepted, not guarded.
//
// Errors from form-style commands (signup, signin, add, edit) are shown
// inline. Errors from row actions (toggle, rm) are only logged and the list
// is left unchanged.
package cli
