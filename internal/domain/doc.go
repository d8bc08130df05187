// Package domain contains the core business entities of the task manager:
// the Task itself and the optional filter used to list tasks. It is
// independent of any storage technology or delivery mechanism.
package domain
