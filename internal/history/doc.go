// Package history keeps a local log of probe outcomes in a SQLite
// database under the user's state directory. Keys are stored in masked
// form only.
package history
