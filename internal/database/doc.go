// Package database records careermap crawl runs in SQLite.
//
// Every crawl, successful or not, is stored with its mapping and the list of
// pages it fetched (URL, status and SHA3-256 fingerprint). The history
// command lists runs and diffs the two most recent successful runs of a mode
// to show categories and job ids that appeared or disappeared, and whether
// the root listing page changed.
//
// The database is a single file (careermap.db) under the XDG data directory.
// modernc.org/sqlite is pure Go, so no cgo toolchain is needed.
package database
