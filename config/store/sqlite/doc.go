// Package sqlite stores configuration rows in SQLite using modernc.org/sqlite.
package sqlite
