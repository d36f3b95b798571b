// Package store holds what the SQL-backed row stores share.
//
// Both stores keep settings in one table with a text key and a text value
// that usually holds JSON:
//
//	key        TEXT PRIMARY KEY
//	json_value TEXT NOT NULL
//	updated_at timestamp
//
// They implement rows.RowReader, so rows.FromReader turns them into a
// configuration source.
package store
