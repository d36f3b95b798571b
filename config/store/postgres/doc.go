// Package postgres stores configuration rows in PostgreSQL using pgx.
package postgres
