// Package postgres implements the store interfaces against PostgreSQL.
// Each word list is a single JSONB document row; writes are conditional on
// a version column so concurrent writers cannot silently overwrite each
// other (the classic read-modify-write lost update).
package postgres
