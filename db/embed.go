// Package db provides the embedded database schema and seed data locations.
package db

import _ "embed"

// Schema contains the idempotent DDL statements for the catalog tables.
//
//go:embed migrations/001_schema.sql
var Schema string
