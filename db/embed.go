// Package db provides the embedded schema for the snapshot mirror.
package db

import _ "embed"

// Schema contains the DDL statements for the snapshot tables.
//
//go:embed migrations/001_schema.sql
var Schema string
