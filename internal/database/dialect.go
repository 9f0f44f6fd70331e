package database

import (
	"database/sql"
	"regexp"
	"strconv"
	"strings"
)

// Dialect defines the interface for database-specific behaviour
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN returns the data source name for the connection
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (? to $1 for postgres)
	RewriteQuery(query string) string

	// SupportsLastInsertID returns true if the driver supports LastInsertId()
	SupportsLastInsertID() bool

	// ConfigureConnection applies database-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// MigrationsDir returns the embedded migrations subdirectory for this dialect
	MigrationsDir() string

	// MigrationsTableSQL returns the SQL creating the migrations tracking table
	MigrationsTableSQL() string

	// UpsertQuery builds an INSERT that overwrites updateCols from the
	// inserted values when the conflict target already exists
	UpsertQuery(table string, cols, conflictCols, updateCols []string) string

	// UpsertIncrementQuery builds an INSERT that bumps counterCol by one
	// when the conflict target already exists
	UpsertIncrementQuery(table string, cols, conflictCols []string, counterCol string) string
}

// DialectConfig holds connection parameters for a dialect
type DialectConfig struct {
	// Path is used by SQLite
	Path string

	// URL is used by PostgreSQL and MySQL
	URL string
}

var placeholderPattern = regexp.MustCompile(`\?`)

// numberPlaceholders converts ? placeholders to $1, $2, ...
func numberPlaceholders(query string) string {
	n := 0
	return placeholderPattern.ReplaceAllStringFunc(query, func(string) string {
		n++
		return "$" + strconv.Itoa(n)
	})
}

// placeholders returns a "?, ?, ?" list of the given length
func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "?"
	}
	return strings.Join(parts, ", ")
}

// conflictUpsert builds the ON CONFLICT form shared by SQLite and PostgreSQL
func conflictUpsert(table string, cols, conflictCols, updateCols []string) string {
	var b strings.Builder
	b.WriteString("INSERT INTO " + table + " (" + strings.Join(cols, ", ") + ")")
	b.WriteString(" VALUES (" + placeholders(len(cols)) + ")")
	b.WriteString(" ON CONFLICT (" + strings.Join(conflictCols, ", ") + ") DO UPDATE SET ")
	for i, col := range updateCols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(col + " = excluded." + col)
	}
	return b.String()
}

// conflictIncrement builds the ON CONFLICT counter form shared by SQLite and PostgreSQL
func conflictIncrement(table string, cols, conflictCols []string, counterCol string) string {
	var b strings.Builder
	b.WriteString("INSERT INTO " + table + " (" + strings.Join(cols, ", ") + ")")
	b.WriteString(" VALUES (" + placeholders(len(cols)) + ")")
	b.WriteString(" ON CONFLICT (" + strings.Join(conflictCols, ", ") + ")")
	b.WriteString(" DO UPDATE SET " + counterCol + " = " + table + "." + counterCol + " + 1")
	return b.String()
}
