package exasol

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/dialect"
)

// Connection returns the shared handle for the configured credential triple,
// opening it on first use. Concurrent first calls for the same credentials
// resolve to a single physical connection.
func (d *Dialect) Connection(ctx context.Context) (*sql.DB, error) {
	creds := dialect.Credentials{
		User:     d.cfg.ConnectionUser(),
		Password: d.cfg.ConnectionPassword(),
		URL:      d.cfg.ConnectionURL(),
	}
	return d.conns.Get(ctx, creds, openConnection)
}

// Close is deliberately a no-op. Cached connections are shared across every
// task using the same credentials, and connection lifecycle is owned by the
// caller's pooling layer, so closing here would pull live handles out from
// under other tasks.
// TODO: reference-count cache entries so the last user of a credential
// triple can actually release the connection.
func (d *Dialect) Close() error {
	return nil
}

func openConnection(ctx context.Context, creds dialect.Credentials) (*sql.DB, error) {
	db, err := sql.Open("exasol", buildDSN(creds))
	if err != nil {
		return nil, fmt.Errorf("opening exasol connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to exasol: %w", err)
	}
	return db, nil
}

// buildDSN converts a JDBC-style URL like "jdbc:exa:localhost:8563" into the
// exasol driver's DSN form, "exa:localhost:8563;user=...;password=...".
func buildDSN(creds dialect.Credentials) string {
	dsn := strings.TrimPrefix(strings.TrimSpace(creds.URL), "jdbc:")
	if creds.User != "" {
		dsn += ";user=" + creds.User
	}
	if creds.Password != "" {
		dsn += ";password=" + creds.Password
	}
	return dsn
}
