package generic

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/dialect"
)

// sqlDrivers maps a connection URL subprotocol to the database/sql driver
// name expected to be registered for it. The driver packages themselves are
// blank-imported by the binary, not by this package.
var sqlDrivers = map[string]string{
	"postgres":   "pgx",
	"postgresql": "pgx",
	"sqlserver":  "sqlserver",
	"sqlite":     "sqlite",
}

// DSN derives the database/sql driver name and data source name from a
// connection URL and credentials. A leading "jdbc:" prefix is accepted and
// stripped.
func DSN(rawURL, user, password string) (driverName, dsn string, err error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(rawURL), "jdbc:")
	sub := dialect.Subprotocol(trimmed)

	driverName, ok := sqlDrivers[sub]
	if !ok {
		return "", "", fmt.Errorf("no database/sql driver known for subprotocol %q", sub)
	}

	if driverName == "sqlite" {
		// sqlite URLs carry a bare path after the scheme.
		return driverName, strings.TrimPrefix(trimmed, sub+":"), nil
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", "", fmt.Errorf("parsing connection url: %w", err)
	}
	if user != "" {
		if password != "" {
			u.User = url.UserPassword(user, password)
		} else {
			u.User = url.User(user)
		}
	}
	return driverName, u.String(), nil
}

// Connection lazily opens one handle for the configured URL and reuses it.
// Close releases it; the generic dialect owns its connection, unlike dialects
// that share handles process-wide.
func (d *Dialect) Connection(ctx context.Context) (*sql.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		return d.db, nil
	}

	driverName, dsn, err := DSN(d.cfg.ConnectionURL(), d.cfg.ConnectionUser(), d.cfg.ConnectionPassword())
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s connection: %w", driverName, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s: %w", driverName, err)
	}
	d.db = db
	return db, nil
}

// Close closes the dialect's connection if one was opened.
func (d *Dialect) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}
