// Command exadialect renders dialect SQL for a logical table schema and
// checks database connectivity. It is a development companion to the dialect
// packages: the connector framework consumes them as a library.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/config"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/dialect"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/exitcodes"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/logging"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/schema"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/sqlbuilder"

	// Dialect registration.
	_ "github.com/smaspe/kafka-connect-jdbc-exasol/internal/dialect/exasol"
	_ "github.com/smaspe/kafka-connect-jdbc-exasol/internal/dialect/generic"

	// database/sql drivers for the subprotocols the generic dialect serves.
	_ "github.com/exasol/exasol-driver-go"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "exadialect",
		Usage:   "Render dialect SQL and check database connectivity",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "verbosity",
				Value: "info",
				Usage: "Log verbosity level (debug, info, warn, error)",
			},
		},
		Before: func(c *cli.Context) error {
			level, err := logging.ParseLevel(c.String("verbosity"))
			if err != nil {
				return err
			}
			logging.SetLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     "Render DDL and upsert statements for a schema file",
				ArgsUsage: "<schema.yaml>",
				Action:    renderStatements,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dialect",
						Aliases: []string{"d"},
						Value:   "exasol",
						Usage:   "Dialect to render with",
					},
				},
			},
			{
				Name:      "types",
				Usage:     "Show the SQL type mapping for each field of a schema file",
				ArgsUsage: "<schema.yaml>",
				Action:    showTypes,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dialect",
						Aliases: []string{"d"},
						Value:   "exasol",
						Usage:   "Dialect to resolve types with",
					},
				},
			},
			{
				Name:   "check",
				Usage:  "Open a connection using the configured credentials and ping it",
				Action: checkConnection,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Value:   "config.yaml",
						Usage:   "Path to configuration file",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logging.Error("%v", err)
		os.Exit(exitcodes.FromError(err))
	}
}

// dialectFor builds a dialect instance for offline statement rendering. No
// connection settings are needed, so the config carries only the override.
func dialectFor(name string) (dialect.Dialect, error) {
	p, err := dialect.Get(name)
	if err != nil {
		return nil, err
	}
	return p.Create(&config.Config{Dialect: name})
}

func loadSchemaArg(c *cli.Context) (*schema.TableSchema, error) {
	if c.NArg() != 1 {
		return nil, exitcodes.NewExitError(fmt.Errorf("expected exactly one schema file argument"), exitcodes.ConfigError)
	}
	ts, err := schema.LoadFile(c.Args().First())
	if err != nil {
		return nil, exitcodes.NewExitError(err, exitcodes.ConfigError)
	}
	return ts, nil
}

func renderStatements(c *cli.Context) error {
	ts, err := loadSchemaArg(c)
	if err != nil {
		return err
	}
	d, err := dialectFor(c.String("dialect"))
	if err != nil {
		return err
	}

	table := sqlbuilder.TableRef{Catalog: ts.Catalog, Schema: ts.Schema, Name: ts.Table}
	keyCols := columnRefs(table, ts.KeyFields())
	nonKeyCols := columnRefs(table, ts.NonKeyFields())
	allCols := columnRefs(table, ts.Fields)

	create, err := d.BuildCreateTable(table, ts.Fields)
	if err != nil {
		return err
	}
	fmt.Printf("-- create table\n%s\n\n", create)

	drop := d.BuildDropTable(table, dialect.DropOptions{IfExists: true, Cascade: true})
	fmt.Printf("-- drop table\n%s\n\n", drop)

	alters, err := d.BuildAlterTable(table, ts.Fields)
	if err != nil {
		return err
	}
	fmt.Println("-- add columns")
	for _, stmt := range alters {
		fmt.Println(stmt)
	}
	fmt.Println()

	fmt.Printf("-- insert\n%s\n\n", d.BuildInsert(table, allCols))

	if len(keyCols) == 0 {
		logging.Warn("schema has no key fields; skipping upsert (an upsert requires at least one key column)")
		return nil
	}
	upsert, err := d.BuildUpsert(table, keyCols, nonKeyCols)
	if err != nil {
		return err
	}
	fmt.Printf("-- upsert\n%s\n", upsert)
	return nil
}

func showTypes(c *cli.Context) error {
	ts, err := loadSchemaArg(c)
	if err != nil {
		return err
	}
	d, err := dialectFor(c.String("dialect"))
	if err != nil {
		return err
	}

	for _, f := range ts.Fields {
		sqlType, err := d.SQLType(f)
		if err != nil {
			return err
		}
		code, err := d.SQLTypeCode(f)
		if err != nil {
			return err
		}
		fmt.Printf("%-24s %-16s code=%d\n", f.String(), sqlType, code)
	}
	return nil
}

func checkConnection(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return exitcodes.NewExitError(err, exitcodes.ConfigError)
	}
	if level, err := logging.ParseLevel(cfg.Verbosity); err == nil && !c.IsSet("verbosity") {
		logging.SetLevel(level)
	}

	p, err := dialect.ForConfig(cfg)
	if err != nil {
		return err
	}
	d, err := p.Create(cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	logging.Debug("check %s: dialect=%s url subprotocol=%s", runID, d.Name(), dialect.Subprotocol(cfg.ConnectionURL()))

	db, err := d.Connection(ctx)
	if err != nil {
		return exitcodes.NewExitError(err, exitcodes.ConnectionError)
	}
	if err := db.PingContext(ctx); err != nil {
		return exitcodes.NewExitError(fmt.Errorf("pinging database: %w", err), exitcodes.ConnectionError)
	}

	logging.Info("check %s: connection OK (dialect=%s)", runID, d.Name())
	return nil
}

func columnRefs(table sqlbuilder.TableRef, fields []schema.Field) []sqlbuilder.ColumnRef {
	cols := make([]sqlbuilder.ColumnRef, len(fields))
	for i, f := range fields {
		cols[i] = sqlbuilder.ColumnRef{Table: table, Name: f.Name}
	}
	return cols
}
