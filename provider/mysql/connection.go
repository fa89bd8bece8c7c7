package mysql

import (
	stdsql "database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/sqlshape/sqlshape/pkg/provider"
)

// Connect opens a database/sql handle through the mysql driver and wraps it
// as a provider.Querier.
func Connect(dsn string) (provider.DBQuerier, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return provider.DBQuerier{}, fmt.Errorf("parse mysql dsn: %w", err)
	}
	// Catalog values arrive as text; parseTime keeps temporal scans sane for
	// hosts that reuse the handle for data queries.
	cfg.ParseTime = true

	db, err := stdsql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return provider.DBQuerier{}, fmt.Errorf("open mysql: %w", err)
	}
	db.SetConnMaxLifetime(3 * time.Minute)
	if err := db.Ping(); err != nil {
		db.Close()
		return provider.DBQuerier{}, fmt.Errorf("ping mysql: %w", err)
	}
	return provider.DBQuerier{DB: db}, nil
}
