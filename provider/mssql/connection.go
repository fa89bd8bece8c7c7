package mssql

import (
	stdsql "database/sql"
	"fmt"

	_ "github.com/microsoft/go-mssqldb"

	"github.com/sqlshape/sqlshape/pkg/provider"
)

// Connect opens a database/sql handle through the sqlserver driver and wraps
// it as a provider.Querier. dsn is a sqlserver:// URL or an ADO connection
// string.
func Connect(dsn string) (provider.DBQuerier, error) {
	db, err := stdsql.Open("sqlserver", dsn)
	if err != nil {
		return provider.DBQuerier{}, fmt.Errorf("open sqlserver: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return provider.DBQuerier{}, fmt.Errorf("ping sqlserver: %w", err)
	}
	return provider.DBQuerier{DB: db}, nil
}
