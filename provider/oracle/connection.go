package oracle

import (
	stdsql "database/sql"
	"fmt"

	_ "github.com/godror/godror"

	"github.com/sqlshape/sqlshape/pkg/provider"
)

// Connect opens a database/sql handle through the godror driver and wraps it
// as a provider.Querier. dsn is a godror connection string, e.g.
// `user="scott" password="tiger" connectString="db:1521/orclpdb1"`.
func Connect(dsn string) (provider.DBQuerier, error) {
	db, err := stdsql.Open("godror", dsn)
	if err != nil {
		return provider.DBQuerier{}, fmt.Errorf("open oracle: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return provider.DBQuerier{}, fmt.Errorf("ping oracle: %w", err)
	}
	return provider.DBQuerier{DB: db}, nil
}
