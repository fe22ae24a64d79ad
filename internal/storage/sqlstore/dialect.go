package sqlstore

import (
	"database/sql"
	"fmt"
	"strconv"
)

// Dialect carries what differs between the supported databases.
type Dialect struct {
	Name        string
	DriverName  string
	placeholder func(n int) string
	schema      string
}

// Open connects to dsn with the dialect's driver and checks the connection.
func Open(d Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.Name, err)
	}
	return db, nil
}

func dollarPlaceholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func questionPlaceholder(int) string {
	return "?"
}
