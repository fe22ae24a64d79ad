package sqlstore

import _ "github.com/lib/pq" // registers the "postgres" driver

// Postgres stores amounts as NUMERIC with the ledger's four-digit scale.
var Postgres = Dialect{
	Name:        "postgres",
	DriverName:  "postgres",
	placeholder: dollarPlaceholder,
	schema: `CREATE TABLE IF NOT EXISTS account_snapshots (
	run_id     TEXT          NOT NULL,
	client     INTEGER       NOT NULL,
	available  NUMERIC(24,4) NOT NULL,
	held       NUMERIC(24,4) NOT NULL,
	total      NUMERIC(24,4) NOT NULL,
	locked     BOOLEAN       NOT NULL,
	created_at TIMESTAMPTZ   NOT NULL,
	PRIMARY KEY (run_id, client)
)`,
}
