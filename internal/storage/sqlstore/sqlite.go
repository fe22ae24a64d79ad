package sqlstore

import _ "modernc.org/sqlite" // registers the "sqlite" driver

// SQLite keeps amounts as text: a NUMERIC column would coerce them to floating point.
var SQLite = Dialect{
	Name:        "sqlite",
	DriverName:  "sqlite",
	placeholder: questionPlaceholder,
	schema: `CREATE TABLE IF NOT EXISTS account_snapshots (
	run_id     TEXT      NOT NULL,
	client     INTEGER   NOT NULL,
	available  TEXT      NOT NULL,
	held       TEXT      NOT NULL,
	total      TEXT      NOT NULL,
	locked     BOOLEAN   NOT NULL,
	created_at TIMESTAMP NOT NULL,
	PRIMARY KEY (run_id, client)
)`,
}
