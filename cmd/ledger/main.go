package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sheikh-saqib/payments-ledger-replay/internal/config"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/csvio"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/events"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/events/kafka"
	interfaces "github.com/sheikh-saqib/payments-ledger-replay/internal/interfaces"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/ledger"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/logging"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/replay"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/storage/memory"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/storage/sqlstore"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) != 2 {
		config.Exitf("usage: %s <transactions.csv>", os.Args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		config.Exitf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		config.Exitf("logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger, os.Args[1], os.Stdout)
	stop()
	logger.Sync()
	if err != nil {
		config.Exitf("%v", err)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger, path string, stdout io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	src, err := csvio.NewDecoder(f, csvio.WithTrimSpace(cfg.CSVTrim))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	sinks, closeSinks, err := openSinks(ctx, cfg, stdout)
	if err != nil {
		return err
	}
	defer closeSinks()

	engine := replay.NewEngine(ledger.NewLedger(memory.NewMemoryTransactionLog()), logger)
	if _, err := engine.Run(ctx, src); err != nil {
		return err
	}
	return engine.Export(ctx, sinks...)
}

// openSinks connects every sink selected in cfg before any input is processed, so a bad
// DSN or broker list fails fast. The returned func releases whatever was opened.
func openSinks(ctx context.Context, cfg config.Config, stdout io.Writer) ([]interfaces.SnapshotSink, func(), error) {
	var (
		sinks   []interfaces.SnapshotSink
		closers []io.Closer
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i].Close()
		}
	}

	for _, name := range cfg.Sinks {
		switch name {
		case config.SinkCSV:
			sinks = append(sinks, csvio.NewWriter(stdout))
		case config.SinkPostgres, config.SinkSQLite:
			dialect, dsn := sqlstore.Postgres, cfg.PostgresDSN
			if name == config.SinkSQLite {
				dialect, dsn = sqlstore.SQLite, cfg.SQLitePath
			}
			db, err := sqlstore.Open(dialect, dsn)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			closers = append(closers, db)

			store := sqlstore.NewSnapshotStore(db, dialect)
			if err := store.Migrate(ctx); err != nil {
				closeAll()
				return nil, nil, err
			}
			sinks = append(sinks, store)
		case config.SinkKafka:
			publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
			closers = append(closers, publisher)
			sinks = append(sinks, events.NewSnapshotPublisher(publisher))
		}
	}
	return sinks, closeAll, nil
}
