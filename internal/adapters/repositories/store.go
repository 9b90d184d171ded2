package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"schedule-comparison-service/internal/ports"
)

// Store bundles the SQL adapters of one database.
type Store struct {
	Visits ports.VisitWriter
	Runs   ports.RunArchive
}

// Setup initializes the schema for driver ("sqlite" or "postgres") and
// returns the matching adapters.
func Setup(ctx context.Context, driver string, db *sql.DB) (Store, error) {
	switch driver {
	case "sqlite":
		if err := InitSchema(db); err != nil {
			return Store{}, fmt.Errorf("setup store: %w", err)
		}
		return Store{Visits: NewSqliteVisitRepository(db), Runs: NewSqliteRunRepository(db)}, nil
	case "postgres":
		if err := InitPostgresSchema(ctx, db); err != nil {
			return Store{}, fmt.Errorf("setup store: %w", err)
		}
		return Store{Visits: NewSQLVisitRepository(db), Runs: NewSQLRunRepository(db)}, nil
	}
	return Store{}, fmt.Errorf("setup store: unsupported driver %q", driver)
}
