package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"schedule-comparison-service/internal/adapters/repositories"
	"schedule-comparison-service/internal/adapters/source"
	"schedule-comparison-service/internal/config"
	"schedule-comparison-service/internal/domain"
	"schedule-comparison-service/internal/platform/db"
	"schedule-comparison-service/internal/ports"
	"schedule-comparison-service/internal/services"

	"github.com/joho/godotenv"
)

// dbtool initializes the schema and imports both schedule exports into the
// visits table, for servers running with SCHEDULE_SOURCE=db.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var conn *sql.DB
	if cfg.DBDriver == config.DriverPostgres {
		conn, err = db.Open(cfg.DatabaseURL)
	} else {
		conn, err = db.OpenSQLite(cfg.DBPath)
	}
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()

	log.Println("Initializing database schema...")
	store, err := repositories.Setup(ctx, cfg.DBDriver, conn)
	if err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	normalizer := services.NewNormalizer(cfg.WeekStart)
	imports := []struct {
		variant  domain.Variant
		location string
		format   domain.SourceFormat
	}{
		{domain.VariantOriginal, cfg.OriginalSchedule, cfg.OriginalFormat},
		{domain.VariantOptimized, cfg.OptimizedSchedule, cfg.OptimizedFormat},
	}

	for _, imp := range imports {
		log.Printf("Importing %s schedule from %s...", imp.variant, imp.location)
		if err := importSchedule(ctx, normalizer, store.Visits, imp.variant, imp.location, imp.format); err != nil {
			log.Fatalf("import failed: %v", err)
		}
	}
	log.Println("Import complete.")
}

func importSchedule(
	ctx context.Context,
	normalizer services.Normalizer,
	visits ports.VisitWriter,
	variant domain.Variant,
	location string,
	format domain.SourceFormat,
) error {
	src, err := source.Open(location, format)
	if err != nil {
		return fmt.Errorf("import %s: %w", variant, err)
	}

	rs, err := src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("import %s: %w", variant, err)
	}
	rs.Variant = variant

	normalized, stats, err := normalizer.Normalize(rs)
	if err != nil {
		return fmt.Errorf("import %s: %w", variant, err)
	}
	if len(normalized) == 0 {
		return fmt.Errorf("import %s: no usable rows in %s: %w", variant, location, domain.ErrEmptySchedule)
	}

	if err := visits.ReplaceVisits(ctx, variant, normalized); err != nil {
		return fmt.Errorf("import %s: %w", variant, err)
	}

	log.Printf("imported: variant=%s format=%s rows=%d accepted=%d skipped=%d", variant, stats.Format, stats.Rows, stats.Accepted, stats.Skipped)
	return nil
}
