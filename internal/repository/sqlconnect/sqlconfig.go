package sqlconnect

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/5w1tchy/course-library-api/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ConnectDB opens the pgx-backed pool and pings it before returning.
func ConnectDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}

	conns := cfg.DBMaxOpenConns
	if conns < 1 {
		conns = 10
	}
	db.SetMaxOpenConns(conns)
	db.SetMaxIdleConns(conns)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}
