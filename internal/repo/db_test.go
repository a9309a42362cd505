package repo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/screenlog/go-library-backend/internal/domain"
)

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	_, err := OpenSQLite(filepath.Join(t.TempDir(), "nope", "app.db"))
	if err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
}

func TestOpenSQLite_AndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	// The migrated schema must carry the upsert conflict targets.
	ctx := context.Background()
	if _, err := Watchlist.Add(ctx, db, "u1", 1, domain.MediaTypeMovie); err != nil {
		t.Fatalf("watchlist add on migrated schema: %v", err)
	}
	if _, err := Watchlist.Add(ctx, db, "u1", 1, domain.MediaTypeMovie); err != nil {
		t.Fatalf("watchlist upsert on migrated schema: %v", err)
	}
	if _, err := History.Add(ctx, db, "u1", 1, domain.MediaTypeMovie); err != nil {
		t.Fatalf("history add on migrated schema: %v", err)
	}
	if _, err := History.Add(ctx, db, "u1", 1, domain.MediaTypeTV); err != nil {
		t.Fatalf("history upsert on migrated schema: %v", err)
	}
}
