package database

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm/logger"
)

func TestConnect_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.db")

	db, err := Connect(path, logger.Silent)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer Close(db)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	if !db.Migrator().HasTable("alerts") {
		t.Error("expected alerts table after migration")
	}
}

func TestConnect_Memory(t *testing.T) {
	db, err := Connect(":memory:", logger.Silent)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer Close(db)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	store := NewAlertStore(db)
	alert := &Alert{ProviderID: 1, Severity: SeverityInfo, WindowDays: 30, Message: "m", Channel: "ui"}
	if err := store.Insert(alert); err != nil {
		t.Fatalf("failed to insert through migrated schema: %v", err)
	}
}

func TestClose(t *testing.T) {
	db, err := Connect(":memory:", logger.Silent)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	if err := Close(db); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
}
