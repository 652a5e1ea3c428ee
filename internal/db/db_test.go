package db

import (
	"context"
	"errors"
	"testing"

	"cuisine/internal/config"
	"cuisine/internal/crud"
	"cuisine/internal/forms"
	"cuisine/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), GormConfig(logger.Silent))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestInitializeRequiresURL(t *testing.T) {
	t.Parallel()

	db, err := Initialize(config.DatabaseConfig{URL: ""})
	if err == nil {
		t.Fatal("expected error when database URL is empty")
	}
	if db != nil {
		t.Fatal("expected returned db handle to be nil on error")
	}
}

func TestDialector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"sqlite:cuisine.db", "sqlite"},
		{"file::memory:?cache=shared", "sqlite"},
		{"postgres://cuisine@localhost/cuisine", "postgres"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			if got := Dialector(tt.url).Name(); got != tt.want {
				t.Fatalf("Dialector(%q).Name() = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestConfigureWithSQLite(t *testing.T) {
	db, err := Configure(config.DatabaseConfig{URL: "sqlite:file:configure?mode=memory&cache=shared", MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Configure returned error: %v", err)
	}
	if Get() != db {
		t.Fatal("expected Configure to install the global handle")
	}
	if !db.Migrator().HasTable(&models.Recipe{}) {
		t.Fatal("expected recipes table to be migrated")
	}
}

func TestAutoMigrateRejectsNilDatabase(t *testing.T) {
	t.Parallel()

	if err := AutoMigrate(nil); err == nil {
		t.Fatal("expected error when database handle is nil")
	}
}

func TestConfigurePropagatesInitializationError(t *testing.T) {
	t.Parallel()

	if _, err := Configure(config.DatabaseConfig{}); err == nil {
		t.Fatal("expected configuration error when initialize fails")
	}
}

func TestMustConfigurePanicsOnError(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when configuration fails")
		}
	}()

	MustConfigure(config.DatabaseConfig{})
}

func TestStoreCRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(openTestDatabase(t))

	italy := &models.Country{Name: "Italy", Continent: "Europe"}
	if err := store.Create(ctx, italy); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if italy.ID == 0 {
		t.Fatal("expected identity to be assigned")
	}
	if err := store.Create(ctx, &models.Country{Name: "France"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	loaded := &models.Country{}
	if err := store.Get(ctx, loaded, italy.ID); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	loaded.Continent = "Southern Europe"
	if err := store.Update(ctx, loaded); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	var countries []models.Country
	if err := store.List(ctx, &countries); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(countries) != 2 || countries[0].Continent != "Southern Europe" {
		t.Fatalf("unexpected countries: %+v", countries)
	}

	if err := store.Delete(ctx, loaded); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := store.Get(ctx, &models.Country{}, italy.ID); !errors.Is(err, crud.ErrNotFound) {
		t.Fatalf("expected crud.ErrNotFound after delete, got %v", err)
	}
}

func TestStoreChoices(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDatabase(t)
	store := NewStore(db)

	for _, name := range []string{"Soups", "Desserts", "Appetizers"} {
		if err := db.Create(&models.Category{Name: name, IsPublished: true}).Error; err != nil {
			t.Fatalf("seed category: %v", err)
		}
	}

	choices, err := store.Choices(ctx, forms.SourceCategory)
	if err != nil {
		t.Fatalf("Choices returned error: %v", err)
	}
	if len(choices) != 3 || choices[0].Label != "Appetizers" || choices[0].Value != "3" {
		t.Fatalf("unexpected choices: %+v", choices)
	}

	if _, err := store.Choices(ctx, forms.Source("vintage")); err == nil {
		t.Fatal("expected error for unknown source")
	}
}
