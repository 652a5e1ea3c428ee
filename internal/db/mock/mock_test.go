package mock

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"cuisine/models"
)

func TestNewSeedsExpectedRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := New(ctx)
	if err != nil {
		t.Fatalf("mock database initialization failed: %v", err)
	}

	var recipes []models.Recipe
	if err := db.WithContext(ctx).Find(&recipes).Error; err != nil {
		t.Fatalf("query recipes: %v", err)
	}
	if len(recipes) != 4 {
		t.Fatalf("expected 4 seeded recipes, got %d", len(recipes))
	}

	var forks int64
	if err := db.WithContext(ctx).Model(&models.Recipe{}).Where("fork_origin_id IS NOT NULL").Count(&forks).Error; err != nil {
		t.Fatalf("count forks: %v", err)
	}
	if forks != 1 {
		t.Fatalf("expected one seeded fork, got %d", forks)
	}

	var ingredients []models.Ingredient
	if err := db.WithContext(ctx).Find(&ingredients).Error; err != nil {
		t.Fatalf("query ingredients: %v", err)
	}
	if len(ingredients) == 0 {
		t.Fatal("expected seeded ingredients")
	}

	var wine models.Wine
	if err := db.WithContext(ctx).Preload("GrapeTypes").Where("name = ?", "Barolo").First(&wine).Error; err != nil {
		t.Fatalf("query wine: %v", err)
	}
	if len(wine.GrapeTypes) != 1 || wine.GrapeTypes[0].Name != "Nebbiolo" {
		t.Fatalf("expected Barolo to be linked to Nebbiolo, got %+v", wine.GrapeTypes)
	}

	var user models.User
	if err := db.WithContext(ctx).First(&user).Error; err != nil {
		t.Fatalf("query user: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(Password)); err != nil {
		t.Fatalf("unexpected password hash: %v", err)
	}
}

func TestNewOpensIndependentDatabases(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	first, err := New(ctx)
	if err != nil {
		t.Fatalf("first mock database: %v", err)
	}
	if _, err := New(ctx); err != nil {
		t.Fatalf("second mock database: %v", err)
	}

	var users int64
	if err := first.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 2 {
		t.Fatalf("expected 2 users in the first database, got %d", users)
	}
}
