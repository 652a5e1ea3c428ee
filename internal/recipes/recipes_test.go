package recipes

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"cuisine/internal/db/mock"
	"cuisine/internal/forms"
	"cuisine/models"
)

var fixedNow = time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)

const (
	luca  uint = 1
	marta uint = 2
	soup  uint = 1
	tart  uint = 3
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := mock.New(context.Background())
	if err != nil {
		t.Fatalf("mock database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	service := NewService(db)
	service.now = func() time.Time { return fixedNow }
	return service, db
}

func countRecipes(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Recipe{}).Count(&count).Error; err != nil {
		t.Fatalf("count recipes: %v", err)
	}
	return count
}

func TestForkCopiesRecipeAndChildren(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, db := newTestService(t)

	source, err := service.Get(ctx, soup)
	if err != nil {
		t.Fatalf("load source: %v", err)
	}

	fork, err := service.Fork(ctx, soup, marta)
	if err != nil {
		t.Fatalf("Fork returned error: %v", err)
	}

	if fork.ID == 0 || fork.ID == soup {
		t.Fatalf("expected a new identity, got %d", fork.ID)
	}
	if fork.AuthorID != marta {
		t.Fatalf("expected fork author %d, got %d", marta, fork.AuthorID)
	}
	if fork.ForkOriginID == nil || *fork.ForkOriginID != soup {
		t.Fatalf("expected fork origin %d, got %v", soup, fork.ForkOriginID)
	}
	if !fork.CreatedAt.Equal(fixedNow) || !fork.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("expected fresh timestamps, got %v / %v", fork.CreatedAt, fork.UpdatedAt)
	}
	if fork.Title != source.Title || fork.CategoryID != source.CategoryID || fork.IsForVegan != source.IsForVegan {
		t.Fatalf("expected scalar fields to be copied, got %+v", fork)
	}

	loaded, err := service.Get(ctx, fork.ID)
	if err != nil {
		t.Fatalf("load fork: %v", err)
	}
	if len(loaded.Ingredients) != len(source.Ingredients) {
		t.Fatalf("expected %d ingredients, got %d", len(source.Ingredients), len(loaded.Ingredients))
	}
	for i, ingredient := range loaded.Ingredients {
		original := source.Ingredients[i]
		if ingredient.ID == original.ID {
			t.Fatalf("ingredient %d shares identity with the source", i)
		}
		if ingredient.RecipeID != fork.ID || ingredient.FoodID != original.FoodID || ingredient.Quantity != original.Quantity || ingredient.Order != original.Order {
			t.Fatalf("ingredient %d not copied: %+v from %+v", i, ingredient, original)
		}
	}
	if len(loaded.Steps) != len(source.Steps) {
		t.Fatalf("expected %d steps, got %d", len(source.Steps), len(loaded.Steps))
	}
	for i, step := range loaded.Steps {
		if step.Text != source.Steps[i].Text || step.Order != source.Steps[i].Order {
			t.Fatalf("step %d out of order: %+v", i, step)
		}
	}

	unchanged, err := service.Get(ctx, soup)
	if err != nil {
		t.Fatalf("reload source: %v", err)
	}
	if unchanged.AuthorID != luca || unchanged.ForkOriginID != nil || len(unchanged.Ingredients) != len(source.Ingredients) {
		t.Fatalf("source modified by fork: %+v", unchanged)
	}

	forks, err := service.ForkCount(ctx, soup)
	if err != nil {
		t.Fatalf("ForkCount returned error: %v", err)
	}
	if forks != 2 {
		t.Fatalf("expected 2 forks of the soup, got %d", forks)
	}
	if total := countRecipes(t, db); total != 5 {
		t.Fatalf("expected 5 recipes after fork, got %d", total)
	}
}

func TestForkIsNotIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, db := newTestService(t)

	first, err := service.Fork(ctx, soup, marta)
	if err != nil {
		t.Fatalf("first fork: %v", err)
	}
	second, err := service.Fork(ctx, soup, marta)
	if err != nil {
		t.Fatalf("second fork: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("expected two distinct forks")
	}
	if total := countRecipes(t, db); total != 6 {
		t.Fatalf("expected 6 recipes, got %d", total)
	}
}

func TestForkOfForkPointsAtImmediateSource(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newTestService(t)

	first, err := service.Fork(ctx, soup, marta)
	if err != nil {
		t.Fatalf("first fork: %v", err)
	}
	second, err := service.Fork(ctx, first.ID, luca)
	if err != nil {
		t.Fatalf("second fork: %v", err)
	}
	if second.ForkOriginID == nil || *second.ForkOriginID != first.ID {
		t.Fatalf("expected origin %d, got %v", first.ID, second.ForkOriginID)
	}
}

func TestForkUnknownRecipe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, db := newTestService(t)

	if _, err := service.Fork(ctx, 999, marta); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(ErrNotFound, ErrForkFailed) {
		t.Fatal("not found must not be reported as a fork failure")
	}
	if total := countRecipes(t, db); total != 4 {
		t.Fatalf("expected no recipe to be written, got %d", total)
	}
}

func TestForkStorageFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, db := newTestService(t)

	if err := db.Migrator().DropTable(&models.RecipeStep{}); err != nil {
		t.Fatalf("drop steps table: %v", err)
	}

	if _, err := service.Fork(ctx, tart, marta); !errors.Is(err, ErrForkFailed) {
		t.Fatalf("expected ErrForkFailed, got %v", err)
	}
	if total := countRecipes(t, db); total != 4 {
		t.Fatalf("expected no fork to be persisted, got %d recipes", total)
	}
}

func TestDeleteByAuthorCascades(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, db := newTestService(t)

	if err := service.Delete(ctx, soup, luca); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := service.Get(ctx, soup); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted recipe to be gone, got %v", err)
	}

	var ingredients, steps int64
	db.Model(&models.Ingredient{}).Where("recipe_id = ?", soup).Count(&ingredients)
	db.Model(&models.RecipeStep{}).Where("recipe_id = ?", soup).Count(&steps)
	if ingredients != 0 || steps != 0 {
		t.Fatalf("expected children to be deleted, got %d ingredients and %d steps", ingredients, steps)
	}

	var forks []models.Recipe
	if err := db.Where("author_id = ? AND title = ?", marta, "Leek and potato soup").Find(&forks).Error; err != nil {
		t.Fatalf("load forks: %v", err)
	}
	if len(forks) != 1 || forks[0].ForkOriginID != nil {
		t.Fatalf("expected the fork to survive without an origin, got %+v", forks)
	}
}

func TestDeleteByOtherUserIsRefused(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, db := newTestService(t)

	if err := service.Delete(ctx, soup, marta); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	recipe, err := service.Get(ctx, soup)
	if err != nil {
		t.Fatalf("expected recipe to remain: %v", err)
	}
	if len(recipe.Ingredients) != 2 || len(recipe.Steps) != 2 {
		t.Fatalf("expected children to remain, got %d ingredients and %d steps", len(recipe.Ingredients), len(recipe.Steps))
	}
	if total := countRecipes(t, db); total != 4 {
		t.Fatalf("expected 4 recipes, got %d", total)
	}
}

func TestDeleteUnknownRecipe(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)
	if err := service.Delete(context.Background(), 999, luca); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLookupDetectsAmbiguousReference(t *testing.T) {
	t.Parallel()

	_, db := newTestService(t)
	// A table without a primary key constraint can hold a duplicated id.
	// Column types are declared so timestamps still scan into time.Time.
	if err := db.Exec(legacyRecipesTable).Error; err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	copyRows := "INSERT INTO legacy_recipes (" + legacyRecipeColumns + ") SELECT " + legacyRecipeColumns + " FROM recipes"
	if err := db.Exec(copyRows).Error; err != nil {
		t.Fatalf("copy rows: %v", err)
	}
	if err := db.Exec(copyRows+" WHERE id = ?", soup).Error; err != nil {
		t.Fatalf("duplicate row: %v", err)
	}

	if _, err := lookup(db.Table("legacy_recipes"), tart, false); err != nil {
		t.Fatalf("expected a single row to load, got %v", err)
	}

	_, err := lookup(db.Table("legacy_recipes"), soup, true)
	if !errors.Is(err, ErrAmbiguousReference) {
		t.Fatalf("expected ErrAmbiguousReference, got %v", err)
	}
}

const legacyRecipeColumns = "id, created_at, updated_at, deleted_at, title, summary, preparation_time, " +
	"difficulty, category_id, country_id, region_id, is_for_vegan, is_for_vegetarian, is_published, " +
	"tags, author_id, fork_origin_id"

const legacyRecipesTable = `CREATE TABLE legacy_recipes (
	id integer,
	created_at datetime,
	updated_at datetime,
	deleted_at datetime,
	title text,
	summary text,
	preparation_time text,
	difficulty integer,
	category_id integer,
	country_id integer,
	region_id integer,
	is_for_vegan numeric,
	is_for_vegetarian numeric,
	is_published numeric,
	tags text,
	author_id integer,
	fork_origin_id integer
)`

func TestSaveCreatesRecipeWithChildren(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newTestService(t)

	ten := 10
	saved, err := service.Save(ctx, marta, Draft{
		Recipe: models.Recipe{
			Title: "Tomato bruschetta", Difficulty: models.DifficultyVeryEasy,
			CategoryID: 1, CountryID: 1, IsForVegan: true, IsPublished: false,
		},
		Ingredients: []models.Ingredient{{FoodID: 3, Quantity: 1, Order: 1}},
		Steps: []models.RecipeStep{
			{Order: 2, Text: "Top the bread."},
			{Order: 1, Text: "Toast the bread.", Duration: &ten},
		},
	})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if saved.AuthorID != marta || !saved.IsPublished || saved.ForkOriginID != nil {
		t.Fatalf("unexpected saved recipe: %+v", saved)
	}

	loaded, err := service.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("load saved recipe: %v", err)
	}
	if len(loaded.Ingredients) != 1 || len(loaded.Steps) != 2 {
		t.Fatalf("expected children to be saved, got %+v", loaded)
	}
	if loaded.Steps[0].Text != "Toast the bread." {
		t.Fatalf("expected steps in display order, got %+v", loaded.Steps)
	}
}

func TestSaveUpdateSyncsChildren(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newTestService(t)

	current, err := service.Get(ctx, soup)
	if err != nil {
		t.Fatalf("load soup: %v", err)
	}

	kept := current.Ingredients[0]
	kept.Quantity = 3
	draft := Draft{
		Recipe:      *current,
		Ingredients: []models.Ingredient{kept, {FoodID: 3, Quantity: 1, Order: 3}},
		Steps:       []models.RecipeStep{{Order: 1, Text: "Blend everything."}},
	}
	draft.Recipe.Title = "Leek soup"

	saved, err := service.Save(ctx, luca, draft)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if saved.ID != soup || saved.AuthorID != luca || !saved.IsPublished {
		t.Fatalf("unexpected saved recipe: %+v", saved)
	}

	loaded, err := service.Get(ctx, soup)
	if err != nil {
		t.Fatalf("reload soup: %v", err)
	}
	if loaded.Title != "Leek soup" {
		t.Fatalf("expected title to be updated, got %q", loaded.Title)
	}
	if len(loaded.Ingredients) != 2 || loaded.Ingredients[0].ID != kept.ID || loaded.Ingredients[0].Quantity != 3 {
		t.Fatalf("unexpected ingredients: %+v", loaded.Ingredients)
	}
	if len(loaded.Steps) != 1 || loaded.Steps[0].Text != "Blend everything." {
		t.Fatalf("unexpected steps: %+v", loaded.Steps)
	}
}

func TestSaveUpdateByOtherUserIsRefused(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newTestService(t)

	current, err := service.Get(ctx, soup)
	if err != nil {
		t.Fatalf("load soup: %v", err)
	}
	draft := Draft{Recipe: *current}
	draft.Recipe.Title = "Hijacked"

	if _, err := service.Save(ctx, marta, draft); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	reloaded, _ := service.Get(ctx, soup)
	if reloaded.Title == "Hijacked" {
		t.Fatal("expected title to be unchanged")
	}
}

func TestSaveRejectsInvalidDraft(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)
	_, err := service.Save(context.Background(), luca, Draft{
		Recipe: models.Recipe{Difficulty: 9},
		Steps:  []models.RecipeStep{{Order: 1}},
	})
	validation, ok := forms.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"title", "difficulty", "category", "country", ""} {
		if len(validation.Fields[field]) == 0 {
			t.Fatalf("expected a message for %q, got %+v", field, validation.Fields)
		}
	}
	if len(validation.Fields["recipestep-0-text"]) != 0 {
		t.Fatalf("expected no row keyed message, got %+v", validation.Fields)
	}
}

func TestSaveReportsBadChildrenOnTheForm(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)
	_, err := service.Save(context.Background(), luca, Draft{
		Recipe: models.Recipe{Title: "Polenta", Difficulty: models.DifficultyEasy, CategoryID: 1, CountryID: 1},
		Ingredients: []models.Ingredient{
			{FoodID: 5, Quantity: 200, Order: 1},
			{Quantity: 1, Order: 2},
			{Quantity: 2, Order: 3},
		},
		Steps: []models.RecipeStep{{Order: 1, Text: "Stir."}, {Order: 2, Text: "  "}},
	})
	validation, ok := forms.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := []string{"Every ingredient needs a food.", "Every step needs instructions."}
	if got := validation.Fields[""]; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("form messages = %q, want %q", got, want)
	}
	if len(validation.Fields) != 1 {
		t.Fatalf("expected only form level messages, got %+v", validation.Fields)
	}
}

func TestBrowseFiltersByDiet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newTestService(t)

	tests := []struct {
		diet string
		want int
	}{
		{"", 3},
		{"vegan", 2},
		{"vegetarian", 3},
		{"veg", 3},
		{"carnivore", 3},
	}
	for _, tt := range tests {
		recipes, err := service.Browse(ctx, tt.diet)
		if err != nil {
			t.Fatalf("Browse(%q) returned error: %v", tt.diet, err)
		}
		if len(recipes) != tt.want {
			t.Fatalf("Browse(%q) returned %d recipes, want %d", tt.diet, len(recipes), tt.want)
		}
		for _, recipe := range recipes {
			if !recipe.IsPublished {
				t.Fatalf("Browse(%q) returned a draft: %+v", tt.diet, recipe)
			}
		}
	}
}

func TestByAuthorHidesDraftsFromOthers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newTestService(t)

	public, err := service.ByAuthor(ctx, luca, marta)
	if err != nil {
		t.Fatalf("ByAuthor returned error: %v", err)
	}
	if public.Count != 2 || len(public.Recipes) != 1 {
		t.Fatalf("expected count 2 with 1 listed recipe, got %d and %d", public.Count, len(public.Recipes))
	}

	own, err := service.ByAuthor(ctx, luca, luca)
	if err != nil {
		t.Fatalf("ByAuthor returned error: %v", err)
	}
	if len(own.Recipes) != 2 {
		t.Fatalf("expected the author to see drafts, got %d recipes", len(own.Recipes))
	}

	if _, err := service.ByAuthor(ctx, 999, luca); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestByCategoryAndHome(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newTestService(t)

	category, recipes, err := service.ByCategory(ctx, 1)
	if err != nil {
		t.Fatalf("ByCategory returned error: %v", err)
	}
	if category.Name != "Soups" || len(recipes) != 2 {
		t.Fatalf("unexpected soups listing: %s with %d recipes", category.Name, len(recipes))
	}
	if _, _, err := service.ByCategory(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	home, err := service.Home(ctx)
	if err != nil {
		t.Fatalf("Home returned error: %v", err)
	}
	if len(home.Latest) != 3 || len(home.Vegan) != 2 || len(home.Vegetarian) != 3 || len(home.Categories) != 3 {
		t.Fatalf("unexpected home lists: %d latest, %d vegan, %d vegetarian, %d categories",
			len(home.Latest), len(home.Vegan), len(home.Vegetarian), len(home.Categories))
	}
}

func TestImportCreatesUnpublishedRecipe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newTestService(t)

	imported, err := service.Import(ctx, marta, Draft{
		Recipe: models.Recipe{Model: gorm.Model{ID: soup}, Title: "Imported soup", Difficulty: models.DifficultyMedium, CategoryID: 1, CountryID: 1},
		Steps:  []models.RecipeStep{{Order: 1, Text: "Boil."}},
	})
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if imported.ID == soup || imported.IsPublished || imported.AuthorID != marta {
		t.Fatalf("unexpected imported recipe: %+v", imported)
	}
}
