package recipes

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cuisine/models"
)

// Get loads a recipe with everything its detail page shows: author, lookup
// references, fork origin, suggested wines and ordered children.
func (s *Service) Get(ctx context.Context, recipeID uint) (*models.Recipe, error) {
	tx := s.db.WithContext(ctx)
	if _, err := lookup(tx, recipeID, false); err != nil {
		return nil, err
	}

	var recipe models.Recipe
	err := tx.
		Preload("Author").
		Preload("Category").
		Preload("Country").
		Preload("Region").
		Preload("ForkOrigin").
		Preload("ForkOrigin.Author").
		Preload("SuggestedWines").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order(models.DisplayOrder) }).
		Preload("Ingredients.Food").
		Preload("Ingredients.Unit").
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order(models.DisplayOrder) }).
		First(&recipe, recipeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load recipe %d: %w", recipeID, err)
	}
	return &recipe, nil
}

// ForkCount returns how many recipes were forked directly from recipeID.
func (s *Service) ForkCount(ctx context.Context, recipeID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).Scopes(models.ForksOf(recipeID)).Count(&count).Error
	return count, err
}

// Browse lists published recipes, newest first, optionally narrowed by a
// diet filter ("vegan", "vegetarian" or "veg"). Unknown filters list every
// published recipe.
func (s *Service) Browse(ctx context.Context, diet string) ([]models.Recipe, error) {
	scope, _ := models.DietScope(diet)
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Scopes(scope).
		Preload("Author").
		Preload("Category").
		Order("created_at desc, id desc").
		Find(&recipes).Error
	return recipes, err
}

// AuthorPage is the public profile of a cook.
type AuthorPage struct {
	Author  models.User
	Recipes []models.Recipe
	// Count is the number of recipes the author has written, drafts included.
	Count int64
}

// ByAuthor lists an author's recipes. Drafts are only listed when the
// viewer is the author.
func (s *Service) ByAuthor(ctx context.Context, authorID, viewerID uint) (*AuthorPage, error) {
	tx := s.db.WithContext(ctx)

	var page AuthorPage
	if err := tx.First(&page.Author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load author %d: %w", authorID, err)
	}

	if err := tx.Model(&models.Recipe{}).Scopes(models.AuthoredBy(authorID)).Count(&page.Count).Error; err != nil {
		return nil, fmt.Errorf("count recipes: %w", err)
	}

	query := tx.Scopes(models.AuthoredBy(authorID))
	if viewerID != authorID {
		query = query.Scopes(models.Published)
	}
	if err := query.Preload("Category").Order("created_at desc, id desc").Find(&page.Recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return &page, nil
}

// ByCategory lists the published recipes of a category.
func (s *Service) ByCategory(ctx context.Context, categoryID uint) (*models.Category, []models.Recipe, error) {
	tx := s.db.WithContext(ctx)

	var category models.Category
	if err := tx.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("load category %d: %w", categoryID, err)
	}

	var recipes []models.Recipe
	err := tx.Scopes(models.Published).
		Where("category_id = ?", categoryID).
		Preload("Author").
		Order("title asc, id asc").
		Find(&recipes).Error
	if err != nil {
		return nil, nil, fmt.Errorf("list recipes: %w", err)
	}
	return &category, recipes, nil
}

// Home holds the lists shown on the landing page.
type Home struct {
	Latest     []models.Recipe
	Vegan      []models.Recipe
	Vegetarian []models.Recipe
	Categories []models.Category
}

// HomeLimit caps each recipe list of the landing page.
const HomeLimit = 5

// Home loads the landing page lists.
func (s *Service) Home(ctx context.Context) (*Home, error) {
	tx := s.db.WithContext(ctx)

	var home Home
	lists := []struct {
		name  string
		scope func(*gorm.DB) *gorm.DB
		into  *[]models.Recipe
	}{
		{"latest", models.Published, &home.Latest},
		{"vegan", models.VeganFriendly, &home.Vegan},
		{"vegetarian", models.VegetarianFriendly, &home.Vegetarian},
	}
	for _, list := range lists {
		err := tx.Scopes(list.scope).
			Preload("Author").
			Order("created_at desc, id desc").
			Limit(HomeLimit).
			Find(list.into).Error
		if err != nil {
			return nil, fmt.Errorf("load %s recipes: %w", list.name, err)
		}
	}

	if err := tx.Scopes(models.Published).Order(models.DisplayOrder).Find(&home.Categories).Error; err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return &home, nil
}
