package recipes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cuisine/internal/crud"
	"cuisine/internal/forms"
	applog "cuisine/internal/log"
	"cuisine/models"
)

// Draft is a recipe as submitted by the editor together with its child
// rows. Children with an id update the matching row; children without one
// are created.
type Draft struct {
	Recipe      models.Recipe
	Ingredients []models.Ingredient
	Steps       []models.RecipeStep
}

// editable lists the recipe columns the editor may change.
var editable = []string{
	"title", "summary", "preparation_time", "difficulty", "category_id",
	"country_id", "region_id", "is_for_vegan", "is_for_vegetarian", "tags", "updated_at",
}

func validate(draft *Draft) error {
	errs := crud.FieldErrors{}
	if strings.TrimSpace(draft.Recipe.Title) == "" {
		errs.Add("title", "This field is required.")
	}
	if !models.ValidDifficulty(draft.Recipe.Difficulty) {
		errs.Add("difficulty", "Select a valid choice.")
	}
	if draft.Recipe.CategoryID == 0 {
		errs.Add("category", "This field is required.")
	}
	if draft.Recipe.CountryID == 0 {
		errs.Add("country", "This field is required.")
	}
	// Children carry no submitted row index, so their errors go on the form.
	for _, ingredient := range draft.Ingredients {
		if ingredient.FoodID == 0 {
			errs.Add("", "Every ingredient needs a food.")
			break
		}
	}
	for _, step := range draft.Steps {
		if strings.TrimSpace(step.Text) == "" {
			errs.Add("", "Every step needs instructions.")
			break
		}
	}
	return forms.Check(errs)
}

// Save creates or updates a recipe with its ingredients and steps in one
// transaction. New recipes are authored by actorID and published. Updates
// are restricted to the author and leave the fork origin and publication
// flag untouched; child rows missing from the draft are deleted.
func (s *Service) Save(ctx context.Context, actorID uint, draft Draft) (*models.Recipe, error) {
	return s.save(ctx, actorID, draft, true)
}

// Import stores a new recipe that stays unpublished until its author
// reviews it.
func (s *Service) Import(ctx context.Context, actorID uint, draft Draft) (*models.Recipe, error) {
	draft.Recipe.ID = 0
	return s.save(ctx, actorID, draft, false)
}

func (s *Service) save(ctx context.Context, actorID uint, draft Draft, publish bool) (*models.Recipe, error) {
	if err := validate(&draft); err != nil {
		return nil, err
	}

	var saved models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := s.now()
		recipe := draft.Recipe
		recipe.Ingredients, recipe.Steps, recipe.SuggestedWines = nil, nil, nil

		if recipe.ID == 0 {
			recipe.Model = gorm.Model{CreatedAt: now, UpdatedAt: now}
			recipe.AuthorID = actorID
			recipe.ForkOriginID = nil
			recipe.IsPublished = publish
			if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
				return fmt.Errorf("create recipe: %w", err)
			}
		} else {
			current, err := lookup(tx, recipe.ID, false)
			if err != nil {
				return err
			}
			if current.AuthorID != actorID {
				return ErrUnauthorized
			}
			recipe.UpdatedAt = now
			if err := tx.Model(current).Select(editable).Updates(&recipe).Error; err != nil {
				return fmt.Errorf("update recipe: %w", err)
			}
			recipe.Model = gorm.Model{ID: current.ID, CreatedAt: current.CreatedAt, UpdatedAt: now}
			recipe.AuthorID = current.AuthorID
			recipe.ForkOriginID = current.ForkOriginID
			recipe.IsPublished = current.IsPublished
		}

		ingredients, err := syncChildren(tx, recipe.ID, now, draft.Ingredients,
			func(row *models.Ingredient) *gorm.Model { return &row.Model },
			func(row *models.Ingredient) { row.RecipeID = recipe.ID },
			"food_id", "unit_id", "quantity", "display_order", "updated_at")
		if err != nil {
			return fmt.Errorf("save ingredients: %w", err)
		}
		steps, err := syncChildren(tx, recipe.ID, now, draft.Steps,
			func(row *models.RecipeStep) *gorm.Model { return &row.Model },
			func(row *models.RecipeStep) { row.RecipeID = recipe.ID },
			"display_order", "text", "duration", "updated_at")
		if err != nil {
			return fmt.Errorf("save steps: %w", err)
		}

		saved = recipe
		saved.Ingredients = ingredients
		saved.Steps = steps
		return nil
	})
	if err != nil {
		return nil, err
	}

	applog.Info(ctx, "recipe saved", "id", saved.ID, "author", actorID,
		"ingredients", len(saved.Ingredients), "steps", len(saved.Steps))
	return &saved, nil
}

// syncChildren makes the recipe's rows of type T match rows: rows whose id
// belongs to the recipe are updated, the others are created, and existing
// rows left out are deleted.
func syncChildren[T any](tx *gorm.DB, recipeID uint, now time.Time, rows []T,
	model func(*T) *gorm.Model, attach func(*T), columns ...string) ([]T, error) {

	var existing []T
	if err := tx.Where("recipe_id = ?", recipeID).Find(&existing).Error; err != nil {
		return nil, err
	}
	owned := make(map[uint]bool, len(existing))
	for i := range existing {
		owned[model(&existing[i]).ID] = true
	}

	kept := make(map[uint]bool, len(rows))
	saved := make([]T, 0, len(rows))
	for _, row := range rows {
		attach(&row)
		m := model(&row)
		if m.ID != 0 && owned[m.ID] && !kept[m.ID] {
			m.UpdatedAt = now
			if err := tx.Model(&row).Select(columns).Updates(&row).Error; err != nil {
				return nil, err
			}
			kept[m.ID] = true
		} else {
			*m = gorm.Model{CreatedAt: now, UpdatedAt: now}
			if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
				return nil, err
			}
		}
		saved = append(saved, row)
	}

	var stale []uint
	for i := range existing {
		if id := model(&existing[i]).ID; !kept[id] {
			stale = append(stale, id)
		}
	}
	if len(stale) > 0 {
		if err := tx.Where("id IN ?", stale).Delete(new(T)).Error; err != nil {
			return nil, err
		}
	}
	return saved, nil
}
