// Package recipes owns the recipe operations that span several records:
// forking, author-gated deletion and saving a recipe with its children.
package recipes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	applog "cuisine/internal/log"
	"cuisine/models"
)

// Service runs recipe operations against a gorm handle.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// NewService returns a Service stamping records with the current UTC time.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// lookup loads a recipe by id, telling a missing recipe apart from an
// ambiguous one. With share set it takes a shared row lock where the
// database supports one.
func lookup(tx *gorm.DB, recipeID uint, share bool) (*models.Recipe, error) {
	query := tx.Where("id = ?", recipeID).Limit(2)
	if share && tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: clause.LockingStrengthShare})
	}

	var found []models.Recipe
	if err := query.Find(&found).Error; err != nil {
		return nil, fmt.Errorf("load recipe %d: %w", recipeID, err)
	}

	switch len(found) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &found[0], nil
	default:
		return nil, fmt.Errorf("%w: id %d", ErrAmbiguousReference, recipeID)
	}
}

// children loads a recipe's ingredients and steps in display order.
func children(tx *gorm.DB, recipeID uint) ([]models.Ingredient, []models.RecipeStep, error) {
	var ingredients []models.Ingredient
	if err := tx.Where("recipe_id = ?", recipeID).Order(models.DisplayOrder).Find(&ingredients).Error; err != nil {
		return nil, nil, fmt.Errorf("load ingredients: %w", err)
	}
	var steps []models.RecipeStep
	if err := tx.Where("recipe_id = ?", recipeID).Order(models.DisplayOrder).Find(&steps).Error; err != nil {
		return nil, nil, fmt.Errorf("load steps: %w", err)
	}
	return ingredients, steps, nil
}

// Fork copies the recipe and its ordered ingredients and steps into a new
// recipe authored by userID with its fork origin set to the source. The
// copy is written in one transaction; the source is never modified.
// Suggested wines are shared references and are not copied.
func (s *Service) Fork(ctx context.Context, recipeID, userID uint) (*models.Recipe, error) {
	var fork models.Recipe

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		source, err := lookup(tx, recipeID, true)
		if err != nil {
			return err
		}

		ingredients, steps, err := children(tx, source.ID)
		if err != nil {
			return err
		}

		now := s.now()
		origin := source.ID

		fork = *source
		fork.Model = gorm.Model{CreatedAt: now, UpdatedAt: now}
		fork.AuthorID = userID
		fork.ForkOriginID = &origin
		fork.Ingredients = nil
		fork.Steps = nil
		fork.SuggestedWines = nil
		if err := tx.Omit(clause.Associations).Create(&fork).Error; err != nil {
			return fmt.Errorf("create fork: %w", err)
		}

		for _, ingredient := range ingredients {
			clone := ingredient
			clone.Model = gorm.Model{CreatedAt: now, UpdatedAt: now}
			clone.RecipeID = fork.ID
			if err := tx.Omit(clause.Associations).Create(&clone).Error; err != nil {
				return fmt.Errorf("copy ingredient %d: %w", ingredient.ID, err)
			}
			fork.Ingredients = append(fork.Ingredients, clone)
		}

		for _, step := range steps {
			clone := step
			clone.Model = gorm.Model{CreatedAt: now, UpdatedAt: now}
			clone.RecipeID = fork.ID
			if err := tx.Omit(clause.Associations).Create(&clone).Error; err != nil {
				return fmt.Errorf("copy step %d: %w", step.ID, err)
			}
			fork.Steps = append(fork.Steps, clone)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAmbiguousReference) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrForkFailed, err)
	}

	applog.Info(ctx, "recipe forked", "source", recipeID, "fork", fork.ID, "author", userID,
		"ingredients", len(fork.Ingredients), "steps", len(fork.Steps))
	return &fork, nil
}

// Delete removes a recipe on behalf of actorID. Only the author may delete.
// The recipe, its ingredients and steps are deleted together, and forks of
// it lose their origin.
func (s *Service) Delete(ctx context.Context, recipeID, actorID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := lookup(tx, recipeID, false)
		if err != nil {
			return err
		}
		if recipe.AuthorID != actorID {
			return ErrUnauthorized
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Ingredient{}).Error; err != nil {
			return fmt.Errorf("delete ingredients: %w", err)
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeStep{}).Error; err != nil {
			return fmt.Errorf("delete steps: %w", err)
		}
		if err := tx.Model(recipe).Association("SuggestedWines").Clear(); err != nil {
			return fmt.Errorf("clear suggested wines: %w", err)
		}
		if err := tx.Model(&models.Recipe{}).Where("fork_origin_id = ?", recipe.ID).Update("fork_origin_id", nil).Error; err != nil {
			return fmt.Errorf("detach forks: %w", err)
		}
		if err := tx.Delete(recipe).Error; err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	applog.Info(ctx, "recipe deleted", "id", recipeID, "author", actorID)
	return nil
}
