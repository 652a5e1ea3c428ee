package forms

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"cuisine/internal/crud"
	"cuisine/models"
)

var difficultyChoices = labelled(models.DifficultyLabel,
	models.DifficultyVeryEasy, models.DifficultyEasy, models.DifficultyMedium,
	models.DifficultyDifficult, models.DifficultyVeryDifficult)

// Recipe validates the recipe fields a front-end author may edit. The fork
// origin and publication flag are left untouched.
func (s Schemas) Recipe() crud.Form[models.Recipe] {
	return crud.Form[models.Recipe]{
		Name: "Recipe",
		Validate: func(ctx context.Context, form url.Values, record *models.Recipe) crud.FieldErrors {
			in := s.reader(ctx, form)
			record.Title = in.text("title", 200, true)
			record.Summary = in.text("summary", 500, false)
			record.PreparationTime = in.text("preparation_time", 100, false)
			record.Difficulty = in.option("difficulty", difficultyChoices, true)
			record.CategoryID = in.requiredReference("category", SourceCategory)
			record.CountryID = in.requiredReference("country", SourceCountry)
			record.RegionID = in.reference("region", SourceRegion, false)
			record.IsForVegan = in.flag("is_for_vegan")
			record.IsForVegetarian = in.flag("is_for_vegetarian")
			record.Tags = normalizeTags(in.raw("tags"))
			return in.errs
		},
		Describe: func(ctx context.Context, record *models.Recipe) ([]crud.Field, error) {
			category, err := s.referenceField(ctx, "category", "Category", SourceCategory, &record.CategoryID, true)
			if err != nil {
				return nil, err
			}
			country, err := s.referenceField(ctx, "country", "Country", SourceCountry, &record.CountryID, true)
			if err != nil {
				return nil, err
			}
			region, err := s.referenceField(ctx, "region", "Region", SourceRegion, record.RegionID, false)
			if err != nil {
				return nil, err
			}
			return []crud.Field{
				textField("title", "Title", record.Title, true),
				textAreaField("summary", "Summary", record.Summary),
				textField("preparation_time", "Preparation time", record.PreparationTime, false),
				selectField("difficulty", "Difficulty", formatInt(record.Difficulty), difficultyChoices, true),
				category,
				country,
				region,
				checkboxField("is_for_vegan", "Vegan", record.IsForVegan),
				checkboxField("is_for_vegetarian", "Vegetarian", record.IsForVegetarian),
				textField("tags", "Tags", record.Tags, false),
			}, nil
		},
		Title:    func(record *models.Recipe) string { return record.Title },
		Identify: func(record *models.Recipe) uint { return record.ID },
	}
}

// RecipeImport validates the fields sent along with an uploaded recipe
// document. Difficulty defaults to medium.
func (s Schemas) RecipeImport() crud.Form[models.Recipe] {
	return crud.Form[models.Recipe]{
		Name: "Recipe",
		Validate: func(ctx context.Context, form url.Values, record *models.Recipe) crud.FieldErrors {
			in := s.reader(ctx, form)
			record.CategoryID = in.requiredReference("category", SourceCategory)
			record.CountryID = in.requiredReference("country", SourceCountry)
			record.Difficulty = in.option("difficulty", difficultyChoices, false)
			if record.Difficulty == 0 {
				record.Difficulty = models.DifficultyMedium
			}
			record.IsForVegan = in.flag("is_for_vegan")
			record.IsForVegetarian = in.flag("is_for_vegetarian")
			return in.errs
		},
		Describe: func(ctx context.Context, record *models.Recipe) ([]crud.Field, error) {
			category, err := s.referenceField(ctx, "category", "Category", SourceCategory, &record.CategoryID, true)
			if err != nil {
				return nil, err
			}
			country, err := s.referenceField(ctx, "country", "Country", SourceCountry, &record.CountryID, true)
			if err != nil {
				return nil, err
			}
			return []crud.Field{
				category,
				country,
				selectField("difficulty", "Difficulty", formatInt(record.Difficulty), difficultyChoices, false),
				checkboxField("is_for_vegan", "Vegan", record.IsForVegan),
				checkboxField("is_for_vegetarian", "Vegetarian", record.IsForVegetarian),
			}, nil
		},
		Title:    func(record *models.Recipe) string { return record.Title },
		Identify: func(record *models.Recipe) uint { return record.ID },
	}
}

// normalizeTags trims each comma separated tag and drops empty ones.
func normalizeTags(raw string) string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return strings.Join(tags, ", ")
}

// ValidationError carries per-field messages for a rejected submission.
type ValidationError struct {
	Fields crud.FieldErrors
}

func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

// Check returns a *ValidationError when errs holds any message.
func Check(errs crud.FieldErrors) error {
	if errs.Empty() {
		return nil
	}
	return &ValidationError{Fields: errs}
}

// AsValidation unwraps a *ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation, true
	}
	return nil, false
}
