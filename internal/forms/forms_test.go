package forms

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"cuisine/internal/crud"
	"cuisine/models"
)

type staticLookup map[Source][]crud.Choice

func (l staticLookup) Choices(_ context.Context, source Source) ([]crud.Choice, error) {
	choices, ok := l[source]
	if !ok {
		return nil, fmt.Errorf("unknown source %s", source)
	}
	return choices, nil
}

func testLookup() staticLookup {
	return staticLookup{
		SourceCategory: {{Value: "1", Label: "Soups"}, {Value: "2", Label: "Desserts"}},
		SourceCountry:  {{Value: "1", Label: "Italy"}},
		SourceRegion:   {{Value: "1", Label: "Piedmont"}},
		SourceFood:     {{Value: "1", Label: "Onion"}, {Value: "2", Label: "Leek"}},
		SourceFoodType: {{Value: "1", Label: "Vegetable"}},
		SourceUnit:     {{Value: "1", Label: "gram"}},
	}
}

func validRecipeForm() url.Values {
	return url.Values{
		"title":             {"Soup"},
		"summary":           {"A warm soup."},
		"difficulty":        {"2"},
		"category":          {"1"},
		"country":           {"1"},
		"is_for_vegan":      {"on"},
		"tags":              {" winter, ,warm "},
		"fork_origin":       {"9"},
		"is_published":      {""},
		"preparation_time":  {"30 minutes"},
		"is_for_vegetarian": {"off"},
	}
}

func TestRecipeSchemaBind(t *testing.T) {
	t.Parallel()

	schema := New(testLookup()).Recipe()
	recipe := &models.Recipe{IsPublished: true}
	errs := schema.Bind(context.Background(), validRecipeForm(), recipe)
	if !errs.Empty() {
		t.Fatalf("expected valid form, got %v", errs)
	}

	if recipe.Title != "Soup" || recipe.Difficulty != models.DifficultyEasy || recipe.CategoryID != 1 || recipe.CountryID != 1 {
		t.Fatalf("unexpected recipe fields: %+v", recipe)
	}
	if !recipe.IsForVegan || recipe.IsForVegetarian {
		t.Fatalf("unexpected diet flags vegan=%t vegetarian=%t", recipe.IsForVegan, recipe.IsForVegetarian)
	}
	if recipe.Tags != "winter, warm" {
		t.Fatalf("expected normalized tags, got %q", recipe.Tags)
	}
	if recipe.ForkOriginID != nil || !recipe.IsPublished {
		t.Fatal("expected fork origin and publication flag to be ignored")
	}
}

func TestRecipeSchemaErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edit  func(url.Values)
		field string
		want  string
	}{
		{"missing title", func(v url.Values) { v.Del("title") }, "title", msgRequired},
		{"unknown category", func(v url.Values) { v.Set("category", "7") }, "category", msgInvalidChoice},
		{"malformed country", func(v url.Values) { v.Set("country", "italy") }, "country", msgInvalidChoice},
		{"bad difficulty", func(v url.Values) { v.Set("difficulty", "6") }, "difficulty", msgInvalidChoice},
		{"long preparation time", func(v url.Values) { v.Set("preparation_time", string(make([]byte, 101))) }, "preparation_time", "Ensure this value has at most 100 characters (it has 101)."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			form := validRecipeForm()
			tt.edit(form)
			errs := New(testLookup()).Recipe().Bind(context.Background(), form, &models.Recipe{})
			got := errs[tt.field]
			if len(got) != 1 || got[0] != tt.want {
				t.Fatalf("errors for %s = %v, want [%s]", tt.field, got, tt.want)
			}
		})
	}
}

func TestRecipeFieldsExcludeAdminOnlyFields(t *testing.T) {
	t.Parallel()

	fields, err := New(testLookup()).Recipe().Fields(context.Background(), &models.Recipe{})
	if err != nil {
		t.Fatalf("Fields returned error: %v", err)
	}
	for _, field := range fields {
		if field.Name == "fork_origin" || field.Name == "is_published" {
			t.Fatalf("unexpected field %s in front-end recipe form", field.Name)
		}
		if field.Name == "category" && len(field.Choices) != 2 {
			t.Fatalf("expected category choices from lookup, got %v", field.Choices)
		}
	}
}

func TestCategoryCannotParentItself(t *testing.T) {
	t.Parallel()

	category := &models.Category{}
	category.ID = 1
	errs := New(testLookup()).Category().Bind(context.Background(), url.Values{"name": {"Soups"}, "parent": {"1"}}, category)
	if len(errs["parent"]) == 0 {
		t.Fatal("expected self parent to be rejected")
	}
}

func TestWineSchema(t *testing.T) {
	t.Parallel()

	form := url.Values{
		"name":               {"Barolo"},
		"traditional_code":   {"1"},
		"european_code":      {"1"},
		"alcohol_percentage": {"14.5"},
		"year":               {"2016"},
		"rating":             {"5"},
		"kind":               {"1"},
		"region":             {"1"},
		"is_published":       {"on"},
	}
	wine := &models.Wine{}
	if errs := New(testLookup()).Wine().Bind(context.Background(), form, wine); !errs.Empty() {
		t.Fatalf("expected valid wine, got %v", errs)
	}
	if wine.AlcoholPercentage != 14.5 || wine.RegionID == nil || *wine.RegionID != 1 || !wine.IsPublished {
		t.Fatalf("unexpected wine: %+v", wine)
	}

	form.Set("year", "1200")
	form.Set("alcohol_percentage", "abc")
	errs := New(testLookup()).Wine().Bind(context.Background(), form, &models.Wine{})
	if len(errs["year"]) == 0 || len(errs["alcohol_percentage"]) == 0 {
		t.Fatalf("expected year and alcohol errors, got %v", errs)
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	if err := Check(crud.FieldErrors{}); err != nil {
		t.Fatalf("expected nil for empty errors, got %v", err)
	}
	err := fmt.Errorf("save: %w", Check(crud.FieldErrors{"title": {msgRequired}}))
	validation, ok := AsValidation(err)
	if !ok || validation.Fields["title"][0] != msgRequired {
		t.Fatalf("expected wrapped validation error, got %v", err)
	}
	if _, ok := AsValidation(errors.New("other")); ok {
		t.Fatal("expected plain error not to be a validation error")
	}
}
