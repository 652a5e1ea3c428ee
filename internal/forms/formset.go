package forms

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"cuisine/internal/crud"
	"cuisine/models"
)

const (
	IngredientPrefix = "ingredient"
	StepPrefix       = "recipestep"

	// rows accepted beyond Max before the submission is rejected unread
	absoluteMargin = 1000
	msgManagement  = "Management form data is missing or has been tampered with."
)

// Limits sizes a formset: Extra blank rows are offered after the existing
// ones and at most Max rows are accepted.
type Limits struct {
	Extra int
	Max   int
}

// FormsetRow is one rendered row. Field names carry the row prefix.
type FormsetRow struct {
	Index  int
	Fields []crud.Field
	Delete bool
}

// FormsetPage is the rendering data of a formset.
type FormsetPage struct {
	Prefix    string
	TotalName string
	Total     int
	Rows      []FormsetRow
	Errors    []string
}

// Formset reads and describes repeated child rows named
// <prefix>-<n>-<field>, with the row count in <prefix>-TOTAL_FORMS.
type Formset[T any] struct {
	Prefix string
	Limits Limits

	schemas     Schemas
	significant []string
	columns     func(ctx context.Context) ([]crud.Field, error)
	values      func(record *T) map[string]string
	read        func(in *reader, name func(string) string, position int, record *T)
}

// TotalName is the management field carrying the submitted row count.
func (f Formset[T]) TotalName() string {
	return f.Prefix + "-TOTAL_FORMS"
}

func (f Formset[T]) fieldName(index int, field string) string {
	return fmt.Sprintf("%s-%d-%s", f.Prefix, index, field)
}

func (f Formset[T]) submittedTotal(form url.Values) (int, bool) {
	total, err := strconv.Atoi(form.Get(f.TotalName()))
	if err != nil || total < 0 || total > f.Limits.Max+absoluteMargin {
		return 0, false
	}
	return total, true
}

func (f Formset[T]) blank(form url.Values, index int) bool {
	for _, field := range f.significant {
		if strings.TrimSpace(form.Get(f.fieldName(index, field))) != "" {
			return false
		}
	}
	return true
}

// Parse reads the submitted rows into records. Blank rows and rows flagged
// for deletion are skipped. Messages are added to errs under the prefixed
// field names, and under the prefix itself for formset-wide problems.
func (f Formset[T]) Parse(ctx context.Context, form url.Values, errs crud.FieldErrors) []T {
	total, ok := f.submittedTotal(form)
	if !ok {
		errs.Add(f.Prefix, msgManagement)
		return nil
	}

	in := &reader{ctx: ctx, form: form, errs: errs, lookup: f.schemas.lookup}
	records := make([]T, 0, total)
	for i := 0; i < total; i++ {
		index := i
		if in.flag(f.fieldName(index, "DELETE")) || f.blank(form, index) {
			continue
		}
		var record T
		f.read(in, func(field string) string { return f.fieldName(index, field) }, len(records)+1, &record)
		records = append(records, record)
	}

	if f.Limits.Max > 0 && len(records) > f.Limits.Max {
		errs.Add(f.Prefix, fmt.Sprintf("Please submit at most %d forms.", f.Limits.Max))
	}
	return records
}

// Page describes the formset for rendering. Without a submission it shows
// the existing records followed by the extra blank rows. With one it
// redisplays the submitted rows and their messages.
func (f Formset[T]) Page(ctx context.Context, existing []T, form url.Values, errs crud.FieldErrors) (FormsetPage, error) {
	columns, err := f.columns(ctx)
	if err != nil {
		return FormsetPage{}, err
	}

	page := FormsetPage{Prefix: f.Prefix, TotalName: f.TotalName(), Errors: errs[f.Prefix]}

	if form != nil {
		total, _ := f.submittedTotal(form)
		for i := 0; i < total; i++ {
			row := FormsetRow{Index: i, Delete: form.Has(f.fieldName(i, "DELETE"))}
			for _, column := range columns {
				name := f.fieldName(i, column.Name)
				column.Name = name
				if column.Kind == crud.KindCheckbox {
					column.Checked = form.Has(name)
				} else {
					column.Value = form.Get(name)
				}
				column.Errors = errs[name]
				row.Fields = append(row.Fields, column)
			}
			page.Rows = append(page.Rows, row)
		}
		page.Total = total
		return page, nil
	}

	extra := f.Limits.Extra
	if f.Limits.Max > 0 && len(existing)+extra > f.Limits.Max {
		extra = f.Limits.Max - len(existing)
	}
	if extra < 0 {
		extra = 0
	}

	for i := 0; i < len(existing)+extra; i++ {
		var values map[string]string
		if i < len(existing) {
			values = f.values(&existing[i])
		}
		row := FormsetRow{Index: i}
		for _, column := range columns {
			column.Value = values[column.Name]
			column.Name = f.fieldName(i, column.Name)
			row.Fields = append(row.Fields, column)
		}
		page.Rows = append(page.Rows, row)
	}
	page.Total = len(page.Rows)
	return page, nil
}

// Ingredients is the ingredient formset of the recipe editor.
func (s Schemas) Ingredients(limits Limits) Formset[models.Ingredient] {
	return Formset[models.Ingredient]{
		Prefix:      IngredientPrefix,
		Limits:      limits,
		schemas:     s,
		significant: []string{"food", "unit", "quantity"},
		columns: func(ctx context.Context) ([]crud.Field, error) {
			food, err := s.referenceField(ctx, "food", "Food", SourceFood, nil, true)
			if err != nil {
				return nil, err
			}
			unit, err := s.referenceField(ctx, "unit", "Unit", SourceUnit, nil, false)
			if err != nil {
				return nil, err
			}
			return []crud.Field{
				{Name: "id", Kind: crud.KindHidden},
				food,
				unit,
				numberField("quantity", "Quantity", "", true),
				numberField("order", "Order", "", false),
			}, nil
		},
		values: func(record *models.Ingredient) map[string]string {
			return map[string]string{
				"id":       formatID(record.ID),
				"food":     formatID(record.FoodID),
				"unit":     formatRef(record.UnitID),
				"quantity": formatDecimal(record.Quantity),
				"order":    strconv.Itoa(record.Order),
			}
		},
		read: func(in *reader, name func(string) string, position int, record *models.Ingredient) {
			record.ID = rowID(in, name("id"))
			record.FoodID = in.requiredReference(name("food"), SourceFood)
			record.UnitID = in.reference(name("unit"), SourceUnit, false)
			record.Quantity = in.decimal(name("quantity"), true)
			if in.raw(name("quantity")) != "" && record.Quantity <= 0 {
				in.errs.Add(name("quantity"), "Ensure this value is greater than 0.")
			}
			record.Order = rowOrder(in, name("order"), position)
		},
	}
}

// Steps is the recipe step formset of the recipe editor.
func (s Schemas) Steps(limits Limits) Formset[models.RecipeStep] {
	return Formset[models.RecipeStep]{
		Prefix:      StepPrefix,
		Limits:      limits,
		schemas:     s,
		significant: []string{"text", "duration"},
		columns: func(context.Context) ([]crud.Field, error) {
			return []crud.Field{
				{Name: "id", Kind: crud.KindHidden},
				numberField("order", "Order", "", false),
				textAreaField("text", "Text", ""),
				numberField("duration", "Duration (minutes)", "", false),
			}, nil
		},
		values: func(record *models.RecipeStep) map[string]string {
			return map[string]string{
				"id":       formatID(record.ID),
				"order":    strconv.Itoa(record.Order),
				"text":     record.Text,
				"duration": formatOptionalInt(record.Duration),
			}
		},
		read: func(in *reader, name func(string) string, position int, record *models.RecipeStep) {
			record.ID = rowID(in, name("id"))
			record.Order = rowOrder(in, name("order"), position)
			record.Text = in.text(name("text"), 0, true)
			record.Duration = in.optionalInt(name("duration"))
			if record.Duration != nil && *record.Duration < 0 {
				in.errs.Add(name("duration"), "Ensure this value is greater than or equal to 0.")
			}
		},
	}
}

// rowID reads the hidden identity of an existing child row. Anything that
// is not a positive integer marks a new row.
func rowID(in *reader, name string) uint {
	id, err := strconv.ParseUint(in.raw(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// rowOrder defaults a missing order to the row's position among kept rows.
func rowOrder(in *reader, name string, position int) int {
	if in.raw(name) == "" {
		return position
	}
	return in.integer(name, false)
}
