// Package forms holds the input validation schemas for every catalogue
// entity and the ingredient and step formsets of the recipe editor.
package forms

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"cuisine/internal/crud"
)

// Source names a lookup table offered as select choices.
type Source string

const (
	SourceCategory  Source = "category"
	SourceCountry   Source = "country"
	SourceRegion    Source = "region"
	SourceFood      Source = "food"
	SourceFoodType  Source = "foodtype"
	SourceUnit      Source = "unit"
	SourceGrapeType Source = "grapetype"
)

// Lookup supplies the choices of reference fields.
type Lookup interface {
	Choices(ctx context.Context, source Source) ([]crud.Choice, error)
}

const (
	msgRequired      = "This field is required."
	msgWholeNumber   = "Enter a whole number."
	msgNumber        = "Enter a number."
	msgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
)

// Schemas builds entity schemas backed by a Lookup. A nil Lookup disables
// membership checks on reference fields and renders them without choices.
type Schemas struct {
	lookup Lookup
}

// New returns the schema set for lookup.
func New(lookup Lookup) Schemas {
	return Schemas{lookup: lookup}
}

func (s Schemas) choices(ctx context.Context, source Source) ([]crud.Choice, error) {
	if s.lookup == nil {
		return nil, nil
	}
	choices, err := s.lookup.Choices(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load %s choices: %w", source, err)
	}
	return choices, nil
}

// reader pulls typed values out of submitted form data, collecting
// messages as it goes.
type reader struct {
	ctx    context.Context
	form   url.Values
	errs   crud.FieldErrors
	lookup Lookup
	cache  map[Source][]crud.Choice
}

func (s Schemas) reader(ctx context.Context, form url.Values) *reader {
	return &reader{ctx: ctx, form: form, errs: crud.FieldErrors{}, lookup: s.lookup}
}

func (r *reader) raw(name string) string {
	return strings.TrimSpace(r.form.Get(name))
}

func (r *reader) text(name string, max int, required bool) string {
	value := r.raw(name)
	if value == "" {
		if required {
			r.errs.Add(name, msgRequired)
		}
		return ""
	}
	if n := utf8.RuneCountInString(value); max > 0 && n > max {
		r.errs.Add(name, fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", max, n))
	}
	return value
}

func (r *reader) integer(name string, required bool) int {
	value := r.optionalInt(name)
	if value == nil {
		if required && r.raw(name) == "" {
			r.errs.Add(name, msgRequired)
		}
		return 0
	}
	return *value
}

func (r *reader) optionalInt(name string) *int {
	value := r.raw(name)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		r.errs.Add(name, msgWholeNumber)
		return nil
	}
	return &parsed
}

func (r *reader) decimal(name string, required bool) float64 {
	value := r.raw(name)
	if value == "" {
		if required {
			r.errs.Add(name, msgRequired)
		}
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		r.errs.Add(name, msgNumber)
		return 0
	}
	return parsed
}

func (r *reader) between(name string, value, min, max int) {
	if value < min {
		r.errs.Add(name, fmt.Sprintf("Ensure this value is greater than or equal to %d.", min))
	} else if value > max {
		r.errs.Add(name, fmt.Sprintf("Ensure this value is less than or equal to %d.", max))
	}
}

func (r *reader) flag(name string) bool {
	if !r.form.Has(name) {
		return false
	}
	switch strings.ToLower(r.raw(name)) {
	case "false", "off", "0":
		return false
	}
	return true
}

// option validates a select against a static choice list.
func (r *reader) option(name string, choices []crud.Choice, required bool) int {
	value := r.raw(name)
	if value == "" {
		if required {
			r.errs.Add(name, msgRequired)
		}
		return 0
	}
	if !hasChoice(choices, value) {
		r.errs.Add(name, msgInvalidChoice)
		return 0
	}
	parsed, _ := strconv.Atoi(value)
	return parsed
}

// reference validates a foreign key against the lookup's choices.
func (r *reader) reference(name string, source Source, required bool) *uint {
	value := r.raw(name)
	if value == "" {
		if required {
			r.errs.Add(name, msgRequired)
		}
		return nil
	}
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		r.errs.Add(name, msgInvalidChoice)
		return nil
	}
	if r.lookup != nil {
		choices, err := r.choices(source)
		if err != nil {
			r.errs.Add(name, "Unable to verify this choice. Please try again.")
			return nil
		}
		if !hasChoice(choices, value) {
			r.errs.Add(name, msgInvalidChoice)
			return nil
		}
	}
	ref := uint(id)
	return &ref
}

func (r *reader) choices(source Source) ([]crud.Choice, error) {
	if cached, ok := r.cache[source]; ok {
		return cached, nil
	}
	choices, err := r.lookup.Choices(r.ctx, source)
	if err != nil {
		return nil, err
	}
	if r.cache == nil {
		r.cache = make(map[Source][]crud.Choice)
	}
	r.cache[source] = choices
	return choices, nil
}

func (r *reader) requiredReference(name string, source Source) uint {
	if ref := r.reference(name, source, true); ref != nil {
		return *ref
	}
	return 0
}

func hasChoice(choices []crud.Choice, value string) bool {
	for _, choice := range choices {
		if choice.Value == value {
			return true
		}
	}
	return false
}

func textField(name, label, value string, required bool) crud.Field {
	return crud.Field{Name: name, Label: label, Kind: crud.KindText, Value: value, Required: required}
}

func textAreaField(name, label, value string) crud.Field {
	return crud.Field{Name: name, Label: label, Kind: crud.KindTextArea, Value: value}
}

func numberField(name, label, value string, required bool) crud.Field {
	return crud.Field{Name: name, Label: label, Kind: crud.KindNumber, Value: value, Required: required}
}

func checkboxField(name, label string, checked bool) crud.Field {
	return crud.Field{Name: name, Label: label, Kind: crud.KindCheckbox, Checked: checked}
}

func selectField(name, label, value string, choices []crud.Choice, required bool) crud.Field {
	return crud.Field{Name: name, Label: label, Kind: crud.KindSelect, Value: value, Choices: choices, Required: required}
}

func (s Schemas) referenceField(ctx context.Context, name, label string, source Source, value *uint, required bool) (crud.Field, error) {
	choices, err := s.choices(ctx, source)
	if err != nil {
		return crud.Field{}, err
	}
	return selectField(name, label, formatRef(value), choices, required), nil
}

func formatInt(value int) string {
	if value == 0 {
		return ""
	}
	return strconv.Itoa(value)
}

func formatOptionalInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func formatRef(value *uint) string {
	if value == nil || *value == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(*value), 10)
}

func formatID(value uint) string {
	return formatRef(&value)
}

func formatDecimal(value float64) string {
	if value == 0 {
		return ""
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func labelled(label func(int) string, values ...int) []crud.Choice {
	choices := make([]crud.Choice, 0, len(values))
	for _, value := range values {
		choices = append(choices, crud.Choice{Value: strconv.Itoa(value), Label: label(value)})
	}
	return choices
}
