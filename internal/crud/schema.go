package crud

import (
	"context"
	"net/url"
	"sort"
	"strings"
)

// FieldKind selects the input control used to render a field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextArea FieldKind = "textarea"
	KindNumber   FieldKind = "number"
	KindCheckbox FieldKind = "checkbox"
	KindSelect   FieldKind = "select"
	KindHidden   FieldKind = "hidden"
)

// Choice is one option of a select field.
type Choice struct {
	Value string
	Label string
}

// Field describes one editable attribute of a record for rendering.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Value    string
	Checked  bool
	Required bool
	Choices  []Choice
	Errors   []string
}

// FieldErrors maps a field name to its validation messages. The empty name
// holds errors that do not belong to a single field.
type FieldErrors map[string][]string

// Add records a message against field.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Empty reports whether no messages were recorded.
func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

func (e FieldErrors) Error() string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		label := name
		if label == "" {
			label = "form"
		}
		parts = append(parts, label+": "+strings.Join(e[name], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Schema is the input validation schema bound to one entity type. Records
// passed in and out are pointers to that entity; lists are pointers to
// slices of it.
type Schema interface {
	Entity() string
	New() any
	NewList() any
	Records(list any) []any
	ID(record any) uint
	Label(record any) string
	Bind(ctx context.Context, form url.Values, record any) FieldErrors
	Fields(ctx context.Context, record any) ([]Field, error)
}

// Form adapts typed functions over T into a Schema.
type Form[T any] struct {
	Name     string
	Validate func(ctx context.Context, form url.Values, record *T) FieldErrors
	Describe func(ctx context.Context, record *T) ([]Field, error)
	Title    func(record *T) string
	Identify func(record *T) uint
}

var _ Schema = Form[struct{}]{}

func (f Form[T]) Entity() string { return f.Name }

func (f Form[T]) New() any { return new(T) }

func (f Form[T]) NewList() any { return &[]T{} }

func (f Form[T]) Records(list any) []any {
	items := list.(*[]T)
	out := make([]any, len(*items))
	for i := range *items {
		out[i] = &(*items)[i]
	}
	return out
}

func (f Form[T]) ID(record any) uint {
	if f.Identify == nil {
		return 0
	}
	return f.Identify(record.(*T))
}

func (f Form[T]) Label(record any) string {
	if f.Title == nil {
		return f.Name
	}
	return f.Title(record.(*T))
}

func (f Form[T]) Bind(ctx context.Context, form url.Values, record any) FieldErrors {
	if f.Validate == nil {
		return FieldErrors{}
	}
	errs := f.Validate(ctx, form, record.(*T))
	if errs == nil {
		errs = FieldErrors{}
	}
	return errs
}

func (f Form[T]) Fields(ctx context.Context, record any) ([]Field, error) {
	if f.Describe == nil {
		return nil, nil
	}
	return f.Describe(ctx, record.(*T))
}

// overlay copies submitted values and validation messages onto fields so a
// rejected form re-renders with what the user typed.
func overlay(fields []Field, form url.Values, errs FieldErrors) []Field {
	out := make([]Field, len(fields))
	for i, field := range fields {
		if form != nil {
			if field.Kind == KindCheckbox {
				field.Checked = form.Has(field.Name)
			} else if form.Has(field.Name) {
				field.Value = form.Get(field.Name)
			}
		}
		field.Errors = errs[field.Name]
		out[i] = field
	}
	return out
}
