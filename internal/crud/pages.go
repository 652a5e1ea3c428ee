package crud

import "github.com/a-h/templ"

// Row is one record in a list page.
type Row struct {
	ID        uint
	Label     string
	EditURL   string
	DeleteURL string
}

// ListPage is the data rendered by the generic list view.
type ListPage struct {
	Resource  string
	Entity    string
	Rows      []Row
	CreateURL string
}

// FormPage is the data rendered by the generic create and update views.
type FormPage struct {
	Resource  string
	Entity    string
	Action    string
	Creating  bool
	Fields    []Field
	Errors    []string
	CancelURL string
}

// DeletePage is the data rendered by the generic delete confirmation.
type DeletePage struct {
	Resource  string
	Entity    string
	Label     string
	Action    string
	CancelURL string
}

// Pages is the rendering collaborator for the generic views.
type Pages interface {
	List(page ListPage) templ.Component
	Form(page FormPage) templ.Component
	ConfirmDelete(page DeletePage) templ.Component
	NotFound(entity string) templ.Component
}
