package crud

import (
	"errors"
	"net/http"
	"sort"

	"github.com/a-h/templ"

	applog "cuisine/internal/log"
)

// ListView renders every record of the resource ordered by id.
var ListView = ViewFunc(func(b Binding) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		schema := b.Resource.Schema
		list := schema.NewList()
		if err := b.Store.List(r.Context(), list); err != nil {
			applog.Error(r.Context(), "failed to list records", "resource", b.Name(), "error", err)
			http.Error(w, "unable to load records", http.StatusInternalServerError)
			return
		}

		records := schema.Records(list)
		sort.SliceStable(records, func(i, j int) bool {
			return schema.ID(records[i]) < schema.ID(records[j])
		})

		page := ListPage{
			Resource:  b.Name(),
			Entity:    schema.Entity(),
			CreateURL: b.URL(ActionCreate, 0),
			Rows:      make([]Row, 0, len(records)),
		}
		for _, record := range records {
			id := schema.ID(record)
			page.Rows = append(page.Rows, Row{
				ID:        id,
				Label:     schema.Label(record),
				EditURL:   b.URL(ActionUpdate, id),
				DeleteURL: b.URL(ActionDelete, id),
			})
		}

		b.Render(w, r, http.StatusOK, b.Pages.List(page))
	})
})

// CreateView renders an empty form on GET and inserts a record on POST.
var CreateView = ViewFunc(func(b Binding) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodPost:
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		record := b.Resource.Schema.New()
		submit(b, w, r, record, true)
	})
})

// UpdateView loads the record named by {id}, renders it on GET and saves the
// submitted changes on POST.
var UpdateView = ViewFunc(func(b Binding) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodPost:
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		record, ok := b.Load(w, r)
		if !ok {
			return
		}
		submit(b, w, r, record, false)
	})
})

// DeleteView asks for confirmation on GET and deletes the record on POST.
var DeleteView = ViewFunc(func(b Binding) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodPost:
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		record, ok := b.Load(w, r)
		if !ok {
			return
		}
		schema := b.Resource.Schema
		id := schema.ID(record)

		if r.Method == http.MethodGet {
			b.Render(w, r, http.StatusOK, b.Pages.ConfirmDelete(DeletePage{
				Resource:  b.Name(),
				Entity:    schema.Entity(),
				Label:     schema.Label(record),
				Action:    b.URL(ActionDelete, id),
				CancelURL: b.returnURL(id),
			}))
			return
		}

		if err := b.Store.Delete(r.Context(), record); err != nil {
			applog.Error(r.Context(), "failed to delete record", "resource", b.Name(), "id", id, "error", err)
			http.Error(w, "unable to delete record", http.StatusInternalServerError)
			return
		}

		applog.Debug(r.Context(), "record deleted", "resource", b.Name(), "id", id)
		http.Redirect(w, r, b.returnURL(0), http.StatusSeeOther)
	})
})

// Load fetches the record named by the {id} path value. It writes the
// not-found page and returns false when the id is malformed or unknown.
func (b Binding) Load(w http.ResponseWriter, r *http.Request) (any, bool) {
	id, ok := IDFromRequest(r)
	if !ok {
		applog.Debug(r.Context(), "invalid record identifier", "resource", b.Name(), "value", r.PathValue("id"))
		b.NotFound(w, r)
		return nil, false
	}

	record := b.Resource.Schema.New()
	if err := b.Store.Get(r.Context(), record, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			b.NotFound(w, r)
			return nil, false
		}
		applog.Error(r.Context(), "failed to load record", "resource", b.Name(), "id", id, "error", err)
		http.Error(w, "unable to load record", http.StatusInternalServerError)
		return nil, false
	}
	return record, true
}

// NotFound renders the resource's not-found page with status 404.
func (b Binding) NotFound(w http.ResponseWriter, r *http.Request) {
	b.Render(w, r, http.StatusNotFound, b.Pages.NotFound(b.Resource.Schema.Entity()))
}

// Render writes component with the given status.
func (b Binding) Render(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render page", "resource", b.Name(), "error", err)
	}
}

// FormPage builds the page for record with any submitted values and errors
// laid over the schema's fields.
func (b Binding) FormPage(r *http.Request, record any, creating bool, errs FieldErrors) (FormPage, error) {
	schema := b.Resource.Schema
	fields, err := schema.Fields(r.Context(), record)
	if err != nil {
		return FormPage{}, err
	}

	id := schema.ID(record)
	page := FormPage{
		Resource:  b.Name(),
		Entity:    schema.Entity(),
		Creating:  creating,
		CancelURL: b.returnURL(id),
	}
	if creating {
		page.Action = b.URL(ActionCreate, 0)
	} else {
		page.Action = b.URL(ActionUpdate, id)
	}

	var submitted = r.PostForm
	if r.Method != http.MethodPost {
		submitted = nil
	}
	page.Fields = overlay(fields, submitted, errs)
	page.Errors = errs[""]
	return page, nil
}

func submit(b Binding, w http.ResponseWriter, r *http.Request, record any, creating bool) {
	schema := b.Resource.Schema
	status := http.StatusOK
	errs := FieldErrors{}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse form", "resource", b.Name(), "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}

		errs = schema.Bind(r.Context(), r.PostForm, record)
		if errs.Empty() {
			var err error
			if creating {
				err = b.Store.Create(r.Context(), record)
			} else {
				err = b.Store.Update(r.Context(), record)
			}
			if err != nil {
				applog.Error(r.Context(), "failed to save record", "resource", b.Name(), "error", err)
				http.Error(w, "unable to save record", http.StatusInternalServerError)
				return
			}

			id := schema.ID(record)
			applog.Debug(r.Context(), "record saved", "resource", b.Name(), "id", id, "created", creating)
			http.Redirect(w, r, b.returnURL(id), http.StatusSeeOther)
			return
		}
		status = http.StatusUnprocessableEntity
	}

	page, err := b.FormPage(r, record, creating, errs)
	if err != nil {
		applog.Error(r.Context(), "failed to describe form", "resource", b.Name(), "error", err)
		http.Error(w, "unable to render form", http.StatusInternalServerError)
		return
	}
	b.Render(w, r, status, b.Pages.Form(page))
}

// returnURL is where a finished form sends the user: the list when it is
// routed, otherwise the record itself.
func (b Binding) returnURL(id uint) string {
	if target := b.URL(ActionList, 0); target != "" {
		return target
	}
	if id > 0 {
		if target := b.URL(ActionUpdate, id); target != "" {
			return target
		}
	}
	return "/"
}
