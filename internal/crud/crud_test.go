package crud

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/a-h/templ"
)

type gadget struct {
	ID   uint
	Name string
}

var gadgetSchema = Form[gadget]{
	Name: "Gadget",
	Validate: func(_ context.Context, form url.Values, record *gadget) FieldErrors {
		errs := FieldErrors{}
		name := strings.TrimSpace(form.Get("name"))
		if name == "" {
			errs.Add("name", "This field is required.")
		}
		record.Name = name
		return errs
	},
	Describe: func(_ context.Context, record *gadget) ([]Field, error) {
		return []Field{{Name: "name", Label: "Name", Kind: KindText, Value: record.Name, Required: true}}, nil
	},
	Title:    func(record *gadget) string { return record.Name },
	Identify: func(record *gadget) uint { return record.ID },
}

func namedSchema(name string) Schema {
	return Form[gadget]{Name: name, Identify: func(record *gadget) uint { return record.ID }}
}

type memoryStore struct {
	mu      sync.Mutex
	next    uint
	records map[uint]gadget
}

func newMemoryStore(names ...string) *memoryStore {
	store := &memoryStore{records: map[uint]gadget{}}
	for _, name := range names {
		store.next++
		store.records[store.next] = gadget{ID: store.next, Name: name}
	}
	return store
}

func (s *memoryStore) List(_ context.Context, list any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := list.(*[]gadget)
	for _, record := range s.records {
		*items = append(*items, record)
	}
	return nil
}

func (s *memoryStore) Get(_ context.Context, record any, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	found, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	*record.(*gadget) = found
	return nil
}

func (s *memoryStore) Create(_ context.Context, record any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := record.(*gadget)
	s.next++
	g.ID = s.next
	s.records[g.ID] = *g
	return nil
}

func (s *memoryStore) Update(_ context.Context, record any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := record.(*gadget)
	s.records[g.ID] = *g
	return nil
}

func (s *memoryStore) Delete(_ context.Context, record any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, record.(*gadget).ID)
	return nil
}

func (s *memoryStore) get(id uint) (gadget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.records[id]
	return g, ok
}

// textPages renders pages as plain text lines so assertions can match on them.
type textPages struct{}

func text(format string, args ...any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	})
}

func (textPages) List(page ListPage) templ.Component {
	var b strings.Builder
	for _, row := range page.Rows {
		fmt.Fprintf(&b, "%d:%s edit=%s delete=%s\n", row.ID, row.Label, row.EditURL, row.DeleteURL)
	}
	return text("list %s create=%s\n%s", page.Resource, page.CreateURL, b.String())
}

func (textPages) Form(page FormPage) templ.Component {
	var b strings.Builder
	for _, field := range page.Fields {
		fmt.Fprintf(&b, "%s=%q errors=%v\n", field.Name, field.Value, field.Errors)
	}
	return text("form %s action=%s creating=%t\n%s", page.Resource, page.Action, page.Creating, b.String())
}

func (textPages) ConfirmDelete(page DeletePage) templ.Component {
	return text("confirm %s %s action=%s", page.Resource, page.Label, page.Action)
}

func (textPages) NotFound(entity string) templ.Component {
	return text("%s not found", entity)
}
