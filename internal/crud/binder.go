// Package crud generates list, create, update and delete routes for any
// entity from an explicit resource descriptor.
package crud

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Action identifies one of the four conventional routes of a resource.
type Action string

const (
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var actions = []Action{ActionList, ActionCreate, ActionUpdate, ActionDelete}

var (
	// ErrDuplicateResource is returned when two descriptors derive the same resource name.
	ErrDuplicateResource = errors.New("crud: duplicate resource name")
	// ErrInvalidResource is returned for descriptors without a usable schema.
	ErrInvalidResource = errors.New("crud: invalid resource descriptor")
)

// View builds the handler serving one route of a bound resource.
type View interface {
	Handler(b Binding) http.Handler
}

// ViewFunc adapts a function into a View.
type ViewFunc func(b Binding) http.Handler

func (f ViewFunc) Handler(b Binding) http.Handler { return f(b) }

type noView struct{}

func (noView) Handler(Binding) http.Handler { return nil }

// None suppresses a route when set as a view option.
var None View = noView{}

// Options customise the routes generated for a resource. A nil view selects
// the generic view, None drops the route, and a non-empty URL replaces the
// default path pattern. Patterns use {id} for the record identity.
type Options struct {
	ListView      View
	ListViewURL   string
	CreateView    View
	CreateViewURL string
	UpdateView    View
	UpdateViewURL string
	DeleteView    View
	DeleteViewURL string
}

// Resource pairs an entity schema with its route options.
type Resource struct {
	Schema  Schema
	Options Options
}

// Name is the lowercase entity tag used in paths and route names.
func (r Resource) Name() string {
	if r.Schema == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(r.Schema.Entity()))
}

func (r Resource) view(action Action) View {
	switch action {
	case ActionList:
		return r.Options.ListView
	case ActionCreate:
		return r.Options.CreateView
	case ActionUpdate:
		return r.Options.UpdateView
	default:
		return r.Options.DeleteView
	}
}

func (r Resource) enabled(action Action) bool {
	_, suppressed := r.view(action).(noView)
	return !suppressed
}

// Pattern returns the path pattern for action, honouring URL overrides.
func (r Resource) Pattern(action Action) string {
	name := r.Name()
	switch action {
	case ActionList:
		return firstNonEmpty(r.Options.ListViewURL, "/"+name+"/")
	case ActionCreate:
		return firstNonEmpty(r.Options.CreateViewURL, "/"+name+"/add/")
	case ActionUpdate:
		return firstNonEmpty(r.Options.UpdateViewURL, "/"+name+"/{id}/")
	default:
		return firstNonEmpty(r.Options.DeleteViewURL, "/"+name+"/{id}/delete/")
	}
}

// RouteName returns the namespaced route name for action. Create and update
// share the "_form" name.
func (r Resource) RouteName(action Action) string {
	switch action {
	case ActionList:
		return r.Name() + "_list"
	case ActionCreate, ActionUpdate:
		return r.Name() + "_form"
	default:
		return r.Name() + "_delete"
	}
}

// Binding is what a View receives: the descriptor plus the collaborators
// shared by every generated route.
type Binding struct {
	Resource Resource
	Store    Store
	Pages    Pages
}

// Name is the bound resource name.
func (b Binding) Name() string { return b.Resource.Name() }

// URL returns the concrete path of action for the record id, or "" when the
// route is suppressed.
func (b Binding) URL(action Action, id uint) string {
	if !b.Resource.enabled(action) {
		return ""
	}
	return expand(b.Resource.Pattern(action), id)
}

// Route is one generated route.
type Route struct {
	Name     string
	Resource string
	Action   Action
	Pattern  string
	Handler  http.Handler
}

// Binder turns resource descriptors into a route table.
type Binder struct {
	Store Store
	Pages Pages
	// Guard wraps the create, update and delete handlers, typically with a
	// login requirement.
	Guard func(http.Handler) http.Handler
}

// Bind produces the routes for each resource in input order. It performs no
// I/O and fails when two resources share a name or two routes share a
// pattern.
func (b Binder) Bind(resources ...Resource) (*Table, error) {
	seen := make(map[string]struct{}, len(resources))
	patterns := make(map[string]string)
	table := &Table{}

	for i, resource := range resources {
		name := resource.Name()
		if name == "" {
			return nil, fmt.Errorf("%w: resource %d has no entity name", ErrInvalidResource, i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateResource, name)
		}
		seen[name] = struct{}{}

		binding := Binding{Resource: resource, Store: b.Store, Pages: b.Pages}
		for _, action := range actions {
			if !resource.enabled(action) {
				continue
			}
			view := resource.view(action)
			if view == nil {
				view = defaultView(action)
			}
			handler := view.Handler(binding)
			if handler == nil {
				return nil, fmt.Errorf("%w: %s view for %q built no handler", ErrInvalidResource, action, name)
			}
			if action != ActionList && b.Guard != nil {
				handler = b.Guard(handler)
			}
			pattern := resource.Pattern(action)
			key := patternKey(pattern)
			if owner, taken := patterns[key]; taken {
				return nil, fmt.Errorf("%w: %s route %q of %q collides with %s", ErrDuplicateResource, action, pattern, name, owner)
			}
			patterns[key] = fmt.Sprintf("%s route of %q", action, name)
			table.routes = append(table.routes, Route{
				Name:     resource.RouteName(action),
				Resource: name,
				Action:   action,
				Pattern:  pattern,
				Handler:  handler,
			})
		}
	}

	return table, nil
}

func defaultView(action Action) View {
	switch action {
	case ActionList:
		return ListView
	case ActionCreate:
		return CreateView
	case ActionUpdate:
		return UpdateView
	default:
		return DeleteView
	}
}

// Table is the read-only result of binding.
type Table struct {
	routes []Route
}

// Routes returns the generated routes in bind order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Register installs every route on mux. Patterns ending in a slash match
// that exact path only.
func (t *Table) Register(mux *http.ServeMux) {
	for _, route := range t.routes {
		mux.Handle(muxPattern(route.Pattern), route.Handler)
	}
}

// Reverse resolves a route name into a path. The shared "_form" name
// resolves to the update route when an id is given and to create otherwise.
func (t *Table) Reverse(name string, id ...uint) (string, error) {
	wantID := len(id) > 0
	for _, route := range t.routes {
		if route.Name != name {
			continue
		}
		if strings.Contains(route.Pattern, "{id}") != wantID {
			continue
		}
		if wantID {
			return expand(route.Pattern, id[0]), nil
		}
		return route.Pattern, nil
	}
	return "", fmt.Errorf("crud: no route named %q", name)
}

// IDFromRequest returns the positive integer {id} path value.
func IDFromRequest(r *http.Request) (uint, bool) {
	value, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func muxPattern(pattern string) string {
	if strings.HasSuffix(pattern, "/") {
		return pattern + "{$}"
	}
	return pattern
}

// patternKey reduces a pattern to what the mux matches on, so two
// patterns differing only in wildcard names compare equal.
func patternKey(pattern string) string {
	segments := strings.Split(muxPattern(pattern), "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, "{") && segment != "{$}" {
			segments[i] = "{}"
		}
	}
	return strings.Join(segments, "/")
}

func expand(pattern string, id uint) string {
	return strings.ReplaceAll(pattern, "{id}", strconv.FormatUint(uint64(id), 10))
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
