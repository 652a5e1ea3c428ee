package pages

import (
	"context"

	"github.com/a-h/templ"

	"cuisine/internal/crud"
	"cuisine/internal/views/components"
	"cuisine/internal/views/layout"
)

// Catalogue renders the generic list, form and delete views of the bound
// resources.
type Catalogue struct{}

var _ crud.Pages = Catalogue{}

func (Catalogue) List(page crud.ListPage) templ.Component {
	return layout.Layout(page.Entity+" list", components.Func(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<section class="catalogue"`)
		h.Attr("data-resource", page.Resource)
		h.Raw(">")
		h.Element("h1", "", page.Entity+" list")
		if page.CreateURL != "" {
			h.Link(page.CreateURL, "button", "Add "+page.Entity)
		}
		if len(page.Rows) == 0 {
			h.Element("p", "empty", "No records yet.")
		} else {
			h.Raw(`<table><tbody>`)
			for _, row := range page.Rows {
				h.Raw("<tr><td>")
				if row.EditURL != "" {
					h.Link(row.EditURL, "", row.Label)
				} else {
					h.Text(row.Label)
				}
				h.Raw("</td><td>")
				if row.DeleteURL != "" {
					h.Link(row.DeleteURL, "danger", "Delete")
				}
				h.Raw("</td></tr>")
			}
			h.Raw(`</tbody></table>`)
		}
		h.Raw("</section>")
	}))
}

func (Catalogue) Form(page crud.FormPage) templ.Component {
	title := "Edit " + page.Entity
	if page.Creating {
		title = "Add " + page.Entity
	}
	return layout.Layout(title, components.Func(func(ctx context.Context, h *components.HTML) {
		h.Element("h1", "", title)
		h.Render(ctx, components.Errors(page.Errors))
		h.Raw(`<form method="post"`)
		h.Attr("action", page.Action)
		h.Raw(">")
		for _, field := range page.Fields {
			h.Render(ctx, components.Field(field))
		}
		h.Raw(`<button type="submit">Save</button> `)
		h.Link(page.CancelURL, "", "Cancel")
		h.Raw("</form>")
	}))
}

func (Catalogue) ConfirmDelete(page crud.DeletePage) templ.Component {
	return layout.Layout("Delete "+page.Entity, components.Func(func(ctx context.Context, h *components.HTML) {
		h.Element("h1", "", "Delete "+page.Entity)
		h.Raw("<p>Are you sure you want to delete <strong>")
		h.Text(page.Label)
		h.Raw(`</strong>?</p><form method="post"`)
		h.Attr("action", page.Action)
		h.Raw(`><button type="submit" class="danger">Delete</button> `)
		h.Link(page.CancelURL, "", "Cancel")
		h.Raw("</form>")
	}))
}

func (Catalogue) NotFound(entity string) templ.Component {
	return ErrorPage("Not found", entity+" not found.")
}
