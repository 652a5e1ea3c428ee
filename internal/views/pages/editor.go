package pages

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"cuisine/internal/crud"
	"cuisine/internal/forms"
	"cuisine/internal/views/components"
	"cuisine/internal/views/layout"
)

// RecipeEditor is the data of the recipe create and edit page.
type RecipeEditor struct {
	Form        crud.FormPage
	Ingredients forms.FormsetPage
	Steps       forms.FormsetPage
}

// RecipeEditorPage renders the recipe fields followed by the ingredient and
// step formsets.
func RecipeEditorPage(editor RecipeEditor) templ.Component {
	title := "Edit recipe"
	if editor.Form.Creating {
		title = "New recipe"
	}
	return layout.Layout(title, components.Func(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<section class="recipe-editor">`)
		h.Element("h1", "", title)
		h.Render(ctx, components.Errors(editor.Form.Errors))
		h.Raw(`<form method="post"`)
		h.Attr("action", editor.Form.Action)
		h.Raw(">")
		for _, field := range editor.Form.Fields {
			h.Render(ctx, components.Field(field))
		}
		h.Render(ctx, Formset("Ingredients", editor.Ingredients))
		h.Render(ctx, Formset("Steps", editor.Steps))
		h.Raw(`<button type="submit">Save recipe</button> `)
		h.Link(editor.Form.CancelURL, "", "Cancel")
		h.Raw("</form></section>")
	}))
}

// Formset renders the management field and one table row per formset row.
func Formset(legend string, page forms.FormsetPage) templ.Component {
	return components.Func(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<fieldset class="formset"`)
		h.Attr("data-prefix", page.Prefix)
		h.Raw("><legend>")
		h.Text(legend)
		h.Raw(`</legend><input type="hidden"`)
		h.Attr("name", page.TotalName)
		h.Attr("value", strconv.Itoa(page.Total))
		h.Raw(">")
		h.Render(ctx, components.Errors(page.Errors))

		h.Raw("<table><thead><tr>")
		if len(page.Rows) > 0 {
			for _, field := range page.Rows[0].Fields {
				if field.Kind != crud.KindHidden {
					h.Element("th", "", field.Label)
				}
			}
		}
		h.Raw("<th>Delete</th></tr></thead><tbody>")
		for _, row := range page.Rows {
			h.Raw("<tr>")
			for _, field := range row.Fields {
				if field.Kind == crud.KindHidden {
					h.Render(ctx, components.Cell(field))
					continue
				}
				h.Raw("<td>")
				h.Render(ctx, components.Cell(field))
				h.Raw("</td>")
			}
			h.Raw(`<td><input type="checkbox" value="on"`)
			h.Attr("name", page.Prefix+"-"+strconv.Itoa(row.Index)+"-DELETE")
			h.Flag("checked", row.Delete)
			h.Raw("></td></tr>")
		}
		h.Raw("</tbody></table></fieldset>")
	})
}

// RecipeImport is the data of the import page.
type RecipeImport struct {
	Fields  []crud.Field
	Errors  []string
	Message string
}

// RecipeImportPage renders the document upload form.
func RecipeImportPage(page RecipeImport) templ.Component {
	return layout.Layout("Import a recipe", components.Func(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<section class="recipe-import"><h1>Import a recipe</h1>`)
		h.Element("p", "hint", "Upload a plain text or PDF document. The first line becomes the title and numbered lines become steps.")
		alert(h, page.Message)
		h.Render(ctx, components.Errors(page.Errors))
		h.Raw(`<form method="post" action="/recipe/import/" enctype="multipart/form-data">`)
		for _, field := range page.Fields {
			h.Render(ctx, components.Field(field))
		}
		h.Raw(`<div class="field"><label for="id_document">Document</label><input type="file" id="id_document" name="document" accept=".txt,.pdf,text/plain,application/pdf" required></div>`)
		h.Raw(`<button type="submit">Import</button></form></section>`)
	}))
}
