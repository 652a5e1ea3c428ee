package components

import (
	"context"

	"github.com/a-h/templ"

	"cuisine/internal/crud"
)

// Errors renders a list of validation messages.
func Errors(messages []string) templ.Component {
	return Func(func(_ context.Context, h *HTML) {
		if len(messages) == 0 {
			return
		}
		h.Raw(`<ul class="errorlist">`)
		for _, message := range messages {
			h.Element("li", "", message)
		}
		h.Raw(`</ul>`)
	})
}

// Field renders the label, control and messages of one form field.
func Field(field crud.Field) templ.Component {
	return Func(func(ctx context.Context, h *HTML) {
		if field.Kind == crud.KindHidden {
			control(h, field)
			return
		}

		h.Raw(`<div class="field"`)
		h.Attr("data-field", field.Name)
		h.Raw(`><label`)
		h.Attr("for", "id_"+field.Name)
		h.Raw(">")
		h.Text(field.Label)
		h.Raw("</label>")
		control(h, field)
		h.Render(ctx, Errors(field.Errors))
		h.Raw("</div>")
	})
}

// Cell renders a field without its label, for formset table rows.
func Cell(field crud.Field) templ.Component {
	return Func(func(ctx context.Context, h *HTML) {
		control(h, field)
		h.Render(ctx, Errors(field.Errors))
	})
}

func control(h *HTML, field crud.Field) {
	switch field.Kind {
	case crud.KindTextArea:
		h.Raw("<textarea")
		h.Attr("id", "id_"+field.Name)
		h.Attr("name", field.Name)
		h.Flag("required", field.Required)
		h.Raw(">")
		h.Text(field.Value)
		h.Raw("</textarea>")
	case crud.KindSelect:
		h.Raw("<select")
		h.Attr("id", "id_"+field.Name)
		h.Attr("name", field.Name)
		h.Flag("required", field.Required)
		h.Raw(`><option value="">---------</option>`)
		for _, choice := range field.Choices {
			h.Raw("<option")
			h.Attr("value", choice.Value)
			h.Flag("selected", choice.Value == field.Value)
			h.Raw(">")
			h.Text(choice.Label)
			h.Raw("</option>")
		}
		h.Raw("</select>")
	case crud.KindCheckbox:
		h.Raw(`<input type="checkbox" value="on"`)
		h.Attr("id", "id_"+field.Name)
		h.Attr("name", field.Name)
		h.Flag("checked", field.Checked)
		h.Raw(">")
	default:
		h.Raw("<input")
		h.Attr("type", string(field.Kind))
		if field.Kind == crud.KindNumber {
			h.Attr("step", "any")
		}
		h.Attr("id", "id_"+field.Name)
		h.Attr("name", field.Name)
		h.Attr("value", field.Value)
		h.Flag("required", field.Required)
		h.Raw(">")
	}
}
