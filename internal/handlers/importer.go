package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cuisine/internal/crud"
	"cuisine/internal/importer"
	applog "cuisine/internal/log"
	"cuisine/internal/recipes"
	"cuisine/internal/views/components"
	"cuisine/internal/views/pages"
	"cuisine/models"
)

const documentField = "document"

// RecipeImport turns an uploaded text or PDF document into an unpublished
// recipe owned by the signed-in user.
func RecipeImport(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodPost:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if unavailable(w, r) {
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		redirectToLogin(w, r)
		return
	}

	form := schemas.RecipeImport()
	record := &models.Recipe{Difficulty: models.DifficultyMedium}

	if r.Method == http.MethodGet {
		renderImport(w, r, http.StatusOK, record, crud.FieldErrors{}, "")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, importer.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(importer.MaxUploadSize); err != nil {
		applog.Debug(r.Context(), "failed to parse import upload", "error", err)
		renderImport(w, r, http.StatusRequestEntityTooLarge, record, crud.FieldErrors{},
			"The document could not be read. Uploads are limited to 5 MB.")
		return
	}

	errs := form.Bind(r.Context(), r.PostForm, record)

	file, header, err := r.FormFile(documentField)
	if err != nil {
		errs.Add(documentField, "Please choose a document to import.")
		renderImport(w, r, http.StatusUnprocessableEntity, record, errs, "")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, importer.MaxUploadSize+1))
	if err != nil {
		applog.Error(r.Context(), "failed to read uploaded document", "error", err)
		renderImport(w, r, http.StatusBadRequest, record, errs, "The document could not be read.")
		return
	}
	if len(data) > importer.MaxUploadSize {
		renderImport(w, r, http.StatusRequestEntityTooLarge, record, errs, "Uploads are limited to 5 MB.")
		return
	}

	text, err := importer.Extract(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		applog.Debug(r.Context(), "unable to extract document text", "name", header.Filename, "error", err)
		errs.Add(documentField, documentMessage(err))
		renderImport(w, r, http.StatusUnprocessableEntity, record, errs, "")
		return
	}
	parsed, err := importer.Parse(text)
	if err != nil {
		errs.Add(documentField, documentMessage(err))
		renderImport(w, r, http.StatusUnprocessableEntity, record, errs, "")
		return
	}
	if !errs.Empty() {
		renderImport(w, r, http.StatusUnprocessableEntity, record, errs, "")
		return
	}

	draft := importedDraft(*record, parsed)
	saved, err := service.Import(r.Context(), userID, draft)
	if err != nil {
		renderRecipeError(w, r, err)
		return
	}

	applog.Info(r.Context(), "recipe imported", "id", saved.ID, "author", userID,
		"document", header.Filename, "steps", len(saved.Steps))
	redirectTo(w, r, components.RecipeURL(saved.ID))
}

// importedDraft fills a draft from parsed document content. Ingredient
// lines cannot be matched to foods, so they become a first preparation step.
func importedDraft(recipe models.Recipe, parsed importer.Parsed) recipes.Draft {
	recipe.Title = truncate(parsed.Title, 200)
	recipe.Summary = truncate(parsed.Summary, 500)

	var steps []models.RecipeStep
	if len(parsed.Ingredients) > 0 {
		steps = append(steps, models.RecipeStep{Text: "Gather: " + strings.Join(parsed.Ingredients, "; ")})
	}
	for _, text := range parsed.Steps {
		steps = append(steps, models.RecipeStep{Text: text})
	}
	for i := range steps {
		steps[i].Order = i + 1
	}
	return recipes.Draft{Recipe: recipe, Steps: steps}
}

func truncate(value string, max int) string {
	runes := []rune(strings.TrimSpace(value))
	if len(runes) <= max {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:max]))
}

func documentMessage(err error) string {
	switch {
	case errors.Is(err, importer.ErrUnsupported):
		return "Upload a plain text or PDF document."
	case errors.Is(err, importer.ErrEmpty):
		return "The document does not contain a recipe title."
	default:
		return "The document could not be read."
	}
}

func renderImport(w http.ResponseWriter, r *http.Request, status int, record *models.Recipe, errs crud.FieldErrors, message string) {
	fields, err := importFields(r.Context(), record, errs)
	if err != nil {
		renderRecipeError(w, r, fmt.Errorf("describe import form: %w", err))
		return
	}
	renderStatus(w, r, status, pages.RecipeImportPage(pages.RecipeImport{
		Fields:  fields,
		Errors:  append(errs[""], errs[documentField]...),
		Message: message,
	}))
}

func importFields(ctx context.Context, record *models.Recipe, errs crud.FieldErrors) ([]crud.Field, error) {
	fields, err := schemas.RecipeImport().Describe(ctx, record)
	if err != nil {
		return nil, err
	}
	for i := range fields {
		fields[i].Errors = errs[fields[i].Name]
	}
	return fields, nil
}
