// Package importer turns an uploaded recipe document into recipe fields.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MaxUploadSize bounds the size of an uploaded document.
const MaxUploadSize = 5 << 20 // 5 MiB

var (
	// ErrUnsupported is returned for documents that are neither text nor PDF.
	ErrUnsupported = errors.New("importer: unsupported document type")
	// ErrEmpty is returned when no title can be found in the document.
	ErrEmpty = errors.New("importer: document has no recipe text")
)

var (
	stepPattern       = regexp.MustCompile(`(?i)^\s*(?:step\s*)?(\d{1,3})\s*[.):-]\s*(.+)$`)
	stepsHeading      = regexp.MustCompile(`(?i)^\s*(steps|method|preparation|directions)\s*:?\s*$`)
	ingredientHeading = regexp.MustCompile(`(?i)^\s*ingredients\s*:?\s*$`)
	cleanWhitespace   = regexp.MustCompile(`[ \t]+`)
)

// Parsed is the recipe content recovered from a document.
type Parsed struct {
	Title       string
	Summary     string
	Ingredients []string
	Steps       []string
}

// Extract returns the plain text of an uploaded document. PDF files are
// recognised by MIME type, extension or their magic header.
func Extract(name, mime string, data []byte) (string, error) {
	switch kind(name, mime, data) {
	case "pdf":
		text, err := textFromPDF(data)
		if err != nil {
			return "", fmt.Errorf("read pdf: %w", err)
		}
		return text, nil
	case "text":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: text is not valid UTF-8", ErrUnsupported)
		}
		return string(data), nil
	default:
		return "", ErrUnsupported
	}
}

func kind(name, mime string, data []byte) string {
	lower := strings.ToLower(mime)
	switch {
	case strings.Contains(lower, "pdf"), bytes.HasPrefix(data, []byte("%PDF-")):
		return "pdf"
	case strings.HasPrefix(lower, "text/"):
		return "text"
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "pdf"
	case ".txt", ".text", ".md", "":
		return "text"
	}
	return ""
}

func textFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// Parse splits recipe text into its parts. The first non-empty line is the
// title. Lines before the first numbered step form the summary, except for
// an optional "Ingredients" section whose lines are listed separately.
// Numbered lines ("1.", "2)", "Step 3:") start a step and unnumbered lines
// after them continue it.
func Parse(text string) (Parsed, error) {
	var (
		parsed  Parsed
		summary []string
		section string
	)

	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(cleanWhitespace.ReplaceAllString(line, " "))
		if line == "" {
			continue
		}
		if parsed.Title == "" {
			parsed.Title = line
			continue
		}

		switch {
		case ingredientHeading.MatchString(line):
			section = "ingredients"
			continue
		case stepsHeading.MatchString(line):
			section = "steps"
			continue
		}

		if match := stepPattern.FindStringSubmatch(line); match != nil {
			section = "steps"
			parsed.Steps = append(parsed.Steps, strings.TrimSpace(match[2]))
			continue
		}

		switch section {
		case "ingredients":
			parsed.Ingredients = append(parsed.Ingredients, strings.TrimLeft(line, "-*• "))
		case "steps":
			if n := len(parsed.Steps); n > 0 {
				parsed.Steps[n-1] += " " + line
			} else {
				parsed.Steps = append(parsed.Steps, line)
			}
		default:
			summary = append(summary, line)
		}
	}

	if parsed.Title == "" {
		return Parsed{}, ErrEmpty
	}
	parsed.Summary = strings.Join(summary, " ")
	return parsed, nil
}
