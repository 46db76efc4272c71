package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Page is what every template receives.
type Page struct {
	Title         string
	Nav           template.HTML
	Footer        template.HTML
	Alerts        []string
	ShowLoginLink bool
	Body          any
}

type IndexBody struct {
	Cards   []PlaceCard
	Filters []FilterOption
}

type LoginBody struct {
	Email string
}

type ReviewForm struct {
	PlaceID      string
	Action       string
	ReviewerName string
	Text         string
	Stars        []RatingOption
}

type PlaceBody struct {
	PlaceID       string
	Details       *PlaceDetails
	Heading       string
	Reviews       []ReviewEntry
	ReviewsLoaded bool
	Form          ReviewForm
}

type AddReviewBody struct {
	PlaceID string
	Form    ReviewForm
}

// NewReviewForm is an empty form posting to the detail page of placeID.
func NewReviewForm(placeID string) ReviewForm {
	return ReviewForm{
		PlaceID: placeID,
		Action:  DetailsURL(placeID),
		Stars:   StarOptions(0),
	}
}

var pageNames = []string{"index", "login", "place", "add_review"}

// Renderer is the only place that produces HTML.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.tmpl").ParseFS(templateFS,
			"templates/layout.tmpl",
			"templates/partials.tmpl",
			"templates/"+name+".tmpl",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes page into a buffer first so a template error never
// leaves a half written response.
func (r *Renderer) Render(w io.Writer, page string, data Page) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
