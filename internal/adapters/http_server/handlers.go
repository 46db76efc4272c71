package httpserver

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"hbnb_web/internal/app"
	"hbnb_web/internal/session"
	"hbnb_web/internal/view"
)

type Handlers struct {
	Pages    *app.Service
	Layout   *app.Layout
	Sessions *session.Store
	Views    *view.Renderer
	TokenTTL time.Duration
	Pick     view.ImagePicker // nil picks at random
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.index)
	s.mux.Get("/login", h.loginPage)
	s.mux.Post("/login", h.login)
	s.mux.Get("/place", h.place)
	s.mux.Post("/place", h.submitReview)
	s.mux.Get("/add_review", h.addReview)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// render splices the layout fragment, pops the flash into the alerts and
// writes the page. Nothing is written when the template fails.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name string, page view.Page) {
	frag := h.Layout.Fragment(r.Context())
	page.Nav = template.HTML(app.NavWithLoginLink(frag.Nav, page.ShowLoginLink))
	page.Footer = template.HTML(frag.Footer)
	if msg := h.Sessions.PopFlash(w, r); msg != "" {
		page.Alerts = append([]string{msg}, page.Alerts...)
	}

	var buf bytes.Buffer
	if err := h.Views.Render(&buf, name, page); err != nil {
		log.Error().Err(err).Str("page", name).Msg("render failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "page could not be rendered")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Str("page", name).Msg("failed to write page body")
	}
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	sel := r.URL.Query().Get("price")
	out := h.Pages.Home(r.Context(), h.Sessions.FromRequest(r), sel, h.Pick)
	h.render(w, r, http.StatusOK, "index", view.Page{
		Title:         "Places",
		Alerts:        out.Alerts,
		ShowLoginLink: out.ShowLoginLink,
		Body:          view.IndexBody{Cards: out.Cards, Filters: view.FilterOptions(sel)},
	})
}

func (h *Handlers) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", view.Page{
		Title:         "Login",
		ShowLoginLink: !h.Sessions.FromRequest(r).Authenticated(),
		Body:          view.LoginBody{},
	})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid form", err.Error())
		return
	}
	email := r.PostFormValue("email")
	token, alert := h.Pages.Login(r.Context(), email, r.PostFormValue("password"))
	if alert != "" {
		h.render(w, r, http.StatusOK, "login", view.Page{
			Title:         "Login",
			Alerts:        []string{alert},
			ShowLoginLink: true,
			Body:          view.LoginBody{Email: email},
		})
		return
	}
	h.Sessions.SetToken(w, token, h.TokenTTL)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) place(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	h.renderPlace(w, r, id, nil, view.NewReviewForm(id))
}

func (h *Handlers) renderPlace(w http.ResponseWriter, r *http.Request, id string, alerts []string, form view.ReviewForm) {
	out := h.Pages.PlacePage(r.Context(), h.Sessions.FromRequest(r), id)
	h.render(w, r, http.StatusOK, "place", view.Page{
		Title:         "Place",
		Alerts:        append(alerts, out.Alerts...),
		ShowLoginLink: out.ShowLoginLink,
		Body: view.PlaceBody{
			PlaceID:       id,
			Details:       out.Details,
			Heading:       view.ReviewsHeading,
			Reviews:       out.Reviews,
			ReviewsLoaded: out.ReviewsLoaded,
			Form:          form,
		},
	})
}

func (h *Handlers) submitReview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid form", err.Error())
		return
	}
	id := r.URL.Query().Get("id")
	out := h.Pages.SubmitReview(r.Context(), h.Sessions.FromRequest(r), id,
		r.PostFormValue("reviewer_name"), r.PostFormValue("text"), r.PostFormValue("rating"))

	switch out.State {
	case app.ReviewUnauthenticated:
		h.Sessions.SetFlash(w, out.Alert)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case app.ReviewSucceeded:
		// the redirected GET re-fetches the reviews
		h.Sessions.SetFlash(w, out.Alert)
		http.Redirect(w, r, view.DetailsURL(id), http.StatusSeeOther)
	default:
		h.renderPlace(w, r, id, []string{out.Alert}, out.Form)
	}
}

func (h *Handlers) addReview(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	h.render(w, r, http.StatusOK, "add_review", view.Page{
		Title:         "Add a Review",
		ShowLoginLink: !h.Sessions.FromRequest(r).Authenticated(),
		Body:          view.AddReviewBody{PlaceID: id, Form: view.NewReviewForm(id)},
	})
}
