package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hbnb_web/internal/adapters/observability"
	"hbnb_web/internal/domain"
	"hbnb_web/internal/session"
	"hbnb_web/internal/view"
)

const (
	msgLoginNetwork  = "An error occurred while logging in"
	msgReviewNoToken = "You need to be logged in to submit a review."
	msgReviewOK      = "Review submitted successfully!"
	msgReviewNetwork = "An error occurred while submitting your review."
	msgBadRating     = "Rating must be between 1 and 5."
)

// Service runs the page flows: gate on the session, call the API, build
// view models. It never writes HTML or cookies.
type Service struct {
	api      domain.ListingsAPI
	failures domain.FailureLog // optional
}

func NewService(api domain.ListingsAPI, failures domain.FailureLog) *Service {
	return &Service{api: api, failures: failures}
}

type Listing struct {
	ShowLoginLink bool
	Cards         []view.PlaceCard
	Alerts        []string
}

// Home lists places for an authenticated session and applies the price
// selection to the built cards.
func (s *Service) Home(ctx context.Context, sess session.Session, selection string, pick view.ImagePicker) Listing {
	if !sess.Authenticated() {
		return Listing{ShowLoginLink: true}
	}
	places, err := s.api.ListPlaces(ctx, sess.Token)
	if err != nil {
		s.fail(ctx, "list_places", "", err)
		return Listing{Alerts: []string{"Failed to fetch places: " + domain.UserMessage(err)}}
	}
	return Listing{Cards: view.ApplyPriceFilter(view.PlaceCards(places, pick), selection)}
}

type PlaceView struct {
	ShowLoginLink bool
	Details       *view.PlaceDetails
	Reviews       []view.ReviewEntry
	ReviewsLoaded bool
	Alerts        []string
}

// PlacePage fetches details and reviews concurrently. A failure in one
// leaves only that section empty.
func (s *Service) PlacePage(ctx context.Context, sess session.Session, placeID string) PlaceView {
	if !sess.Authenticated() {
		return PlaceView{ShowLoginLink: true}
	}
	if placeID == "" {
		log.Debug().Msg("place page without id")
		return PlaceView{}
	}

	var (
		out                   PlaceView
		detailsErr, reviewErr error
		g                     errgroup.Group
	)
	g.Go(func() error {
		p, err := s.api.GetPlace(ctx, placeID, sess.Token)
		if err != nil {
			detailsErr = err
			s.fail(ctx, "get_place", placeID, err)
			return nil
		}
		d := view.Details(p)
		out.Details = &d
		return nil
	})
	g.Go(func() error {
		rs, err := s.api.ListReviews(ctx, placeID, sess.Token)
		if err != nil {
			reviewErr = err
			s.fail(ctx, "list_reviews", placeID, err)
			return nil
		}
		out.Reviews = view.ReviewEntries(rs)
		out.ReviewsLoaded = true
		return nil
	})
	_ = g.Wait()

	if detailsErr != nil {
		out.Alerts = append(out.Alerts, "Failed to fetch place details: "+domain.UserMessage(detailsErr))
	}
	if reviewErr != nil {
		out.Alerts = append(out.Alerts, "Failed to fetch reviews: "+domain.UserMessage(reviewErr))
	}
	return out
}

// Login returns the issued token, or an alert when it failed.
func (s *Service) Login(ctx context.Context, email, password string) (token, alert string) {
	tok, err := s.api.Login(ctx, strings.TrimSpace(email), password)
	if err == nil {
		return tok, ""
	}
	s.fail(ctx, "login", "", err)
	if domain.Kind(err) == string(domain.AuthenticationFailed) {
		return "", "Login failed: " + domain.UserMessage(err)
	}
	return "", msgLoginNetwork
}

type ReviewState int

const (
	ReviewSucceeded ReviewState = iota
	ReviewFailed
	ReviewUnauthenticated
)

type ReviewOutcome struct {
	State ReviewState
	Alert string
	// Form echoes the submitted values on failure, empty on success.
	Form view.ReviewForm
}

// ParseRating reads the submitted rating. Missing means the default.
func ParseRating(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.DefaultRating, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < domain.MinRating || n > domain.MaxRating {
		return 0, false
	}
	return n, true
}

// SubmitReview posts a review. Without a token or a place id nothing is
// sent.
func (s *Service) SubmitReview(ctx context.Context, sess session.Session, placeID, reviewerName, text, rating string) ReviewOutcome {
	if !sess.Authenticated() {
		return ReviewOutcome{State: ReviewUnauthenticated, Alert: msgReviewNoToken}
	}

	form := view.NewReviewForm(placeID)
	form.ReviewerName = reviewerName
	form.Text = text

	n, ok := ParseRating(rating)
	if !ok {
		return ReviewOutcome{State: ReviewFailed, Alert: msgBadRating, Form: form}
	}
	form.Stars = view.StarOptions(n)

	if placeID == "" {
		return ReviewOutcome{
			State: ReviewFailed,
			Alert: "Failed to submit review: " + domain.UserMessage(domain.ErrMissingPlaceID),
			Form:  form,
		}
	}

	err := s.api.SubmitReview(ctx, placeID, sess.Token, domain.ReviewInput{
		ReviewerName: strings.TrimSpace(reviewerName),
		Text:         text,
		Rating:       n,
	})
	if err == nil {
		return ReviewOutcome{State: ReviewSucceeded, Alert: msgReviewOK, Form: view.NewReviewForm(placeID)}
	}

	s.fail(ctx, "submit_review", placeID, err)
	alert := msgReviewNetwork
	if domain.Kind(err) == string(domain.SubmissionFailed) {
		alert = "Failed to submit review: " + domain.UserMessage(err)
	}
	return ReviewOutcome{State: ReviewFailed, Alert: alert, Form: form}
}

// fail logs, counts and records an error caught at the page boundary.
func (s *Service) fail(ctx context.Context, op, placeID string, err error) {
	kind := domain.Kind(err)
	status := domain.Status(err)
	log.Error().Err(err).
		Str("op", op).
		Str("kind", kind).
		Str("place_id", placeID).
		Int("status", status).
		Msg("api call failed")
	observability.ObservePageFailure(op, kind)

	if s.failures == nil {
		return
	}
	f := domain.Failure{
		Op:      op,
		Kind:    kind,
		Status:  status,
		Message: domain.UserMessage(err),
		PlaceID: placeID,
		At:      time.Now().UTC(),
	}
	if rerr := s.failures.Record(context.WithoutCancel(ctx), f); rerr != nil {
		log.Warn().Err(rerr).Str("op", op).Msg("failure log write failed")
	}
}
