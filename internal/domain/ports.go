package domain

import (
	"context"
	"time"
)

// ListingsAPI is the REST API consumed by the frontend.
type ListingsAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	ListPlaces(ctx context.Context, token string) ([]Place, error)
	GetPlace(ctx context.Context, id, token string) (Place, error)
	ListReviews(ctx context.Context, placeID, token string) ([]Review, error)
	SubmitReview(ctx context.Context, placeID, token string, in ReviewInput) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Failure is one error caught at the page boundary.
type Failure struct {
	Op      string
	Kind    string
	Status  int
	Message string
	PlaceID string
	At      time.Time
}

type FailureLog interface {
	Record(ctx context.Context, f Failure) error
}
