package domain

type Review struct {
	ReviewerName string
	Text         string
	Rating       int // 1..5
}

// ReviewInput is the body posted to /places/{id}/reviews.
type ReviewInput struct {
	ReviewerName string `json:"reviewer_name"`
	Text         string `json:"text"`
	Rating       int    `json:"rating"`
}

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)
