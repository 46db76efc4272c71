package hbnb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapPlace_HostFallbacks(t *testing.T) {
	explicit := mapPlace(map[string]any{"id": "p1", "host": "Sam", "owner": map[string]any{"first_name": "X"}})
	assert.Equal(t, "Sam", explicit.Host)

	nested := mapPlace(map[string]any{"id": "p2", "owner": map[string]any{"first_name": "Jo", "last_name": "Doe"}})
	assert.Equal(t, "Jo Doe", nested.Host)

	ref := mapPlace(map[string]any{"id": "p3", "owner": "8c1f-uuid"})
	assert.Equal(t, "8c1f-uuid", ref.Host)

	none := mapPlace(map[string]any{"id": "p4"})
	assert.Equal(t, "", none.Host)
	assert.NotNil(t, none.Amenities)
	assert.Empty(t, none.Amenities)
}

func TestMapPlace_NumbersAndAmenities(t *testing.T) {
	p := mapPlace(map[string]any{
		"id":        float64(7),
		"title":     "Loft",
		"price":     "80,50",
		"latitude":  48.8,
		"longitude": "2.3",
		"amenities": []any{"Wifi", map[string]any{"id": "a", "name": "Pool"}, map[string]any{"id": "b"}, ""},
	})
	assert.Equal(t, "7", p.ID)
	assert.Equal(t, 80.5, p.Price)
	assert.Equal(t, 48.8, p.Latitude)
	assert.Equal(t, 2.3, p.Longitude)
	assert.Equal(t, []string{"Wifi", "Pool"}, p.Amenities)
}

func TestMapReviews(t *testing.T) {
	got := mapReviews([]map[string]any{
		{"reviewer_name": "Ana", "text": "Great!", "rating": float64(4)},
		{"user": map[string]any{"first_name": "Bo", "last_name": "Li"}, "comment": "ok", "rating": "3"},
		{"text": "anon"},
	})
	assert.Len(t, got, 3)
	assert.Equal(t, "Ana", got[0].ReviewerName)
	assert.Equal(t, 4, got[0].Rating)
	assert.Equal(t, "Bo Li", got[1].ReviewerName)
	assert.Equal(t, "ok", got[1].Text)
	assert.Equal(t, 3, got[1].Rating)
	assert.Equal(t, "", got[2].ReviewerName)
	assert.Equal(t, 0, got[2].Rating)
}
