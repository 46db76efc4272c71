package hbnb

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hbnb_web/internal/domain"
)

/********** alias registries (single source of truth) **********/

// The API has shipped several payload shapes over time: owner as an id or
// a nested user, amenities as names or {id,name} objects.
var placeAliases = map[string][]string{
	"id":          {"id", "place_id"},
	"title":       {"title", "name"},
	"description": {"description"},
	"host":        {"host", "host_name", "owner.name"},
	"host_first":  {"owner.first_name", "host.first_name"},
	"host_last":   {"owner.last_name", "host.last_name"},
	"host_ref":    {"owner", "owner_id"},
}

var reviewAliases = map[string][]string{
	"reviewer":       {"reviewer_name", "reviewer", "author", "user_name", "user.name"},
	"reviewer_first": {"user.first_name", "first_name"},
	"reviewer_last":  {"user.last_name", "last_name"},
	"text":           {"text", "comment", "content"},
	"rating":         {"rating", "score"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns a string (or stringified number) at path, or "".
func lookupStr(m map[string]any, path string) string {
	switch v := lookupAny(m, path).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func firstNonEmpty(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, " ")
}

// getFloatFlexible: number from several paths (float64/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) (float64, bool) {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return v, true
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// firstSliceStrings: accept []any with either strings or {name/title}.
func firstSliceStrings(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		raw, ok := lookupAny(m, k).([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(raw))
		for _, it := range raw {
			switch t := it.(type) {
			case string:
				if t != "" {
					out = append(out, t)
				}
			case map[string]any:
				if n, ok := t["name"].(string); ok && n != "" {
					out = append(out, n)
					continue
				}
				if n, ok := t["title"].(string); ok && n != "" {
					out = append(out, n)
				}
			}
		}
		return out
	}
	return []string{}
}

/********** place mapper **********/

func mapPlace(p map[string]any) domain.Place {
	pl := domain.Place{
		ID:          firstNonEmpty(p, placeAliases, "id"),
		Title:       firstNonEmpty(p, placeAliases, "title"),
		Description: firstNonEmpty(p, placeAliases, "description"),
		Amenities:   firstSliceStrings(p, "amenities", "amenity_names"),
	}
	if f, ok := getFloatFlexible(p, "price", "price_by_night"); ok {
		pl.Price = f
	}
	if f, ok := getFloatFlexible(p, "latitude", "lat"); ok {
		pl.Latitude = f
	}
	if f, ok := getFloatFlexible(p, "longitude", "lon", "lng"); ok {
		pl.Longitude = f
	}

	// Host → explicit name; else owner first + last; else the owner reference.
	pl.Host = firstNonEmpty(p, placeAliases, "host")
	if pl.Host == "" {
		pl.Host = joinNonEmpty(
			firstNonEmpty(p, placeAliases, "host_first"),
			firstNonEmpty(p, placeAliases, "host_last"),
		)
	}
	if pl.Host == "" {
		pl.Host = firstNonEmpty(p, placeAliases, "host_ref")
	}

	if pl.ID == "" {
		log.Warn().Str("context", "mapPlace").Str("title", pl.Title).Msg("place without id")
	}
	return pl
}

func mapPlaces(in []map[string]any) []domain.Place {
	out := make([]domain.Place, 0, len(in))
	for _, p := range in {
		out = append(out, mapPlace(p))
	}
	return out
}

/********** reviews mapper **********/

func mapReviews(in []map[string]any) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		var rv domain.Review

		// Reviewer → prefer single field; fallback to first + last.
		rv.ReviewerName = firstNonEmpty(r, reviewAliases, "reviewer")
		if rv.ReviewerName == "" {
			rv.ReviewerName = joinNonEmpty(
				firstNonEmpty(r, reviewAliases, "reviewer_first"),
				firstNonEmpty(r, reviewAliases, "reviewer_last"),
			)
		}
		rv.Text = firstNonEmpty(r, reviewAliases, "text")
		if f, ok := getFloatFlexible(r, reviewAliases["rating"]...); ok {
			rv.Rating = int(f)
		}

		out = append(out, rv)
	}
	return out
}
