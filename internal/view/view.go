// Package view turns fetched snapshots into view models. Everything here is
// pure; the only code that writes HTML is Renderer in render.go.
package view

import (
	"math/rand"
	"net/url"
	"strconv"
	"strings"

	"hbnb_web/internal/domain"
)

// Images is the fixed pool card images are drawn from.
var Images = []string{"maison.jpg", "maison2.jpg", "maison3.jpg"}

const (
	pricePrefix    = "Price per night: $"
	ReviewsHeading = "Reviews:"
	FilterAll      = "All"
)

// ImagePicker returns an index in [0, n).
type ImagePicker func(n int) int

// RandomPicker draws uniformly from the pool.
func RandomPicker() ImagePicker { return rand.Intn }

type PlaceCard struct {
	ID           string
	Title        string
	Image        string
	PriceText    string
	LocationText string
	DetailsURL   string
	DataPrice    string // displayed integer price, empty when unreadable
	Hidden       bool
}

type PlaceDetails struct {
	Title       string
	Host        string
	PriceText   string
	Description string
	Amenities   string
}

type ReviewEntry struct {
	ReviewerName string
	Quote        string
	RatingText   string
}

type FilterOption struct {
	Value    string
	Label    string
	Selected bool
}

type RatingOption struct {
	Value   int
	Checked bool
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// DetailsURL links a card to the detail page for id.
func DetailsURL(id string) string {
	return "/place?" + url.Values{"id": {id}}.Encode()
}

func PlaceCards(places []domain.Place, pick ImagePicker) []PlaceCard {
	if pick == nil {
		pick = RandomPicker()
	}
	out := make([]PlaceCard, 0, len(places))
	for _, p := range places {
		c := PlaceCard{
			ID:           p.ID,
			Title:        p.Title,
			Image:        Images[pick(len(Images))],
			PriceText:    pricePrefix + num(p.Price),
			LocationText: "Location: " + num(p.Latitude) + ", " + num(p.Longitude),
			DetailsURL:   DetailsURL(p.ID),
		}
		if n, ok := displayedPrice(c); ok {
			c.DataPrice = strconv.Itoa(n)
		}
		out = append(out, c)
	}
	return out
}

func Details(p domain.Place) PlaceDetails {
	return PlaceDetails{
		Title:       p.Title,
		Host:        p.Host,
		PriceText:   "$" + num(p.Price),
		Description: p.Description,
		Amenities:   strings.Join(p.Amenities, ", "),
	}
}

func ReviewEntries(reviews []domain.Review) []ReviewEntry {
	out := make([]ReviewEntry, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewEntry{
			ReviewerName: r.ReviewerName,
			Quote:        `"` + r.Text + `"`,
			RatingText:   "Rating: " + strconv.Itoa(r.Rating) + "/5",
		})
	}
	return out
}

// leadingInt reads an optional sign and the leading digits of s, so
// "100.5" is 100 and "-5" is -5. ok is false when no digit leads.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

// displayedPrice reads the integer part back out of the card text, the
// way a reader of the page would.
func displayedPrice(c PlaceCard) (int, bool) {
	return leadingInt(strings.TrimPrefix(c.PriceText, pricePrefix))
}

// IsAll reports whether selection means "no ceiling".
func IsAll(selection string) bool {
	return selection == "" || strings.EqualFold(selection, FilterAll)
}

// ApplyPriceFilter shows a card iff selection is All or its displayed price
// is at most the ceiling. It works on already built cards only.
func ApplyPriceFilter(cards []PlaceCard, selection string) []PlaceCard {
	out := make([]PlaceCard, len(cards))
	copy(out, cards)
	if IsAll(selection) {
		for i := range out {
			out[i].Hidden = false
		}
		return out
	}
	ceiling, valid := leadingInt(selection)
	for i := range out {
		p, ok := displayedPrice(out[i])
		out[i].Hidden = !valid || !ok || p > ceiling
	}
	return out
}

// FilterOptions is the price select: All, $10, $50, $100.
func FilterOptions(selection string) []FilterOption {
	opts := []FilterOption{
		{Value: FilterAll, Label: "All"},
		{Value: "10", Label: "$10"},
		{Value: "50", Label: "$50"},
		{Value: "100", Label: "$100"},
	}
	for i := range opts {
		opts[i].Selected = opts[i].Value == selection || (i == 0 && IsAll(selection))
	}
	return opts
}

// StarOptions renders the 1..5 rating radios with selected checked.
func StarOptions(selected int) []RatingOption {
	if selected < domain.MinRating || selected > domain.MaxRating {
		selected = domain.DefaultRating
	}
	out := make([]RatingOption, 0, domain.MaxRating)
	for v := domain.MinRating; v <= domain.MaxRating; v++ {
		out = append(out, RatingOption{Value: v, Checked: v == selected})
	}
	return out
}
