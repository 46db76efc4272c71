// internal/adapters/hbnb/client.go
package hbnb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"hbnb_web/internal/adapters/observability"
	"hbnb_web/internal/domain"
)

// Client talks to the HBnB REST API. Every call is single-shot: no retry,
// no client timeout. Cancellation comes only from ctx.
type Client struct {
	http *resty.Client
	rl   *rate.Limiter
}

func New(base string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("API base URL is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("API base URL: %w", err)
	}
	if rps <= 0 {
		rps = 20
	}
	hc := resty.New().
		SetBaseURL(strings.TrimRight(base, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "hbnb-web/1.0")
	return &Client{
		http: hc,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API ----

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, call{
		op: "login", kind: domain.AuthenticationFailed,
		method: http.MethodPost, route: "/auth/login", path: "/auth/login",
		body: body,
	}, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", &domain.HTTPError{
			Op: "login", Kind: domain.AuthenticationFailed,
			Status: http.StatusOK, StatusText: http.StatusText(http.StatusOK),
			Message: "no access_token in response",
		}
	}
	return out.AccessToken, nil
}

func (c *Client) ListPlaces(ctx context.Context, token string) ([]domain.Place, error) {
	if token == "" {
		return nil, domain.ErrAuthenticationRequired
	}
	var raw []map[string]any
	if err := c.do(ctx, call{
		op: "list_places", kind: domain.FetchFailed,
		method: http.MethodGet, route: "/places", path: "/places",
		token: token,
	}, &raw); err != nil {
		return nil, err
	}
	return mapPlaces(raw), nil
}

func (c *Client) GetPlace(ctx context.Context, id, token string) (domain.Place, error) {
	if token == "" {
		return domain.Place{}, domain.ErrAuthenticationRequired
	}
	if id == "" {
		return domain.Place{}, domain.ErrMissingPlaceID
	}
	var raw map[string]any
	if err := c.do(ctx, call{
		op: "get_place", kind: domain.FetchFailed,
		method: http.MethodGet, route: "/places/{id}", path: "/places/" + url.PathEscape(id),
		token: token,
	}, &raw); err != nil {
		return domain.Place{}, err
	}
	return mapPlace(raw), nil
}

func (c *Client) ListReviews(ctx context.Context, placeID, token string) ([]domain.Review, error) {
	if token == "" {
		return nil, domain.ErrAuthenticationRequired
	}
	if placeID == "" {
		return nil, domain.ErrMissingPlaceID
	}
	var raw []map[string]any
	if err := c.do(ctx, call{
		op: "list_reviews", kind: domain.FetchFailed,
		method: http.MethodGet, route: "/places/{id}/reviews", path: "/places/" + url.PathEscape(placeID) + "/reviews",
		token: token,
	}, &raw); err != nil {
		return nil, err
	}
	return mapReviews(raw), nil
}

func (c *Client) SubmitReview(ctx context.Context, placeID, token string, in domain.ReviewInput) error {
	// Preconditions are checked before anything touches the network.
	if token == "" {
		return domain.ErrAuthenticationRequired
	}
	if placeID == "" {
		return domain.ErrMissingPlaceID
	}
	return c.do(ctx, call{
		op: "submit_review", kind: domain.SubmissionFailed,
		method: http.MethodPost, route: "/places/{id}/reviews", path: "/places/" + url.PathEscape(placeID) + "/reviews",
		token: token, body: in,
	}, nil)
}

// ---- Internals ----

type call struct {
	op     string
	kind   domain.ErrorKind
	method string
	route  string // metrics label, never carries ids
	path   string
	token  string
	body   any
}

func (c *Client) do(ctx context.Context, cl call, out any) error {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w: %v", cl.op, domain.ErrNetwork, err)
	}

	req := c.http.R().SetContext(ctx)
	if cl.token != "" {
		req.SetAuthToken(cl.token)
	}
	if cl.body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(cl.body)
	}

	start := time.Now()
	res, err := req.Execute(cl.method, cl.path)
	if err != nil {
		observability.ObserveExternal("hbnb", cl.route, 0, time.Since(start))
		return fmt.Errorf("%s: %w: %v", cl.op, domain.ErrNetwork, err)
	}
	observability.ObserveExternal("hbnb", cl.route, res.StatusCode(), time.Since(start))
	log.Debug().
		Str("op", cl.op).
		Str("method", cl.method).
		Int("status", res.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("api_call")

	if !res.IsSuccess() {
		return httpError(cl, res)
	}
	if out == nil {
		return nil
	}
	b := bytes.TrimSpace(res.Body())
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%s: %w: decode body: %v", cl.op, domain.ErrNetwork, err)
	}
	return nil
}

// httpError keeps the server's {"message"} (or {"error"}) and the reason phrase.
func httpError(cl call, res *resty.Response) error {
	he := &domain.HTTPError{
		Op:         cl.op,
		Kind:       cl.kind,
		Status:     res.StatusCode(),
		StatusText: statusText(res),
	}
	var payload map[string]any
	if err := json.Unmarshal(res.Body(), &payload); err == nil {
		for _, k := range []string{"message", "error", "msg"} {
			if s := strings.TrimSpace(lookupStr(payload, k)); s != "" {
				he.Message = s
				break
			}
		}
	}
	return he
}

// statusText is the reason phrase without the numeric code.
func statusText(res *resty.Response) string {
	code := strconv.Itoa(res.StatusCode())
	if s := strings.TrimSpace(strings.TrimPrefix(res.Status(), code)); s != "" {
		return s
	}
	return http.StatusText(res.StatusCode())
}
