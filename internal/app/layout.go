package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"hbnb_web/internal/domain"
)

const (
	elementFile = "element.html"
	fragmentKey = "layout:element"
	loginLinkID = "#login-link"
)

// Fragment is the shared nav and footer markup spliced into every page.
type Fragment struct {
	Nav    string `json:"nav"`
	Footer string `json:"footer"`
}

// Layout loads element.html from the static dir. cache may be nil.
type Layout struct {
	staticDir string
	cache     domain.Cache
	ttl       time.Duration
}

func NewLayout(staticDir string, cache domain.Cache, ttl time.Duration) *Layout {
	return &Layout{staticDir: staticDir, cache: cache, ttl: ttl}
}

// Fragment never fails: a missing or broken element.html yields an empty
// fragment and the page renders without nav and footer.
func (l *Layout) Fragment(ctx context.Context) Fragment {
	var f Fragment
	if l.cache != nil {
		ok, err := l.cache.Get(ctx, fragmentKey, &f)
		if err != nil {
			log.Warn().Err(err).Msg("fragment cache get failed")
		} else if ok {
			return f
		}
	}

	path := filepath.Join(l.staticDir, elementFile)
	file, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("load layout fragment failed")
		return Fragment{}
	}
	defer file.Close()

	f, err = ParseFragment(file)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("parse layout fragment failed")
		return Fragment{}
	}

	if l.cache != nil && l.ttl > 0 {
		if err := l.cache.Set(ctx, fragmentKey, f, int(l.ttl/time.Second)); err != nil {
			log.Warn().Err(err).Msg("fragment cache set failed")
		}
	}
	return f
}

// Invalidate drops the cached fragment so the next page re-reads element.html.
func (l *Layout) Invalidate(ctx context.Context) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Del(ctx, fragmentKey); err != nil {
		log.Warn().Err(err).Msg("fragment cache invalidate failed")
		return
	}
	log.Info().Str("key", fragmentKey).Msg("layout fragment invalidated")
}

// ParseFragment extracts the inner HTML of the first <nav> and <footer>.
func ParseFragment(r io.Reader) (Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Fragment{}, err
	}
	nav := doc.Find("nav").First()
	footer := doc.Find("footer").First()
	if nav.Length() == 0 && footer.Length() == 0 {
		return Fragment{}, errors.New("no <nav> or <footer> element")
	}

	var f Fragment
	if nav.Length() > 0 {
		if f.Nav, err = nav.Html(); err != nil {
			return Fragment{}, err
		}
	}
	if footer.Length() > 0 {
		if f.Footer, err = footer.Html(); err != nil {
			return Fragment{}, err
		}
	}
	return f, nil
}

// NavWithLoginLink shows or hides the #login-link element inside nav.
func NavWithLoginLink(nav string, show bool) string {
	if nav == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<nav>" + nav + "</nav>"))
	if err != nil {
		return nav
	}
	style := "display: none"
	if show {
		style = "display: block"
	}
	doc.Find(loginLinkID).SetAttr("style", style)

	out, err := doc.Find("nav").First().Html()
	if err != nil {
		return nav
	}
	return out
}
