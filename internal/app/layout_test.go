package app_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "hbnb_web/internal/adapters/redis"
	"hbnb_web/internal/app"
)

const element = `<nav><a href="/"><img src="/images/logo.png" alt="HBnB"></a>
<a id="login-link" class="login-button" href="/login">Login</a></nav>
<footer><p>All rights reserved</p></footer>`

func writeElement(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "element.html"), []byte(body), 0o644))
	return dir
}

func TestParseFragment(t *testing.T) {
	f, err := app.ParseFragment(strings.NewReader(element))
	require.NoError(t, err)
	assert.Contains(t, f.Nav, `id="login-link"`)
	assert.NotContains(t, f.Nav, "<nav>")
	assert.Equal(t, "<p>All rights reserved</p>", f.Footer)

	_, err = app.ParseFragment(strings.NewReader("<p>nothing</p>"))
	assert.Error(t, err)
}

func TestLayout_MissingFileRendersEmpty(t *testing.T) {
	l := app.NewLayout(t.TempDir(), nil, 0)
	assert.Equal(t, app.Fragment{}, l.Fragment(context.Background()))
}

func TestLayout_CachesInRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = cache.Close() })

	dir := writeElement(t, element)
	l := app.NewLayout(dir, cache, time.Minute)
	ctx := context.Background()

	cached := l.Fragment(ctx)
	require.NotEmpty(t, cached.Nav)
	assert.True(t, mr.Exists("hbnb:layout:element"))

	// served from cache even after the file is gone
	require.NoError(t, os.Remove(filepath.Join(dir, "element.html")))
	assert.Equal(t, cached, l.Fragment(ctx))

	mr.FastForward(2 * time.Minute)
	assert.Equal(t, app.Fragment{}, l.Fragment(ctx))
}

func TestLayout_InvalidateRereadsFile(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = cache.Close() })

	dir := writeElement(t, element)
	l := app.NewLayout(dir, cache, time.Hour)
	ctx := context.Background()

	require.Contains(t, l.Fragment(ctx).Footer, "All rights reserved")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "element.html"),
		[]byte(`<nav></nav><footer><p>Updated</p></footer>`), 0o644))
	assert.Contains(t, l.Fragment(ctx).Footer, "All rights reserved")

	l.Invalidate(ctx)
	assert.False(t, mr.Exists("hbnb:layout:element"))
	assert.Equal(t, "<p>Updated</p>", l.Fragment(ctx).Footer)
	assert.True(t, mr.Exists("hbnb:layout:element"))

	// no cache configured
	app.NewLayout(dir, nil, 0).Invalidate(ctx)
}

func TestLayout_CacheDownFallsBackToFile(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = cache.Close() })
	mr.Close()

	l := app.NewLayout(writeElement(t, element), cache, time.Minute)
	f := l.Fragment(context.Background())
	assert.Contains(t, f.Footer, "All rights reserved")
}

func TestNavWithLoginLink(t *testing.T) {
	f, err := app.ParseFragment(strings.NewReader(element))
	require.NoError(t, err)

	style := func(nav string) string {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(nav))
		require.NoError(t, err)
		return doc.Find("#login-link").AttrOr("style", "")
	}
	assert.Equal(t, "display: block", style(app.NavWithLoginLink(f.Nav, true)))
	assert.Equal(t, "display: none", style(app.NavWithLoginLink(f.Nav, false)))
	assert.Empty(t, app.NavWithLoginLink("", true))
}
