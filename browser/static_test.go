package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "http://www.g2.com/products/acme/reviews"

const reviewPage = `<html><body>
<h1 class="product-name">  Acme CRM </h1>
<div class="review-card">
  <div class="review-content__text">Solid product</div>
  <div class="rating-display__stars" data-rating="4.5"></div>
</div>
<div class="review-card">
  <div class="review-content__text">No rating here</div>
  <div class="rating-display__stars"></div>
</div>
</body></html>`

func htmlResponder(status int, body string) httpmock.Responder {
	resp := httpmock.NewStringResponse(status, body)
	resp.Header.Set("Content-Type", "text/html")
	return httpmock.ResponderFromResponse(resp)
}

func newStaticSession(t *testing.T, status int, body string) Session {
	t.Helper()
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", pageURL, htmlResponder(status, body))

	launcher := NewStaticLauncher("test-agent", WithTransport(transport))
	session, err := launcher.Launch(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestStaticSessionQueries(t *testing.T) {
	ctx := context.Background()
	session := newStaticSession(t, 200, reviewPage)

	require.NoError(t, session.Navigate(ctx, pageURL, time.Second))
	require.NoError(t, session.WaitForSelector(ctx, ".review-card", time.Second))

	name, err := session.Text("h1.product-name")
	require.NoError(t, err)
	assert.Equal(t, "  Acme CRM ", name)

	cards, err := session.QueryAll(ctx, ".review-card")
	require.NoError(t, err)
	require.Len(t, cards, 2)

	text, err := cards[0].Text(".review-content__text")
	require.NoError(t, err)
	assert.Equal(t, "Solid product", text)

	rating, err := cards[0].Attr(".rating-display__stars", "data-rating")
	require.NoError(t, err)
	assert.Equal(t, "4.5", rating)

	_, err = cards[1].Attr(".rating-display__stars", "data-rating")
	assert.ErrorIs(t, err, ErrAttributeMissing)

	_, err = cards[1].Text(".reviewer__name")
	assert.ErrorIs(t, err, ErrElementNotFound)
}

func TestStaticSessionWaitMissingSelector(t *testing.T) {
	ctx := context.Background()
	session := newStaticSession(t, 200, `<html><body><h1 class="product-name">Acme</h1></body></html>`)

	require.NoError(t, session.Navigate(ctx, pageURL, time.Second))
	err := session.WaitForSelector(ctx, ".review-card", time.Second)
	assert.ErrorIs(t, err, ErrElementNotFound)
}

func TestStaticSessionNavigateErrorStatus(t *testing.T) {
	session := newStaticSession(t, 404, "<html></html>")

	err := session.Navigate(context.Background(), pageURL, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestStaticSessionClosed(t *testing.T) {
	ctx := context.Background()
	session := newStaticSession(t, 200, reviewPage)
	require.NoError(t, session.Navigate(ctx, pageURL, time.Second))
	require.NoError(t, session.Close())

	_, err := session.QueryAll(ctx, ".review-card")
	assert.True(t, errors.Is(err, ErrSessionClosed))
	assert.ErrorIs(t, session.Navigate(ctx, pageURL, time.Second), ErrSessionClosed)
}
