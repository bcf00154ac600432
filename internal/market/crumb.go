package market

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// CrumbCache lazily obtains the access token ("crumb") required by the
// fundamentals and batch quote endpoints and keeps it for the lifetime of the
// process. At most one handshake is in flight at a time; callers that arrive
// during a handshake wait for it and then read its result. A failed handshake
// leaves the cache empty so the next caller tries again.
type CrumbCache struct {
	// sem is a one-slot semaphore. Unlike sync.Mutex, waiting on it can be
	// abandoned when the caller's context ends.
	sem   chan struct{}
	fetch func(ctx context.Context) (string, error)

	crumb string
	valid bool
}

// NewCrumbCache creates an empty cache that fills itself with fetch.
func NewCrumbCache(fetch func(ctx context.Context) (string, error)) *CrumbCache {
	return &CrumbCache{
		sem:   make(chan struct{}, 1),
		fetch: fetch,
	}
}

// Get returns the cached crumb, performing the handshake if the cache is
// empty. Handshake failures are returned as KindCredential errors.
func (c *CrumbCache) Get(ctx context.Context) (string, error) {
	select {
	case c.sem <- struct{}{}:
	case <-ctx.Done():
		return "", newError(KindCredential, "crumb", "", ctx.Err())
	}
	defer func() { <-c.sem }()

	if c.valid {
		return c.crumb, nil
	}

	crumb, err := c.fetch(ctx)
	if err != nil {
		var fe *Error
		if errors.As(err, &fe) && fe.Kind == KindCredential {
			return "", err
		}
		return "", newError(KindCredential, "crumb", "", err)
	}

	c.crumb = crumb
	c.valid = true
	return crumb, nil
}

// Verified reports whether a crumb has been obtained. It does not wait for an
// in-flight handshake.
func (c *CrumbCache) Verified() bool {
	select {
	case c.sem <- struct{}{}:
		defer func() { <-c.sem }()
		return c.valid
	default:
		return false
	}
}

// handshake performs the two sequential calls that yield a crumb: an
// unauthenticated warm-up request that plants the session cookie, then the
// token-issuing request.
func (c *Client) handshake(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.warmupURL, nil)
	if err != nil {
		return "", fmt.Errorf("building warm-up request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("warm-up request: %w", err)
	}
	// The warm-up endpoint answers 404 while still setting the cookie, so the
	// status is deliberately ignored.
	resp.Body.Close()

	body, err := c.get(ctx, "crumb", "", c.yahooURL+"/v1/test/getcrumb")
	if err != nil {
		var fe *Error
		if errors.As(err, &fe) {
			fe.Kind = KindCredential
		}
		return "", err
	}

	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.ContainsAny(crumb, "<{") {
		return "", newError(KindCredential, "crumb", "", errors.New("upstream returned no crumb"))
	}

	c.log.Debug().Msg("obtained crumb")
	return crumb, nil
}
