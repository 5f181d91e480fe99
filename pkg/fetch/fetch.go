package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrorKind classifies a fetch failure at the collaborator boundary.
type ErrorKind string

const (
	KindNetwork   ErrorKind = "network"
	KindChallenge ErrorKind = "challenge"
	KindNotFound  ErrorKind = "not-found"
)

// Error is the typed failure returned by a Fetcher.
type Error struct {
	Kind ErrorKind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("fetching %s failed (%s)", e.URL, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Fetcher retrieves the raw payload of a share URL. Implementations own
// everything network-related; the processing pipeline never touches the
// network itself.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:133.0) Gecko/20100101 Firefox/133.0"

// HTTPFetcher fetches share pages over plain HTTP. It cannot resolve an
// anti-bot interstitial, it only recognizes one and reports it as a typed
// challenge failure.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client:    &http.Client{Timeout: 60 * time.Second},
		UserAgent: defaultUserAgent,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	log.Debug().Str("url", url).Msg("fetching share page")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: url, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return nil, &Error{Kind: KindNotFound, URL: url, Err: errors.Errorf("HTTP %d", resp.StatusCode)}
	}
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusForbidden {
		return nil, &Error{Kind: KindNetwork, URL: url, Err: errors.Errorf("HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: url, Err: err}
	}

	if isChallenge(body) || resp.StatusCode == http.StatusForbidden {
		return nil, &Error{
			Kind: KindChallenge,
			URL:  url,
			Err:  errors.New("anti-bot challenge page returned instead of the conversation"),
		}
	}

	log.Debug().Str("url", url).Int("bytes", len(body)).Msg("fetched share page")
	return body, nil
}

// isChallenge recognizes the Cloudflare interstitial that claude.ai serves to
// automated clients.
func isChallenge(body []byte) bool {
	head := strings.ToLower(string(body[:min(len(body), 4096)]))
	return strings.Contains(head, "just a moment") ||
		strings.Contains(head, "cf-challenge") ||
		strings.Contains(head, "checking your browser")
}
