// Package culler checks bookmark URLs for dead links.
package culler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/nikbrunner/marks/internal/logging"
	"github.com/nikbrunner/marks/internal/model"
)

// Status represents the health status of a URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "Healthy"
	case Dead:
		return "Dead"
	default:
		return "Unreachable"
	}
}

// Result holds the check result for a single bookmark.
type Result struct {
	Bookmark   model.Bookmark
	Status     Status
	StatusCode int    // HTTP status code (0 if connection failed)
	Error      string // readable reason for unreachable URLs
}

// ProgressFunc is called after each URL is checked.
// completed is the number of URLs checked so far, total is the total count.
type ProgressFunc func(completed, total int)

// Checker checks URLs with a bounded number of concurrent requests.
type Checker struct {
	client      *http.Client
	concurrency int
	userAgent   string
	exclude     map[string]bool
	logger      *log.Logger
}

// CheckerParams holds parameters for creating a Checker.
type CheckerParams struct {
	Concurrency    int           // defaults to 10
	Timeout        time.Duration // per request, defaults to 10s
	UserAgent      string
	ExcludeDomains []string     // 404s on these domains are reported as possibly private
	Logger         *log.Logger  // optional
	Client         *http.Client // optional; Timeout is ignored when set
}

// NewChecker creates a Checker with the given parameters.
func NewChecker(params CheckerParams) *Checker {
	c := &Checker{
		client:      params.Client,
		concurrency: params.Concurrency,
		userAgent:   params.UserAgent,
		exclude:     make(map[string]bool, len(params.ExcludeDomains)),
		logger:      params.Logger,
	}
	if c.concurrency <= 0 {
		c.concurrency = 10
	}
	if c.client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		c.client = &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	for _, domain := range params.ExcludeDomains {
		c.exclude[strings.ToLower(domain)] = true
	}
	return c
}

// Check checks every bookmark URL and returns results in input order.
// Cancelling ctx stops pending checks; their results are Unreachable.
func (c *Checker) Check(ctx context.Context, bookmarks []model.Bookmark, onProgress ProgressFunc) []Result {
	if len(bookmarks) == 0 {
		return nil
	}

	logger := logging.WithOp(c.logger, "check")
	logger.Info("checking links", "count", len(bookmarks), "concurrency", c.concurrency)

	results := make([]Result, len(bookmarks))

	var mu sync.Mutex
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i := range bookmarks {
		g.Go(func() error {
			results[i] = c.checkOne(gctx, bookmarks[i])
			logger.Debug("checked", "url", bookmarks[i].URL, "status", results[i].Status, "code", results[i].StatusCode)

			if onProgress != nil {
				mu.Lock()
				completed++
				onProgress(completed, len(bookmarks))
				mu.Unlock()
			}
			return nil
		})
	}

	// Workers never return errors; failures are recorded per result.
	_ = g.Wait()
	return results
}

// checkOne checks a single URL, trying HEAD first and falling back to GET.
func (c *Checker) checkOne(ctx context.Context, b model.Bookmark) Result {
	result := Result{Bookmark: b}

	resp, err := c.do(ctx, http.MethodHead, b.URL)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed {
		if resp != nil {
			resp.Body.Close()
		}
		resp, err = c.do(ctx, http.MethodGet, b.URL)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		if c.isExcluded(b.URL) {
			result.Status = Unreachable
			result.Error = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// 403, 5xx and the like may be temporary or need auth.
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

func (c *Checker) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.client.Do(req)
}

// isExcluded reports whether the URL's host is an excluded domain or a subdomain of one.
func (c *Checker) isExcluded(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for domain := range c.exclude {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// DeadResults returns the results whose status is Dead.
func DeadResults(results []Result) []Result {
	var dead []Result
	for _, r := range results {
		if r.Status == Dead {
			dead = append(dead, r)
		}
	}
	return dead
}

// Summary counts results by status.
func Summary(results []Result) map[Status]int {
	counts := map[Status]int{Healthy: 0, Dead: 0, Unreachable: 0}
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}

// errorCategories maps fragments of transport errors to short reasons.
// The first match wins, so more specific fragments come first.
var errorCategories = []struct {
	fragment string
	reason   string
}{
	{"no such host", "DNS failure"},
	{"context deadline exceeded", "Timeout"},
	{"timeout", "Timeout"},
	{"context canceled", "Cancelled"},
	{"connection refused", "Connection refused"},
	{"certificate", "TLS/certificate error"},
	{"network is unreachable", "Network unreachable"},
	{"tls:", "TLS error"},
}

// normalizeError reduces a transport error message to a short reason.
// Unknown messages are returned unchanged.
func normalizeError(msg string) string {
	lower := strings.ToLower(msg)
	for _, c := range errorCategories {
		if strings.Contains(lower, c.fragment) {
			return c.reason
		}
	}
	return msg
}
