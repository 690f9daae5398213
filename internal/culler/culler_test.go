package culler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/marks/internal/culler"
	"github.com/nikbrunner/marks/internal/model"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/missing", http.NotFound)
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	mux.HandleFunc("/forbidden", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("/nohead", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ok", http.StatusMovedPermanently)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck_Statuses(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		path       string
		wantStatus culler.Status
		wantCode   int
	}{
		{"/ok", culler.Healthy, http.StatusOK},
		{"/moved", culler.Healthy, http.StatusOK},
		{"/nohead", culler.Healthy, http.StatusOK},
		{"/missing", culler.Dead, http.StatusNotFound},
		{"/gone", culler.Dead, http.StatusGone},
		{"/forbidden", culler.Unreachable, http.StatusForbidden},
	}

	var bookmarks []model.Bookmark
	for i, tt := range tests {
		bookmarks = append(bookmarks, model.Bookmark{ID: int64(i + 1), URL: srv.URL + tt.path})
	}

	results := culler.NewChecker(culler.CheckerParams{Concurrency: 2}).Check(context.Background(), bookmarks, nil)
	assert.Assert(t, is.Len(results, len(tests)))

	for i, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r := results[i]
			assert.Check(t, is.Equal(r.Bookmark.ID, int64(i+1)))
			assert.Check(t, is.Equal(r.Status, tt.wantStatus))
			assert.Check(t, is.Equal(r.StatusCode, tt.wantCode))
		})
	}
}

func TestCheck_ForbiddenReason(t *testing.T) {
	srv := newServer(t)
	results := culler.NewChecker(culler.CheckerParams{}).Check(context.Background(),
		[]model.Bookmark{{URL: srv.URL + "/forbidden"}}, nil)

	assert.Check(t, is.Equal(results[0].Error, "Forbidden"))
}

func TestCheck_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	results := culler.NewChecker(culler.CheckerParams{Timeout: time.Second}).Check(context.Background(),
		[]model.Bookmark{{URL: url}}, nil)

	assert.Check(t, is.Equal(results[0].Status, culler.Unreachable))
	assert.Check(t, is.Equal(results[0].StatusCode, 0))
	assert.Check(t, results[0].Error != "")
}

func TestCheck_ExcludedDomain(t *testing.T) {
	srv := newServer(t)
	checker := culler.NewChecker(culler.CheckerParams{ExcludeDomains: []string{"127.0.0.1"}})

	results := checker.Check(context.Background(), []model.Bookmark{{URL: srv.URL + "/missing"}}, nil)

	assert.Check(t, is.Equal(results[0].Status, culler.Unreachable))
	assert.Check(t, is.Equal(results[0].Error, "Possibly private (auth required)"))
}

func TestCheck_UserAgent(t *testing.T) {
	var mu sync.Mutex
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = r.Header.Get("User-Agent")
		mu.Unlock()
	}))
	defer srv.Close()

	culler.NewChecker(culler.CheckerParams{UserAgent: "marks-test"}).Check(context.Background(),
		[]model.Bookmark{{URL: srv.URL}}, nil)

	mu.Lock()
	defer mu.Unlock()
	assert.Check(t, is.Equal(got, "marks-test"))
}

func TestCheck_Progress(t *testing.T) {
	srv := newServer(t)
	bookmarks := []model.Bookmark{
		{URL: srv.URL + "/ok"},
		{URL: srv.URL + "/missing"},
		{URL: srv.URL + "/gone"},
	}

	var calls []int
	culler.NewChecker(culler.CheckerParams{Concurrency: 3}).Check(context.Background(), bookmarks,
		func(completed, total int) {
			assert.Check(t, is.Equal(total, 3))
			calls = append(calls, completed)
		})

	assert.Check(t, is.DeepEqual(calls, []int{1, 2, 3}))
}

func TestCheck_Cancelled(t *testing.T) {
	srv := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := culler.NewChecker(culler.CheckerParams{}).Check(ctx, []model.Bookmark{{URL: srv.URL + "/ok"}}, nil)

	assert.Check(t, is.Equal(results[0].Status, culler.Unreachable))
	assert.Check(t, is.Equal(results[0].Error, "Cancelled"))
}

func TestCheck_Empty(t *testing.T) {
	results := culler.NewChecker(culler.CheckerParams{}).Check(context.Background(), nil, nil)
	assert.Check(t, is.Len(results, 0))
}

func TestSummaryAndDeadResults(t *testing.T) {
	results := []culler.Result{
		{Bookmark: model.Bookmark{ID: 1}, Status: culler.Healthy},
		{Bookmark: model.Bookmark{ID: 2}, Status: culler.Dead},
		{Bookmark: model.Bookmark{ID: 3}, Status: culler.Unreachable},
		{Bookmark: model.Bookmark{ID: 4}, Status: culler.Dead},
	}

	assert.Check(t, is.DeepEqual(culler.Summary(results), map[culler.Status]int{
		culler.Healthy:     1,
		culler.Dead:        2,
		culler.Unreachable: 1,
	}))

	dead := culler.DeadResults(results)
	assert.Assert(t, is.Len(dead, 2))
	assert.Check(t, is.Equal(dead[0].Bookmark.ID, int64(2)))
	assert.Check(t, is.Equal(dead[1].Bookmark.ID, int64(4)))
}

func TestStatus_String(t *testing.T) {
	assert.Check(t, is.Equal(culler.Healthy.String(), "Healthy"))
	assert.Check(t, is.Equal(culler.Dead.String(), "Dead"))
	assert.Check(t, is.Equal(culler.Unreachable.String(), "Unreachable"))
}
