// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/recommend"
)

const (
	header   = "Product ID,Recommended Product ID,Label,Type,Priority\n"
	oneRule  = header + "shoei-rf-1400-helmet,shoei-cwr-f2-visor,Visor,,Primary\n"
	twoRules = oneRule + "alpinestars-gp-jacket,alpinestars-missile-pants,,,\n"
)

// rulesServer serves body until failing is set, then answers 500.
type rulesServer struct {
	*httptest.Server
	hits    atomic.Int32
	failing atomic.Bool
	mu      sync.Mutex
	body    string
}

func newRulesServer(t *testing.T, body string) *rulesServer {
	t.Helper()
	rs := &rulesServer{body: body}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		rs.hits.Add(1)
		if rs.failing.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		rs.mu.Lock()
		defer rs.mu.Unlock()
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(rs.body))
	}))
	t.Cleanup(rs.Close)
	return rs
}

func (rs *rulesServer) setBody(body string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.body = body
}

// fakeClock is advanced by tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func newTestRefresher(t *testing.T, cfg Config) (*Refresher, *fakeClock) {
	t.Helper()
	r, err := NewRefresher(cfg, recommend.NewStore(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRefresher: %v", err)
	}
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	r.now = clock.Now
	return r, clock
}

func TestLoadLocal_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	table, err := LoadLocal(filepath.Join(t.TempDir(), "nope.csv"))
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if c := table.Counts(); c.ExplicitProducts != 0 || c.CategoryRules != 0 {
		t.Errorf("counts = %+v, want empty", c)
	}
}

func TestRefresher_LocalMode(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.csv")
	writeFile(t, path, oneRule)
	r, _ := newTestRefresher(t, Config{Path: path})

	snap := r.Current(context.Background())
	if snap.Source != SourceLocal || snap.Version != 1 {
		t.Fatalf("first snapshot = source %q version %d", snap.Source, snap.Version)
	}
	if got := r.Current(context.Background()).Version; got != 1 {
		t.Errorf("unchanged file republished: version %d", got)
	}

	writeFile(t, path, twoRules)
	snap = r.Current(context.Background())
	if snap.Version != 2 || snap.Table.Counts().ExplicitProducts != 2 {
		t.Errorf("after edit: version %d counts %+v", snap.Version, snap.Table.Counts())
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	snap = r.Current(context.Background())
	if snap.Version != 3 || snap.Table.Counts().ExplicitProducts != 0 {
		t.Errorf("after removal: version %d counts %+v", snap.Version, snap.Table.Counts())
	}

	h := r.Health()
	if h.CSVURL != nil || h.LastError != nil || h.ActiveSource != SourceLocal || h.BreakerState != "" {
		t.Errorf("health = %+v", h)
	}
	if h.RefreshSeconds != 30 || h.LastRefreshEpoch != 1_700_000_000 {
		t.Errorf("health timing = %d / %v", h.RefreshSeconds, h.LastRefreshEpoch)
	}
}

func TestRefresher_LocalParseErrorKeepsSnapshot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.csv")
	writeFile(t, path, oneRule)
	r, _ := newTestRefresher(t, Config{Path: path})
	first := r.Current(context.Background())

	writeFile(t, path, "Product ID,Label\nx,y\n")
	if got := r.Current(context.Background()); got != first {
		t.Errorf("bad header replaced the snapshot (version %d)", got.Version)
	}
	h := r.Health()
	if h.LastError == nil || !strings.Contains(*h.LastError, "Missing required columns") {
		t.Errorf("last error = %v", h.LastError)
	}
}

func TestRefresher_RemoteFreshThenStale(t *testing.T) {
	t.Parallel()

	srv := newRulesServer(t, oneRule)
	r, clock := newTestRefresher(t, Config{Path: filepath.Join(t.TempDir(), "none.csv"), URL: srv.URL})
	ctx := context.Background()

	snap := r.Current(ctx)
	if snap.Source != SourceRemote || srv.hits.Load() != 1 {
		t.Fatalf("source %q after %d hits", snap.Source, srv.hits.Load())
	}
	r.Current(ctx)
	if srv.hits.Load() != 1 {
		t.Errorf("fresh snapshot refetched: %d hits", srv.hits.Load())
	}

	clock.Advance(31 * time.Second)
	srv.setBody(twoRules)
	snap = r.Current(ctx)
	if srv.hits.Load() != 2 || snap.Version != 2 || snap.Table.Counts().ExplicitProducts != 2 {
		t.Errorf("expired snapshot: hits %d version %d", srv.hits.Load(), snap.Version)
	}

	clock.Advance(31 * time.Second)
	srv.failing.Store(true)
	stale := r.Current(ctx)
	if stale != snap {
		t.Errorf("failed fetch replaced the snapshot with version %d", stale.Version)
	}

	h := r.Health()
	if h.CSVURL == nil || *h.CSVURL != srv.URL {
		t.Errorf("csv_url = %v", h.CSVURL)
	}
	if h.LastError == nil || !strings.Contains(*h.LastError, "unexpected status 500") {
		t.Errorf("last_error = %v", h.LastError)
	}
	if h.ActiveSource != SourceRemote || h.BreakerState != "closed" {
		t.Errorf("health = %+v", h)
	}

	srv.failing.Store(false)
	r.Current(ctx)
	if h := r.Health(); h.LastError != nil {
		t.Errorf("last_error not cleared: %s", *h.LastError)
	}
}

func TestRefresher_LocalFallback(t *testing.T) {
	t.Parallel()

	srv := newRulesServer(t, oneRule)
	srv.failing.Store(true)
	path := filepath.Join(t.TempDir(), "rules.csv")
	writeFile(t, path, twoRules)

	r, _ := newTestRefresher(t, Config{Path: path, URL: srv.URL})
	var published []string
	r.OnPublish(func(s *recommend.Snapshot) { published = append(published, s.Source) })

	snap := r.Current(context.Background())
	if snap.Source != SourceLocalFallback || snap.Table.Counts().ExplicitProducts != 2 {
		t.Errorf("snapshot = %q %+v", snap.Source, snap.Table.Counts())
	}
	if len(published) != 1 || published[0] != SourceLocalFallback {
		t.Errorf("published = %v", published)
	}
	if h := r.Health(); h.LastError == nil || h.ActiveSource != SourceLocalFallback {
		t.Errorf("health = %+v", h)
	}

	// The fallback counts as fresh, so the next lookup does not refetch.
	hits := srv.hits.Load()
	r.Current(context.Background())
	if srv.hits.Load() != hits {
		t.Errorf("fallback snapshot refetched immediately")
	}
}

func TestRefresher_ReloadThrottled(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.csv")
	writeFile(t, path, oneRule)
	r, _ := newTestRefresher(t, Config{Path: path, ReloadInterval: time.Hour, ReloadBurst: 1})

	snap, err := r.Reload(context.Background())
	if err != nil || snap.Version != 1 {
		t.Fatalf("first reload: %v (version %v)", err, snap)
	}
	if _, err := r.Reload(context.Background()); !errors.Is(err, ErrReloadThrottled) {
		t.Errorf("second reload error = %v, want ErrReloadThrottled", err)
	}
}

func TestRefresher_ReloadForcesRepublish(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.csv")
	writeFile(t, path, oneRule)
	r, _ := newTestRefresher(t, Config{Path: path})

	r.Current(context.Background())
	snap, err := r.Reload(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if snap.Version != 2 {
		t.Errorf("forced reload version = %d, want 2", snap.Version)
	}
}

func TestNewRefresher_InvalidURL(t *testing.T) {
	t.Parallel()

	for _, u := range []string{"ftp://example.com/rules.csv", "not a url", "https://"} {
		if _, err := NewRefresher(Config{URL: u}, recommend.NewStore(), zerolog.Nop()); err == nil {
			t.Errorf("NewRefresher(%q) succeeded", u)
		}
	}
	if _, err := NewRefresher(Config{}, nil, zerolog.Nop()); err == nil {
		t.Error("nil store accepted")
	}
}

func TestRemoteFetcher_BreakerOpens(t *testing.T) {
	t.Parallel()

	srv := newRulesServer(t, oneRule)
	srv.failing.Store(true)
	settings := BreakerSettings{MaxRequests: 1, Interval: time.Hour, Timeout: time.Hour, MinRequests: 2, FailureRatio: 0.5}
	f := NewRemoteFetcher(srv.URL, time.Second, settings, zerolog.Nop())

	for i := 0; i < 2; i++ {
		var status *StatusError
		if _, err := f.Fetch(context.Background()); !errors.As(err, &status) || status.Code != http.StatusInternalServerError {
			t.Fatalf("fetch %d error = %v", i, err)
		}
	}
	if f.State() != "open" {
		t.Fatalf("state = %q, want open", f.State())
	}
	if _, err := f.Fetch(context.Background()); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("open breaker error = %v", err)
	}
	if got := srv.hits.Load(); got != 2 {
		t.Errorf("server hits = %d, want 2", got)
	}
}

func TestStateHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		f     float64
		s     string
	}{
		{gobreaker.StateClosed, 0, "closed"},
		{gobreaker.StateHalfOpen, 1, "half-open"},
		{gobreaker.StateOpen, 2, "open"},
	}
	for _, tt := range tests {
		if got := stateToFloat(tt.state); got != tt.f {
			t.Errorf("stateToFloat(%v) = %v", tt.state, got)
		}
		if got := stateToString(tt.state); got != tt.s {
			t.Errorf("stateToString(%v) = %q", tt.state, got)
		}
	}
}
