package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

const calendarPage = `<!doctype html>
<html><body>
<div class="calendar-event">
  <h3 class="event-title">Farmers Market</h3>
  <time datetime="2026-07-11T09:00">July 11, 2026 9:00 AM</time>
  <div class="event-location">Court Street</div>
  <p class="event-description">Weekly market with local vendors.</p>
  <a href="/events/farmers-market">Details</a>
</div>
<div class="calendar-event">
  <h3 class="event-title">Summer Concert</h3>
  <div class="event-date">July 18, 2026 7:00 PM</div>
</div>
<div class="calendar-event">
  <h3 class="event-title">No Date Event</h3>
</div>
<div class="calendar-event">
  <time datetime="2026-08-01">titleless</time>
</div>
</body></html>`

func TestFetchParsesCalendar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(calendarPage))
	}))
	defer srv.Close()

	f := New(srv.URL, zap.NewNop())
	if !f.Enabled() {
		t.Fatal("fetcher with URL should be enabled")
	}

	events, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	// Two parseable events; the date-less and title-less items are skipped.
	if len(events) != 2 {
		t.Fatalf("events: got %d, want 2 (%+v)", len(events), events)
	}

	market := events[0]
	if market.Title != "Farmers Market" {
		t.Errorf("title: got %q", market.Title)
	}
	want := time.Date(2026, 7, 11, 9, 0, 0, 0, time.UTC)
	if !market.StartAt.Equal(want) {
		t.Errorf("start: got %v, want %v", market.StartAt, want)
	}
	if market.Location != "Court Street" {
		t.Errorf("location: got %q", market.Location)
	}
	if market.URL != srv.URL+"/events/farmers-market" {
		t.Errorf("url: got %q", market.URL)
	}
	if market.FeedKey == "" {
		t.Error("feed key should be derived")
	}

	concert := events[1]
	if concert.Title != "Summer Concert" {
		t.Errorf("second title: got %q", concert.Title)
	}
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := New(srv.URL, zap.NewNop())
	if _, err := f.Fetch(context.Background()); err == nil {
		t.Fatal("non-200 response should be an error")
	}
}

func TestDisabledWithoutURL(t *testing.T) {
	f := New("", zap.NewNop())
	if f.Enabled() {
		t.Fatal("fetcher without URL should be disabled")
	}
}

func TestFeedKeyStable(t *testing.T) {
	at := time.Date(2026, 7, 11, 9, 0, 0, 0, time.UTC)
	a := feedKey("Farmers  Market", at)
	b := feedKey("farmers market", at.Add(2*time.Hour)) // same day
	if a != b {
		t.Errorf("keys should match for same title and day: %q vs %q", a, b)
	}
	c := feedKey("Farmers Market", at.AddDate(0, 0, 1))
	if a == c {
		t.Error("different days should produce different keys")
	}
}
