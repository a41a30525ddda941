// Package feed fetches the city's public calendar page and extracts events
// from it. Refresh is admin-triggered; nothing here runs on a schedule.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// Fetcher scrapes the configured city calendar URL.
type Fetcher struct {
	calendarURL string
	client      *http.Client
	log         *zap.Logger
}

// New creates a Fetcher for the given calendar URL.
func New(calendarURL string, log *zap.Logger) *Fetcher {
	return &Fetcher{
		calendarURL: calendarURL,
		client:      &http.Client{Timeout: 20 * time.Second},
		log:         log,
	}
}

// Enabled reports whether a calendar URL is configured.
func (f *Fetcher) Enabled() bool {
	return f.calendarURL != ""
}

// Fetch downloads the calendar page and returns the events found on it.
// Items missing a title or a parseable date are skipped, not fatal.
func (f *Fetcher) Fetch(ctx context.Context) ([]models.CityEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.calendarURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build calendar request: %w", err)
	}
	req.Header.Set("User-Agent", "cityguide-feed/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse calendar page: %w", err)
	}

	now := time.Now().UTC()
	var events []models.CityEvent
	skipped := 0

	doc.Find(".calendar-event, .event-item, article.event").Each(func(_ int, sel *goquery.Selection) {
		ev, ok := f.parseItem(sel, now)
		if !ok {
			skipped++
			return
		}
		events = append(events, ev)
	})

	f.log.Info("calendar feed fetched",
		zap.Int("events", len(events)),
		zap.Int("skipped", skipped),
		zap.String("url", f.calendarURL))

	return events, nil
}

func (f *Fetcher) parseItem(sel *goquery.Selection, now time.Time) (models.CityEvent, bool) {
	title := strings.TrimSpace(sel.Find(".event-title, h3, h2").First().Text())
	if title == "" {
		return models.CityEvent{}, false
	}

	startAt, ok := parseItemTime(sel)
	if !ok {
		f.log.Debug("calendar item has no parseable date", zap.String("title", title))
		return models.CityEvent{}, false
	}

	location := strings.TrimSpace(sel.Find(".event-location, .location").First().Text())
	description := strings.TrimSpace(sel.Find(".event-description, .description, p").First().Text())

	link := ""
	if href, exists := sel.Find("a[href]").First().Attr("href"); exists {
		link = f.absoluteURL(href)
	}

	return models.CityEvent{
		FeedKey:     feedKey(title, startAt),
		Title:       title,
		StartAt:     startAt,
		Location:    location,
		Description: description,
		URL:         link,
		FetchedAt:   now,
	}, true
}

// parseItemTime tries the machine-readable datetime attribute first, then a
// handful of common display formats.
func parseItemTime(sel *goquery.Selection) (time.Time, bool) {
	if dt, exists := sel.Find("time[datetime]").First().Attr("datetime"); exists {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
			if t, err := time.Parse(layout, dt); err == nil {
				return t.UTC(), true
			}
		}
	}

	raw := strings.TrimSpace(sel.Find(".event-date, .date, time").First().Text())
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		"January 2, 2006 3:04 PM",
		"January 2, 2006",
		"Jan 2, 2006 3:04 PM",
		"Jan 2, 2006",
		"01/02/2006 3:04 PM",
		"01/02/2006",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func (f *Fetcher) absoluteURL(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		return u.String()
	}
	base, err := url.Parse(f.calendarURL)
	if err != nil {
		return href
	}
	return base.ResolveReference(u).String()
}

// feedKey derives the stable key used to upsert an event across refreshes.
// The same title on the same day maps to the same key, so edits on the city
// site update our copy instead of duplicating it.
func feedKey(title string, startAt time.Time) string {
	norm := strings.ToLower(strings.Join(strings.Fields(title), "-"))
	return fmt.Sprintf("%s|%s", startAt.UTC().Format("2006-01-02"), norm)
}
