package reactions_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/thecityofwhiteplains/cityguide/internal/app/features/reactions"
	"github.com/thecityofwhiteplains/cityguide/internal/testutil"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return reactions.Routes(reactions.NewHandler(db, zap.NewNop()))
}

func react(t *testing.T, router http.Handler, body string) *testutil.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestReactionRoundTrip(t *testing.T) {
	router := newRouter(t)

	react(t, router, `{"slug":"blog/summer-guide","kind":"up"}`).AssertStatus(t, http.StatusOK)
	react(t, router, `{"slug":"blog/summer-guide","kind":"up"}`).AssertStatus(t, http.StatusOK)
	rec := react(t, router, `{"slug":"blog/summer-guide","kind":"share"}`)
	rec.AssertStatus(t, http.StatusOK)

	var counter struct {
		Slug  string `json:"slug"`
		Up    int64  `json:"up"`
		Down  int64  `json:"down"`
		Share int64  `json:"share"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &counter); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if counter.Up != 2 || counter.Share != 1 || counter.Down != 0 {
		t.Fatalf("counter: %+v", counter)
	}

	req := httptest.NewRequest(http.MethodGet, "/?slug=blog/summer-guide", nil)
	get := testutil.NewRecorder()
	router.ServeHTTP(get, req)
	get.AssertStatus(t, http.StatusOK)
	get.AssertContains(t, `"up":2`)
}

func TestGetUnknownSlugReadsZero(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/?slug=never-seen", nil)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"slug":"never-seen"`)
	rec.AssertContains(t, `"up":0`)
}

func TestGetRequiresSlug(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestPostRejectsUnknownKind(t *testing.T) {
	router := newRouter(t)

	react(t, router, `{"slug":"blog/summer-guide","kind":"love"}`).AssertStatus(t, http.StatusBadRequest)
	react(t, router, `{"kind":"up"}`).AssertStatus(t, http.StatusBadRequest)
	react(t, router, `not json`).AssertStatus(t, http.StatusBadRequest)
}
