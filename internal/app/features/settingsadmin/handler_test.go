package settingsadmin_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/thecityofwhiteplains/cityguide/internal/app/features/settingsadmin"
	"github.com/thecityofwhiteplains/cityguide/internal/testutil"
)

const testAPIKey = "test-admin-key"

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return settingsadmin.Routes(settingsadmin.NewHandler(db, zap.NewNop()), testAPIKey, zap.NewNop())
}

func doJSON(t *testing.T, router http.Handler, method, target, body string) *testutil.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPutAndGetGroups(t *testing.T) {
	router := newRouter(t)

	doJSON(t, router, http.MethodPut, "/promo-card",
		`{"enabled":true,"title":"Winter Market","link":"/events"}`).
		AssertStatus(t, http.StatusOK)
	doJSON(t, router, http.MethodPut, "/hero-images",
		`{"images":[{"page":"home","image_url":"https://cdn.example.com/h.jpg"}]}`).
		AssertStatus(t, http.StatusOK)
	doJSON(t, router, http.MethodPut, "/start-cards",
		`{"cards":[{"key":"visit","title":"Visit","link":"/visit"}]}`).
		AssertStatus(t, http.StatusOK)
	doJSON(t, router, http.MethodPut, "/site-verification",
		`{"provider":"google","snippet":"<meta name=\"gsv\">"}`).
		AssertStatus(t, http.StatusOK)

	rec := doJSON(t, router, http.MethodGet, "/", "")
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Winter Market")
	rec.AssertContains(t, "cdn.example.com/h.jpg")
	rec.AssertContains(t, `"provider":"google"`)
}

func TestPutReplacesGroupWhole(t *testing.T) {
	router := newRouter(t)

	doJSON(t, router, http.MethodPut, "/start-cards",
		`{"cards":[{"key":"a","title":"A","link":"/a"},{"key":"b","title":"B","link":"/b"}]}`).
		AssertStatus(t, http.StatusOK)
	doJSON(t, router, http.MethodPut, "/start-cards",
		`{"cards":[{"key":"c","title":"C","link":"/c"}]}`).
		AssertStatus(t, http.StatusOK)

	rec := doJSON(t, router, http.MethodGet, "/", "")
	rec.AssertStatus(t, http.StatusOK)
	body := rec.Body.String()
	if strings.Contains(body, `"key":"a"`) {
		t.Error("old cards should be replaced, not merged")
	}
	rec.AssertContains(t, `"key":"c"`)
}

func TestPutValidation(t *testing.T) {
	router := newRouter(t)

	// Enabled promo card needs a title.
	doJSON(t, router, http.MethodPut, "/promo-card", `{"enabled":true}`).
		AssertStatus(t, http.StatusBadRequest)
	// Disabled card without a title is fine.
	doJSON(t, router, http.MethodPut, "/promo-card", `{"enabled":false}`).
		AssertStatus(t, http.StatusOK)

	doJSON(t, router, http.MethodPut, "/hero-images",
		`{"images":[{"page":"home"}]}`).
		AssertStatus(t, http.StatusBadRequest)
	doJSON(t, router, http.MethodPut, "/start-cards",
		`{"cards":[{"key":"x","title":"X"}]}`).
		AssertStatus(t, http.StatusBadRequest)
	doJSON(t, router, http.MethodPut, "/promo-card", `{"enabled":`).
		AssertStatus(t, http.StatusBadRequest)
}

func TestRequiresAPIKey(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusUnauthorized)
}
