package adsadmin_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/thecityofwhiteplains/cityguide/internal/app/features/adsadmin"
	"github.com/thecityofwhiteplains/cityguide/internal/testutil"
)

const testAPIKey = "test-admin-key"

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return adsadmin.Routes(adsadmin.NewHandler(db, zap.NewNop()), testAPIKey, zap.NewNop())
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

const validAd = `{
	"title": "Stay Downtown",
	"link": "https://partner.example/stay",
	"placement": "visit_lodging",
	"partner": "StayHub",
	"is_active": true
}`

func createAd(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/", validAd)
	rec.AssertStatus(t, http.StatusCreated)

	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if out.ID == "" {
		t.Fatal("created ad has no id")
	}
	return out.ID
}

func TestRequiresAPIKey(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusUnauthorized)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestCreateAndGet(t *testing.T) {
	router := newRouter(t)
	id := createAd(t, router)

	rec := doJSON(t, router, http.MethodGet, "/"+id, "")
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Stay Downtown")

	list := doJSON(t, router, http.MethodGet, "/", "")
	list.AssertStatus(t, http.StatusOK)
	list.AssertContains(t, `"count":1`)
}

func TestCreateValidation(t *testing.T) {
	router := newRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"link":"https://x.example","placement":"visit_lodging"}`},
		{"missing link", `{"title":"T","placement":"visit_lodging"}`},
		{"bad link scheme", `{"title":"T","link":"javascript:alert(1)","placement":"visit_lodging"}`},
		{"unknown placement", `{"title":"T","link":"https://x.example","placement":"sidebar"}`},
		{"bad json", `{"title":`},
	}
	for _, tc := range cases {
		rec := doJSON(t, router, http.MethodPost, "/", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestUpdate(t *testing.T) {
	router := newRouter(t)
	id := createAd(t, router)

	updated := strings.Replace(validAd, "Stay Downtown", "Stay Midtown", 1)
	rec := doJSON(t, router, http.MethodPut, "/"+id, updated)
	rec.AssertStatus(t, http.StatusOK)

	get := doJSON(t, router, http.MethodGet, "/"+id, "")
	get.AssertContains(t, "Stay Midtown")
}

func TestDelete(t *testing.T) {
	router := newRouter(t)
	id := createAd(t, router)

	rec := doJSON(t, router, http.MethodDelete, "/"+id, "")
	rec.AssertStatus(t, http.StatusNoContent)

	gone := doJSON(t, router, http.MethodGet, "/"+id, "")
	gone.AssertStatus(t, http.StatusNotFound)

	again := doJSON(t, router, http.MethodDelete, "/"+id, "")
	again.AssertStatus(t, http.StatusNotFound)
}

func TestBadIDs(t *testing.T) {
	router := newRouter(t)

	for _, id := range []string{"undefined", "null", "not-hex"} {
		rec := doJSON(t, router, http.MethodGet, "/"+id, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("id %q: got %d, want 400", id, rec.Code)
		}
	}

	missing := doJSON(t, router, http.MethodGet, "/64b2f0c45e7a9d0012345678", "")
	missing.AssertStatus(t, http.StatusNotFound)
}
