package postsadmin_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/thecityofwhiteplains/cityguide/internal/app/features/postsadmin"
	"github.com/thecityofwhiteplains/cityguide/internal/testutil"
)

const testAPIKey = "test-admin-key"

func newRouter(t *testing.T, drafter postsadmin.Drafter) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return postsadmin.Routes(postsadmin.NewHandler(db, drafter, zap.NewNop()), testAPIKey, zap.NewNop())
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

func TestSaveCreatesPost(t *testing.T) {
	router := newRouter(t, nil)

	rec := doJSON(t, router, http.MethodPut, "/new",
		`{"title":"Fall Festival Recap","status":"published","body":"<p>Great turnout.</p>"}`)
	rec.AssertStatus(t, http.StatusOK)

	var out struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Slug != "fall-festival-recap" {
		t.Errorf("slug: got %q", out.Slug)
	}

	get := doJSON(t, router, http.MethodGet, "/fall-festival-recap", "")
	get.AssertStatus(t, http.StatusOK)
	get.AssertContains(t, "Great turnout")
	get.AssertContains(t, `"published_at"`)
}

func TestSaveSanitizesBody(t *testing.T) {
	router := newRouter(t, nil)

	rec := doJSON(t, router, http.MethodPut, "/new",
		`{"title":"Scripted","body":"<p>hi</p><script>alert(1)</script>"}`)
	rec.AssertStatus(t, http.StatusOK)

	get := doJSON(t, router, http.MethodGet, "/scripted", "")
	get.AssertStatus(t, http.StatusOK)
	if strings.Contains(get.Body.String(), "<script>") {
		t.Error("script tags should be stripped from stored body")
	}
}

func TestSaveRename(t *testing.T) {
	router := newRouter(t, nil)

	doJSON(t, router, http.MethodPut, "/new",
		`{"title":"Old Title","status":"draft","body":"x"}`).AssertStatus(t, http.StatusOK)

	rec := doJSON(t, router, http.MethodPut, "/old-title",
		`{"slug":"new-title","title":"New Title","status":"draft","body":"x"}`)
	rec.AssertStatus(t, http.StatusOK)

	doJSON(t, router, http.MethodGet, "/old-title", "").AssertStatus(t, http.StatusNotFound)
	doJSON(t, router, http.MethodGet, "/new-title", "").AssertStatus(t, http.StatusOK)

	list := doJSON(t, router, http.MethodGet, "/", "")
	list.AssertContains(t, `"count":1`)
}

func TestSaveValidation(t *testing.T) {
	router := newRouter(t, nil)

	doJSON(t, router, http.MethodPut, "/new", `{"body":"no title"}`).
		AssertStatus(t, http.StatusBadRequest)
	doJSON(t, router, http.MethodPut, "/new", `{"title":"T","status":"archived"}`).
		AssertStatus(t, http.StatusBadRequest)
	doJSON(t, router, http.MethodPut, "/new", `{"title":"!!!"}`).
		AssertStatus(t, http.StatusBadRequest)
}

func TestDeletePost(t *testing.T) {
	router := newRouter(t, nil)

	doJSON(t, router, http.MethodPut, "/new",
		`{"title":"Short Lived","body":"x"}`).AssertStatus(t, http.StatusOK)

	doJSON(t, router, http.MethodDelete, "/short-lived", "").
		AssertStatus(t, http.StatusNoContent)
	doJSON(t, router, http.MethodDelete, "/short-lived", "").
		AssertStatus(t, http.StatusNotFound)
}

type fakeDrafter struct{}

func (fakeDrafter) Draft(_ context.Context, topic string) (string, string, error) {
	return "About " + topic, "<p>" + topic + "</p>", nil
}

func TestDraftHandler(t *testing.T) {
	// Without a drafter the endpoint reports not-implemented.
	router := newRouter(t, nil)
	doJSON(t, router, http.MethodPost, "/draft", `{"topic":"parks"}`).
		AssertStatus(t, http.StatusNotImplemented)

	router = newRouter(t, fakeDrafter{})
	rec := doJSON(t, router, http.MethodPost, "/draft", `{"topic":"parks"}`)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "About parks")

	doJSON(t, router, http.MethodPost, "/draft", `{"topic":"  "}`).
		AssertStatus(t, http.StatusBadRequest)
}
