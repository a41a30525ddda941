package moderationapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	eventsubstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/eventsubs"
	submissionstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/submissions"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/metrics"
	"github.com/thecityofwhiteplains/cityguide/internal/app/workflow"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
	"github.com/thecityofwhiteplains/cityguide/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

const testAPIKey = "test-admin-key"

// mailRecorder counts event decision notifications.
type mailRecorder struct {
	events int
}

func (n *mailRecorder) BusinessApproved(_ context.Context, _ models.BusinessSubmission, _ models.BusinessListing) {
}

func (n *mailRecorder) BusinessRejected(_ context.Context, _ models.BusinessSubmission, _ string) {}

func (n *mailRecorder) EventDecision(_ context.Context, _ models.EventSubmission, _ bool, _ string) {
	n.events++
}

func newTestRouter(t *testing.T) (http.Handler, *mongo.Database) {
	t.Helper()
	router, db, _ := newTestRouterWithMail(t)
	return router, db
}

func newTestRouterWithMail(t *testing.T) (http.Handler, *mongo.Database, *mailRecorder) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	mail := &mailRecorder{}
	moderator := workflow.New(db, mail, zap.NewNop())
	h := NewHandler(db, moderator, nil, metrics.New(), zap.NewNop())
	return Routes(h, testAPIKey, zap.NewNop()), db, mail
}

func doJSON(router http.Handler, method, target, body, key string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequiresAPIKey(t *testing.T) {
	router, _ := newTestRouter(t)

	if rec := doJSON(router, http.MethodGet, "/business-submissions", "", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("no key: got %d, want 401", rec.Code)
	}
	if rec := doJSON(router, http.MethodGet, "/business-submissions", "", "wrong-key"); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: got %d, want 401", rec.Code)
	}
	if rec := doJSON(router, http.MethodGet, "/business-submissions", "", testAPIKey); rec.Code != http.StatusOK {
		t.Errorf("valid key: got %d, want 200", rec.Code)
	}
}

func TestDecideBusinessApproves(t *testing.T) {
	router, db := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id, err := submissionstore.New(db).Create(ctx, models.BusinessSubmission{
		BusinessName: "Calm Corner Coffee",
		Mode:         models.SubmissionModeNew,
		ContactName:  "Pat",
		ContactEmail: "pat@example.com",
	})
	if err != nil {
		t.Fatalf("create submission: %v", err)
	}

	rec := doJSON(router, http.MethodPost, "/business-submissions/"+id.Hex()+"/status",
		`{"status": "approved"}`, testAPIKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: got %d (body: %s)", rec.Code, rec.Body.String())
	}

	// The response carries the updated submission and the derived listing.
	var out struct {
		Submission models.BusinessSubmission `json:"submission"`
		Listing    *models.BusinessListing   `json:"listing"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Submission.Status != models.SubmissionStatusApproved {
		t.Errorf("response submission status: got %q, want approved", out.Submission.Status)
	}
	if out.Listing == nil || out.Listing.Slug != "calm-corner-coffee" {
		t.Errorf("response listing: got %+v", out.Listing)
	}

	sub, err := submissionstore.New(db).GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get submission: %v", err)
	}
	if sub.Status != models.SubmissionStatusApproved {
		t.Errorf("status: got %q, want approved", sub.Status)
	}
}

func TestDecideEventHonorsSendEmail(t *testing.T) {
	router, db, mail := newTestRouterWithMail(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	events := eventsubstore.New(db)
	newEvent := func(title string) string {
		id, err := events.Create(ctx, models.EventSubmission{
			Title:        title,
			StartAt:      time.Now().Add(48 * time.Hour).UTC(),
			Location:     "Turnure Park",
			ContactName:  "Pat",
			ContactEmail: "pat@example.com",
		})
		if err != nil {
			t.Fatalf("create event submission: %v", err)
		}
		return id.Hex()
	}

	first := newEvent("Park Cleanup")
	rec := doJSON(router, http.MethodPost, "/event-submissions/"+first+"/status",
		`{"status": "approved", "sendEmail": false}`, testAPIKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve without email: got %d (body: %s)", rec.Code, rec.Body.String())
	}
	if mail.events != 0 {
		t.Errorf("notifications after sendEmail=false: got %d, want 0", mail.events)
	}

	var out struct {
		Submission models.EventSubmission `json:"submission"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Submission.Status != models.SubmissionStatusApproved {
		t.Errorf("response submission status: got %q, want approved", out.Submission.Status)
	}

	second := newEvent("Block Party")
	rec = doJSON(router, http.MethodPost, "/event-submissions/"+second+"/status",
		`{"status": "rejected", "reason": "duplicate", "sendEmail": true}`, testAPIKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("reject with email: got %d (body: %s)", rec.Code, rec.Body.String())
	}
	if mail.events != 1 {
		t.Errorf("notifications after sendEmail=true: got %d, want 1", mail.events)
	}
}

func TestDecideBusinessRefusesJunkID(t *testing.T) {
	router, db := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id, err := submissionstore.New(db).Create(ctx, models.BusinessSubmission{
		BusinessName: "Untouched",
		Mode:         models.SubmissionModeNew,
		ContactName:  "Pat",
		ContactEmail: "pat@example.com",
	})
	if err != nil {
		t.Fatalf("create submission: %v", err)
	}

	for _, junk := range []string{"undefined", "null", "not-hex"} {
		rec := doJSON(router, http.MethodPost, "/business-submissions/"+junk+"/status",
			`{"status": "approved"}`, testAPIKey)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("id %q: got %d, want 400", junk, rec.Code)
		}
	}

	// No decision may have mutated anything.
	sub, err := submissionstore.New(db).GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get submission: %v", err)
	}
	if sub.Status != models.SubmissionStatusPending {
		t.Errorf("status after junk decisions: got %q, want pending", sub.Status)
	}
}

func TestDecideBusinessUnknownID(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/business-submissions/64b000000000000000000000/status",
		`{"status": "rejected", "reason": "spam"}`, testAPIKey)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: got %d, want 404", rec.Code)
	}
}

func TestListBusinessFiltersByStatus(t *testing.T) {
	router, db := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := submissionstore.New(db)
	id, err := store.Create(ctx, models.BusinessSubmission{
		BusinessName: "Pending One",
		Mode:         models.SubmissionModeNew,
		ContactName:  "Pat",
		ContactEmail: "pat@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.SetStatus(ctx, id, models.SubmissionStatusRejected); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if _, err := store.Create(ctx, models.BusinessSubmission{
		BusinessName: "Pending Two",
		Mode:         models.SubmissionModeNew,
		ContactName:  "Pat",
		ContactEmail: "pat@example.com",
	}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	rec := doJSON(router, http.MethodGet, "/business-submissions?status=rejected", "", testAPIKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got %d", rec.Code)
	}
	var out struct {
		Submissions []models.BusinessSubmission `json:"submissions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Submissions) != 1 || out.Submissions[0].BusinessName != "Pending One" {
		t.Errorf("rejected list: got %+v", out.Submissions)
	}

	if rec := doJSON(router, http.MethodGet, "/business-submissions?status=bogus", "", testAPIKey); rec.Code != http.StatusBadRequest {
		t.Errorf("bogus status filter: got %d, want 400", rec.Code)
	}
}

func TestRefreshFeedWithoutFetcher(t *testing.T) {
	router, _ := newTestRouter(t)

	// The handler was built with a nil fetcher.
	rec := doJSON(router, http.MethodPost, "/events/refresh-feed", "", testAPIKey)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("refresh without feed: got %d, want 503", rec.Code)
	}
}
