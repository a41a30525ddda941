package businessapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	submissionstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/submissions"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/metrics"
	"github.com/thecityofwhiteplains/cityguide/internal/app/workflow"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
	"github.com/thecityofwhiteplains/cityguide/internal/testutil"
)

func postSubmission(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	SubmissionRoutes(h).ServeHTTP(rec, req)
	return rec
}

func TestSubmitNewBusiness(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, metrics.New(), zap.NewNop())

	rec := postSubmission(t, h, `{
		"business_name": "Calm Corner Coffee",
		"mode": "new",
		"category": "cafe",
		"contact_name": "Pat Tester",
		"contact_email": "pat@example.com",
		"address": "123 Main St"
	}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}

	// 201 carries the full created submission.
	var out struct {
		Submission models.BusinessSubmission `json:"submission"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Submission.Status != models.SubmissionStatusPending {
		t.Errorf("status: got %q, want pending", out.Submission.Status)
	}
	if out.Submission.BusinessName != "Calm Corner Coffee" {
		t.Errorf("response name: got %q", out.Submission.BusinessName)
	}
	if out.Submission.SubmittedAt.IsZero() {
		t.Error("response should carry SubmittedAt")
	}

	// The stored row must be pending regardless of what the payload said.
	id, err := workflow.ParseID(out.Submission.ID.Hex())
	if err != nil {
		t.Fatalf("response id: %v", err)
	}
	ctx, cancel := testutil.TestContext()
	defer cancel()
	sub, err := submissionstore.New(db).GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get stored submission: %v", err)
	}
	if sub.Status != models.SubmissionStatusPending {
		t.Errorf("stored status: got %q, want pending", sub.Status)
	}
	if sub.BusinessName != "Calm Corner Coffee" {
		t.Errorf("stored name: got %q", sub.BusinessName)
	}
}

func TestSubmitClaimWithBadEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, metrics.New(), zap.NewNop())

	rec := postSubmission(t, h, `{
		"business_name": "Harbor Books",
		"mode": "claim",
		"category": "shop",
		"address": "9 Court St",
		"contact_name": "Pat Tester",
		"contact_email": "not-an-email"
	}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}

	// Nothing may be stored for a rejected payload.
	ctx, cancel := testutil.TestContext()
	defer cancel()
	count, err := submissionstore.New(db).CountByStatus(ctx, models.SubmissionStatusPending)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("pending submissions after rejected payload: got %d, want 0", count)
	}
}

func TestSubmitRejectsUnknownMode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, metrics.New(), zap.NewNop())

	rec := postSubmission(t, h, `{
		"business_name": "Harbor Books",
		"mode": "takeover",
		"category": "shop",
		"address": "9 Court St",
		"contact_name": "Pat Tester",
		"contact_email": "pat@example.com"
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestSubmitClaimRejectsBadListingID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, metrics.New(), zap.NewNop())

	rec := postSubmission(t, h, `{
		"business_name": "Harbor Books",
		"mode": "claim",
		"category": "shop",
		"address": "9 Court St",
		"contact_name": "Pat Tester",
		"contact_email": "pat@example.com",
		"linked_listing_id": "undefined"
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestSubmitRequiresCategoryAndAddress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, metrics.New(), zap.NewNop())

	// Full payload minus one required field each.
	tests := []struct {
		name string
		body string
	}{
		{"missing category", `{
			"business_name": "Harbor Books",
			"mode": "new",
			"address": "9 Court St",
			"contact_name": "Pat Tester",
			"contact_email": "pat@example.com"
		}`},
		{"missing address", `{
			"business_name": "Harbor Books",
			"mode": "new",
			"category": "shop",
			"contact_name": "Pat Tester",
			"contact_email": "pat@example.com"
		}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := postSubmission(t, h, tt.body); rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400 (body: %s)", rec.Code, rec.Body.String())
			}
		})
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	count, err := submissionstore.New(db).CountByStatus(ctx, models.SubmissionStatusPending)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("pending submissions after rejected payloads: got %d, want 0", count)
	}
}

func TestSubmitRejectsInvalidJSON(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, metrics.New(), zap.NewNop())

	rec := postSubmission(t, h, `{"business_name": `)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestListingsEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, metrics.New(), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ListingRoutes(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var out struct {
		Listings []models.BusinessListing `json:"listings"`
		Count    int                      `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 0 || out.Listings == nil {
		t.Errorf("empty directory should serve an empty array, got %+v", out)
	}
}
