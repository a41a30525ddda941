package adsapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/thecityofwhiteplains/cityguide/internal/app/features/adsapi"
	adstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/ads"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
	"github.com/thecityofwhiteplains/cityguide/internal/testutil"
)

type placementsOut struct {
	Placements map[string][]struct {
		ID         string `json:"id"`
		Title      string `json:"title"`
		ButtonText string `json:"button_text"`
		Placement  string `json:"placement"`
	} `json:"placements"`
}

func getAds(t *testing.T, router http.Handler, query string) placementsOut {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/"+query, nil)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var out placementsOut
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestAdsGroupedByPlacement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	ads := adstore.New(db)

	seed := []models.AffiliateAd{
		{Title: "Stay Downtown", Link: "https://partner.example/stay", Placement: models.PlacementVisitLodging, Partner: "StayHub", IsActive: true},
		{Title: "Concert Tickets", Link: "https://partner.example/tix", Placement: models.PlacementEventsTickets, ButtonText: "Buy tickets", IsActive: true},
		{Title: "Retired Promo", Link: "https://partner.example/old", Placement: models.PlacementVisitLodging, IsActive: false},
	}
	for _, ad := range seed {
		if _, err := ads.Create(ctx, ad); err != nil {
			t.Fatalf("create %q: %v", ad.Title, err)
		}
	}

	router := adsapi.Routes(adsapi.NewHandler(db, zap.NewNop()))
	out := getAds(t, router, "?placements=visit_lodging,events_tickets")

	lodging := out.Placements["visit_lodging"]
	if len(lodging) != 1 || lodging[0].Title != "Stay Downtown" {
		t.Fatalf("visit_lodging: %+v", lodging)
	}
	if lodging[0].ButtonText != "Open StayHub" {
		t.Errorf("button text should default from partner, got %q", lodging[0].ButtonText)
	}

	tickets := out.Placements["events_tickets"]
	if len(tickets) != 1 || tickets[0].ButtonText != "Buy tickets" {
		t.Fatalf("events_tickets: %+v", tickets)
	}
}

func TestAdsUnknownPlacementsDropped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := adsapi.Routes(adsapi.NewHandler(db, zap.NewNop()))

	out := getAds(t, router, "?placements=home_spotlight,popunder")
	if _, ok := out.Placements["popunder"]; ok {
		t.Error("unknown placement should be dropped")
	}
	if got, ok := out.Placements["home_spotlight"]; !ok || len(got) != 0 {
		t.Errorf("requested empty placement should be present and empty: %+v", got)
	}
}

func TestAdsNoPlacementsRequested(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := adsapi.Routes(adsapi.NewHandler(db, zap.NewNop()))

	out := getAds(t, router, "")
	if len(out.Placements) != 0 {
		t.Errorf("no placements requested should yield empty map: %+v", out.Placements)
	}
}
