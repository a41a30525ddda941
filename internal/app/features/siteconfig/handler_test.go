package siteconfig_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/thecityofwhiteplains/cityguide/internal/app/features/siteconfig"
	settingstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/settings"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
	"github.com/thecityofwhiteplains/cityguide/internal/testutil"
)

func TestSiteConfigFullShape(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := siteconfig.Routes(siteconfig.NewHandler(db, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	// All groups are present even when nothing is configured yet.
	var out map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range models.AllConfigKeys() {
		if _, ok := out[key]; !ok {
			t.Errorf("missing group %q in response", key)
		}
	}
}

func TestSiteConfigReflectsStoredGroups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	settings := settingstore.New(db)

	if err := settings.Upsert(ctx, models.ConfigRecord{
		Key: models.ConfigKeyPromoCard,
		PromoCard: &models.PromoCard{
			Enabled: true,
			Title:   "Holiday Market",
			Link:    "/events",
		},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	router := siteconfig.Routes(siteconfig.NewHandler(db, zap.NewNop()))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"Holiday Market"`)
	rec.AssertContains(t, `"enabled":true`)
}
