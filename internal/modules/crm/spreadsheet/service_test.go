package spreadsheet

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cybaemtech/site-core/internal/models"
	"github.com/cybaemtech/site-core/internal/modules/crm/lead"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.SpreadsheetConfig{}, &models.Lead{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testService(t *testing.T) *Service {
	db := testDB(t)
	return NewService(db, lead.NewService(db), zap.NewNop())
}

func TestSyncDue(t *testing.T) {
	now := time.Now()
	recent := now.Add(-10 * time.Minute)
	stale := now.Add(-2 * time.Hour)

	cases := []struct {
		name   string
		config models.SpreadsheetConfig
		want   bool
	}{
		{"never synced", models.SpreadsheetConfig{SyncInterval: 60}, true},
		{"recently synced", models.SpreadsheetConfig{SyncInterval: 60, LastSynced: &recent}, false},
		{"interval elapsed", models.SpreadsheetConfig{SyncInterval: 60, LastSynced: &stale}, true},
		{"short interval", models.SpreadsheetConfig{SyncInterval: 5, LastSynced: &recent}, true},
	}
	for _, tc := range cases {
		if got := syncDue(&tc.config, now); got != tc.want {
			t.Errorf("%s: syncDue = %v, expected %v", tc.name, got, tc.want)
		}
	}
}

func TestSyncImportsAndStamps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Name,Email\nAsha,asha@example.com\nRavi,ravi@example.com\n")
	}))
	defer srv.Close()

	svc := testService(t)
	config, err := svc.Create(&UpsertConfigDTO{Name: "weekly leads", URL: srv.URL})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	result, err := svc.Sync(context.Background(), config.ID)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Imported = %d, expected 2", result.Imported)
	}

	synced, err := svc.Get(config.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if synced.LastSynced == nil {
		t.Error("LastSynced not stamped after sync")
	}
}

func TestRunAutoSyncSkipsInactive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Name,Email\nAsha,asha@example.com\n")
	}))
	defer srv.Close()

	svc := testService(t)
	on := true
	off := false
	if _, err := svc.Create(&UpsertConfigDTO{Name: "active", URL: srv.URL, AutoSync: &on}); err != nil {
		t.Fatalf("Create active: %v", err)
	}
	if _, err := svc.Create(&UpsertConfigDTO{Name: "manual only", URL: srv.URL, AutoSync: &off}); err != nil {
		t.Fatalf("Create manual: %v", err)
	}

	outcomes, err := svc.RunAutoSync(context.Background())
	if err != nil {
		t.Fatalf("RunAutoSync: %v", err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("outcomes = %d, expected 1 (manual config skipped)", len(outcomes))
	}
	if outcomes[0].Name != "active" {
		t.Errorf("outcome name = %q, expected active", outcomes[0].Name)
	}
	if outcomes[0].Result == nil || outcomes[0].Result.Imported != 1 {
		t.Errorf("outcome result = %+v, expected one imported lead", outcomes[0].Result)
	}
}

func TestRunAutoSyncCollectsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	svc := testService(t)
	on := true
	if _, err := svc.Create(&UpsertConfigDTO{Name: "broken", URL: srv.URL, AutoSync: &on}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	outcomes, err := svc.RunAutoSync(context.Background())
	if err != nil {
		t.Fatalf("RunAutoSync should not fail the batch: %v", err)
	}
	if len(outcomes) != 1 || outcomes[0].Error == "" {
		t.Errorf("outcomes = %+v, expected one failed outcome", outcomes)
	}
}
