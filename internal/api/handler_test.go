package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"salespulse/internal/calendar"
	"salespulse/internal/config"
	"salespulse/internal/loader"
	"salespulse/internal/model"
	"salespulse/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Session) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	session := store.NewSession()
	h := NewHandler(st, session, config.DefaultConfig(), log)

	router := gin.New()
	h.RegisterRoutes(router.Group("/api"))
	return router, session
}

// loadFixture 往会话里放一份两天的加载结果
func loadFixture(session *store.Session) *loader.Result {
	day := func(d int, slots ...*model.SlotRecord) *model.DailyRecord {
		date := time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
		return &model.DailyRecord{
			Sheet:   date.Format("Jan 02"),
			DateRaw: date.Format("2006-01-02"),
			Date:    date,
			DayName: date.Weekday().String(),
			Week:    calendar.SalesWeekOf(date),
			Financial: map[string]float64{
				model.MetricGrossBefore:    1100,
				model.MetricTotalDiscounts: 100,
				model.MetricGrossAfter:     1000,
			},
			Tender: map[string]float64{model.TenderCreditCard: 500},
		}
	}
	slot := func(d int, label string, sales, txns float64) *model.SlotRecord {
		date := time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
		return &model.SlotRecord{
			DateRaw:      date.Format("2006-01-02"),
			Date:         date,
			DayName:      date.Weekday().String(),
			Week:         calendar.SalesWeekOf(date),
			Slot:         label,
			Sales:        sales,
			Transactions: txns,
		}
	}

	result := &loader.Result{
		LoadID:     "test-load",
		Path:       "/tmp/sales.xlsx",
		ContentKey: "fixture",
		LoadedAt:   time.Now(),
		Daily:      &model.DailyTable{Rows: []*model.DailyRecord{day(8), day(9)}},
		Slots: &model.SlotTable{Rows: []*model.SlotRecord{
			slot(8, "11:00 AM - 12:00 PM", 300, 10),
			slot(8, "12:00 PM - 1:00 PM", 700, 25),
			slot(9, "11:00 AM - 12:00 PM", 500, 20),
		}},
		SheetCount: 2,
	}
	session.SetCurrent(result)
	return result
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStatus_BeforeAndAfterLoad(t *testing.T) {
	router, session := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Loaded {
		t.Fatalf("fresh session must report loaded=false")
	}

	loadFixture(session)
	w = doJSON(t, router, http.MethodGet, "/api/status", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Loaded || resp.DayCount != 2 || resp.SlotCount != 3 {
		t.Fatalf("loaded status: %+v", resp)
	}
}

func TestDerivedViews_RequireLoadedData(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/api/summary", "/api/daily", "/api/weekly", "/api/dayofweek", "/api/commission"} {
		w := doJSON(t, router, http.MethodGet, path, nil)
		if w.Code != http.StatusConflict {
			t.Fatalf("%s: want 409 got %d", path, w.Code)
		}
	}
}

func TestLoadWorkbook_MissingFile(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/workbook/load",
		map[string]string{"path": filepath.Join(t.TempDir(), "missing.xlsx")})
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404 got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetDaySlots(t *testing.T) {
	router, session := newTestRouter(t)
	loadFixture(session)

	w := doJSON(t, router, http.MethodGet, "/api/days/2026-01-08/slots", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200 got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Date           string `json:"date"`
		Classification struct {
			Labeled []struct {
				Slot  string `json:"slot"`
				Label string `json:"label"`
			} `json:"labeled"`
		} `json:"classification"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Date != "2026-01-08" || len(resp.Classification.Labeled) != 2 {
		t.Fatalf("day slots: %s", w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/days/2026-02-01/slots", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown date want 404 got %d", w.Code)
	}
}

func TestOverrides_FlowIntoCommission(t *testing.T) {
	router, session := newTestRouter(t)
	loadFixture(session)

	label := calendar.SalesWeekOf(time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC)).Label()

	w := doJSON(t, router, http.MethodPut, "/api/overrides", map[string]any{
		"weekLabel": label,
		"salesTax":  40.0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("put overrides: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/commission", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("commission: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Rows []struct {
			WeekLabel         string `json:"weekLabel"`
			SalesTaxCollected string `json:"salesTaxCollected"`
			SalesTaxImputed   bool   `json:"salesTaxImputed"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Rows) != 1 {
		t.Fatalf("want 1 commission week got %d", len(resp.Rows))
	}
	if resp.Rows[0].SalesTaxImputed {
		t.Fatalf("override must not be marked imputed")
	}
	if resp.Rows[0].SalesTaxCollected != "40" {
		t.Fatalf("sales tax want 40 got %s", resp.Rows[0].SalesTaxCollected)
	}

	// clear 后回落到推算
	w = doJSON(t, router, http.MethodPut, "/api/overrides", map[string]any{"clear": true})
	if w.Code != http.StatusOK {
		t.Fatalf("clear overrides: %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/api/commission", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Rows[0].SalesTaxImputed {
		t.Fatalf("after clear tax must be imputed again")
	}
}

func TestUpdateConfig_Validation(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPatch, "/api/config", map[string]any{"peakTopPct": 55.0})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range want 400 got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPatch, "/api/config", map[string]any{"peakTopPct": 15.0})
	if w.Code != http.StatusOK {
		t.Fatalf("valid patch: %d %s", w.Code, w.Body.String())
	}
	var cfg config.AnalyticsConfig
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.PeakTopPct != 15 {
		t.Fatalf("peak pct want 15 got %v", cfg.PeakTopPct)
	}
	// 没动的字段保持默认
	if cfg.SlowBottomPct != 20 {
		t.Fatalf("untouched field must keep default, got %v", cfg.SlowBottomPct)
	}
}

func TestExport_DailyCSVDownload(t *testing.T) {
	router, session := newTestRouter(t)
	loadFixture(session)

	w := doJSON(t, router, http.MethodPost, "/api/export", map[string]string{"table": "daily"})
	if w.Code != http.StatusOK {
		t.Fatalf("export: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		DownloadURL string `json:"downloadUrl"`
		FileName    string `json:"fileName"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.FileName != "daily_stats.csv" || resp.DownloadURL == "" {
		t.Fatalf("export response: %+v", resp)
	}

	w = doJSON(t, router, http.MethodGet, resp.DownloadURL, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("download: %d %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "2026-01-08") {
		t.Fatalf("csv payload missing rows: %s", w.Body.String())
	}

	// 一次性令牌：第二次下载失效
	w = doJSON(t, router, http.MethodGet, resp.DownloadURL, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("token must be single-use, got %d", w.Code)
	}
}

func TestExport_UnknownTable(t *testing.T) {
	router, session := newTestRouter(t)
	loadFixture(session)

	w := doJSON(t, router, http.MethodPost, "/api/export", map[string]string{"table": "nope"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400 got %d", w.Code)
	}
}
