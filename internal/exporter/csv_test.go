package exporter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"salespulse/internal/analytics"
	"salespulse/internal/calendar"
	"salespulse/internal/model"
)

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	return records
}

func TestDailyCSV(t *testing.T) {
	t.Parallel()

	d := time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC)
	sales := 1000.0
	table := &model.DailyTable{Rows: []*model.DailyRecord{
		{
			DateRaw: "2026-01-08",
			Date:    d,
			DayName: "Thursday",
			Week:    calendar.SalesWeekOf(d),
			Financial: map[string]float64{
				model.MetricGrossBefore: 1100,
			},
			Tender:         map[string]float64{model.TenderCreditCard: 800},
			SlotSalesTotal: &sales,
		},
	}}

	data, err := DailyCSV(table)
	records := parseCSV(t, mustBytes(t, data, err))
	if len(records) != 2 {
		t.Fatalf("want header + 1 row got %d", len(records))
	}
	row := records[1]
	if row[0] != "2026-01-08" || row[1] != "Thursday" {
		t.Fatalf("row identity: %v", row)
	}
	if row[3] != "1100" {
		t.Fatalf("gross before want 1100 got %q", row[3])
	}
	// 缺失的指标输出空单元格，不是 0
	if row[4] != "" {
		t.Fatalf("missing discounts must be empty cell, got %q", row[4])
	}
	if row[8] != "1000" {
		t.Fatalf("slot sales total want 1000 got %q", row[8])
	}
	// 该日没有时段笔数，保持空
	if row[9] != "" {
		t.Fatalf("nil slot txns must be empty cell, got %q", row[9])
	}
}

func TestWeeklyCSV_NilGrowthIsEmpty(t *testing.T) {
	t.Parallel()

	stats := []*analytics.WeeklyStat{{
		WeekLabel: "W02 (Jan 08)",
		WeekStart: time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC),
		Sales:     1000,
	}}
	data, err := WeeklyCSV(stats)
	records := parseCSV(t, mustBytes(t, data, err))
	row := records[1]
	if row[0] != "W02 (Jan 08)" {
		t.Fatalf("week label: %v", row)
	}
	// 第一周的环比是 nil，单元格留空
	if row[10] != "" || row[11] != "" {
		t.Fatalf("nil growth must be empty cells: %v", row)
	}
}

func TestCommissionCSV(t *testing.T) {
	t.Parallel()

	records := []*model.WeeklyCommissionRecord{{
		WeekLabel:           "W02 (Jan 08)",
		GrossAfterDiscounts: decimal.NewFromInt(1000),
		TotalDiscounts:      decimal.NewFromInt(100),
		CreditCardSales:     decimal.NewFromInt(500),
		CashSales:           decimal.Zero,
		SalesTaxCollected:   decimal.NewFromInt(40),
		SalesTaxImputed:     true,
		PartyBNet:           decimal.NewFromInt(908),
	}}
	data, err := CommissionCSV(records)
	rows := parseCSV(t, mustBytes(t, data, err))
	row := rows[1]
	if row[1] != "1000" || row[5] != "40" || row[6] != "true" {
		t.Fatalf("commission row: %v", row)
	}
	if row[13] != "908" {
		t.Fatalf("party B net want 908 got %q", row[13])
	}
}

func TestCommissionWorkbook(t *testing.T) {
	t.Parallel()

	records := []*model.WeeklyCommissionRecord{{
		WeekLabel:           "W02 (Jan 08)",
		GrossAfterDiscounts: decimal.NewFromInt(1000),
		PartyBNet:           decimal.NewFromInt(908),
	}}
	weekly := []*analytics.WeeklyStat{{WeekLabel: "W02 (Jan 08)", DaysInWeek: 2, Sales: 1000}}

	f, err := CommissionWorkbook(records, weekly)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Commission" || sheets[1] != "Weekly" {
		t.Fatalf("sheets: %v", sheets)
	}

	v, err := f.GetCellValue("Commission", "A2")
	if err != nil || v != "W02 (Jan 08)" {
		t.Fatalf("A2 want week label got %q (%v)", v, err)
	}
	v, _ = f.GetCellValue("Commission", "L2")
	if !strings.HasPrefix(v, "908") {
		t.Fatalf("L2 want 908 got %q", v)
	}
	v, _ = f.GetCellValue("Weekly", "B2")
	if v != "2" {
		t.Fatalf("weekly days want 2 got %q", v)
	}
}

func mustBytes(t *testing.T, data []byte, err error) []byte {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return data
}
