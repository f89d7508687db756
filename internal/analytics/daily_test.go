package analytics

import (
	"math"
	"testing"
)

func TestDailyStats(t *testing.T) {
	t.Parallel()

	table := slotTable(
		// 故意把后一天放前面，验证输出按日期升序
		testSlot(9, "11:00 AM - 12:00 PM", 500, 20),
		testSlot(8, "11:00 AM - 12:00 PM", 300, 10),
		testSlot(8, "12:00 PM - 1:00 PM", 700, 25),
	)
	out := DailyStats(table)
	if len(out) != 2 {
		t.Fatalf("want 2 days got %d", len(out))
	}

	first := out[0]
	if first.DateRaw != "2026-01-08" {
		t.Fatalf("output must be sorted by date, first is %q", first.DateRaw)
	}
	if first.Slots != 2 || first.TotalSales != 1000 || first.TotalTxns != 35 {
		t.Fatalf("day totals: %+v", first)
	}
	if first.AvgPerSlot != 500 || first.MaxSlot != 700 || first.MinSlot != 300 {
		t.Fatalf("per-slot stats: %+v", first)
	}

	// 样本标准差 (N-1): sqrt((200^2+200^2)/1) ≈ 282.84
	if first.StdDev == nil || math.Abs(*first.StdDev-282.8427) > 0.001 {
		t.Fatalf("stddev want ~282.84 got %v", first.StdDev)
	}
	if first.CV == nil || math.Abs(*first.CV-0.5657) > 0.001 {
		t.Fatalf("cv want ~0.5657 got %v", first.CV)
	}

	// 只有一个时段的日子没有离散度
	second := out[1]
	if second.StdDev != nil || second.CV != nil {
		t.Fatalf("single-slot day must keep nil stddev/cv: %+v", second)
	}
}

func TestDailyStats_Empty(t *testing.T) {
	t.Parallel()

	out := DailyStats(slotTable())
	if out == nil || len(out) != 0 {
		t.Fatalf("empty table should yield empty (non-nil) result, got %v", out)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	daily := dailyTable(
		testDaily(8, map[string]float64{
			"Gross Sales Before Discounts": 1100,
			"Total Discounts":              100,
			"Gross Sales After Discounts":  1000,
		}, nil),
		testDaily(9, map[string]float64{
			"Gross Sales Before Discounts": 900,
			"Total Discounts":              100,
			"Gross Sales After Discounts":  800,
		}, nil),
	)
	slots := slotTable(
		testSlot(8, "11:00 AM - 12:00 PM", 600, 30),
		testSlot(9, "11:00 AM - 12:00 PM", 400, 20),
	)

	s := Summarize(daily, slots)
	if s.Days != 2 || s.TotalSales != 1000 || s.TotalTransactions != 50 {
		t.Fatalf("summary totals: %+v", s)
	}
	if s.AvgTicket != 20 || s.AvgDailySales != 500 {
		t.Fatalf("summary averages: %+v", s)
	}
	if s.GrossBefore == nil || *s.GrossBefore != 2000 {
		t.Fatalf("gross before want 2000 got %v", s.GrossBefore)
	}
	if s.DiscountRate == nil || *s.DiscountRate != 10 {
		t.Fatalf("discount rate want 10%% got %v", s.DiscountRate)
	}
	// 整列缺失的指标是 nil，不是 0
	if s.SalesNetVAT != nil {
		t.Fatalf("missing metric must stay nil, got %v", s.SalesNetVAT)
	}
}
