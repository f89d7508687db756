package analytics

import (
	"testing"
)

func TestQuantile_FloorIndex(t *testing.T) {
	t.Parallel()

	values := []float64{100, 10, 50, 30, 90, 70, 20, 80, 40, 60} // 10..100 乱序
	if got := Quantile(values, 0.9); got != 90 {
		t.Fatalf("q=0.9 want 90 got %v", got)
	}
	if got := Quantile(values, 0.2); got != 20 {
		t.Fatalf("q=0.2 want 20 got %v", got)
	}
	if got := Quantile(values, 0); got != 10 {
		t.Fatalf("q=0 want min got %v", got)
	}
	if got := Quantile(values, 1); got != 100 {
		t.Fatalf("q=1 want max got %v", got)
	}
	if got := Quantile(nil, 0.5); got != 0 {
		t.Fatalf("empty input want 0 got %v", got)
	}
	// 输入不被排序破坏
	if values[0] != 100 || values[1] != 10 {
		t.Fatalf("input slice must not be mutated: %v", values)
	}
}

func TestClassifySlots_TopAndBottom(t *testing.T) {
	t.Parallel()

	rows := slotTable(
		testSlot(8, "11:00 AM - 12:00 PM", 10, 1),
		testSlot(8, "12:00 PM - 1:00 PM", 20, 2),
		testSlot(8, "1:00 PM - 2:00 PM", 30, 3),
		testSlot(8, "2:00 PM - 3:00 PM", 40, 4),
		testSlot(8, "3:00 PM - 4:00 PM", 50, 5),
		testSlot(8, "4:00 PM - 5:00 PM", 60, 6),
		testSlot(8, "5:00 PM - 6:00 PM", 70, 7),
		testSlot(8, "6:00 PM - 7:00 PM", 80, 8),
		testSlot(8, "7:00 PM - 8:00 PM", 90, 9),
		testSlot(8, "8:00 PM - 9:00 PM", 100, 10),
	).Rows

	result := ClassifySlots(rows, 0.10, 0.20)

	if result.PeakThreshold != 90 || result.SlowThreshold != 20 {
		t.Fatalf("thresholds want 90/20 got %v/%v", result.PeakThreshold, result.SlowThreshold)
	}

	// 忙时段按销售额降序
	if len(result.Peaks) != 2 || result.Peaks[0].Sales != 100 || result.Peaks[1].Sales != 90 {
		t.Fatalf("peaks want [100 90] got %+v", result.Peaks)
	}
	// 闲时段按销售额升序
	if len(result.Slows) != 2 || result.Slows[0].Sales != 10 || result.Slows[1].Sales != 20 {
		t.Fatalf("slows want [10 20] got %+v", result.Slows)
	}

	// 全量清单按时刻排序且标签正确
	if len(result.Labeled) != 10 {
		t.Fatalf("labeled want 10 got %d", len(result.Labeled))
	}
	if result.Labeled[0].Slot != "11:00 AM - 12:00 PM" || result.Labeled[0].Label != LabelSlow {
		t.Fatalf("first labeled: %+v", result.Labeled[0])
	}
	if result.Labeled[9].Label != LabelPeak {
		t.Fatalf("last labeled: %+v", result.Labeled[9])
	}
	if result.Labeled[4].Label != LabelNormal {
		t.Fatalf("middle labeled: %+v", result.Labeled[4])
	}
}

func TestClassifySlots_SingleSlotAppearsInBothLists(t *testing.T) {
	t.Parallel()

	rows := slotTable(testSlot(8, "11:00 AM - 12:00 PM", 42, 3)).Rows
	result := ClassifySlots(rows, 0.10, 0.20)

	// 阈值重合时同一时段同时满足两个不等式，两个清单各自保留
	if len(result.Peaks) != 1 || len(result.Slows) != 1 {
		t.Fatalf("single slot should satisfy both thresholds: peaks=%d slows=%d", len(result.Peaks), len(result.Slows))
	}
}

func TestClassifySlots_Empty(t *testing.T) {
	t.Parallel()

	result := ClassifySlots(nil, 0.10, 0.20)
	if result.Peaks == nil || result.Slows == nil || result.Labeled == nil {
		t.Fatalf("empty input should yield empty (non-nil) lists")
	}
	if len(result.Labeled) != 0 {
		t.Fatalf("labeled should be empty, got %d", len(result.Labeled))
	}
}

func TestAverageBySlot(t *testing.T) {
	t.Parallel()

	table := slotTable(
		testSlot(8, "12:00 PM - 1:00 PM", 100, 10),
		testSlot(8, "11:00 AM - 12:00 PM", 50, 5),
		testSlot(9, "12:00 PM - 1:00 PM", 200, 20),
	)
	out := AverageBySlot(table)
	if len(out) != 2 {
		t.Fatalf("want 2 slot groups got %d", len(out))
	}
	// 按时刻排序
	if out[0].Slot != "11:00 AM - 12:00 PM" {
		t.Fatalf("first slot want 11:00 AM got %q", out[0].Slot)
	}
	noon := out[1]
	if noon.AvgSales != 150 || noon.AvgTransactions != 15 || noon.Days != 2 {
		t.Fatalf("noon averages: %+v", noon)
	}
}
