package analytics

import (
	"sort"

	"salespulse/internal/calendar"
	"salespulse/internal/model"
)

// SlotLabel 时段的忙闲标签
type SlotLabel string

const (
	LabelPeak   SlotLabel = "Peak"
	LabelSlow   SlotLabel = "Slow"
	LabelNormal SlotLabel = "Normal"
)

// LabeledSlot 打上标签的时段行
type LabeledSlot struct {
	Slot         string    `json:"slot"`
	Sales        float64   `json:"sales"`
	Transactions float64   `json:"transactions"`
	AvgTicket    float64   `json:"avgTicket"`
	Label        SlotLabel `json:"label"`
}

// DayClassification 单日时段的忙闲分类结果
type DayClassification struct {
	DateRaw       string        `json:"dateRaw"`
	PeakThreshold float64       `json:"peakThreshold"`
	SlowThreshold float64       `json:"slowThreshold"`
	Peaks         []LabeledSlot `json:"peaks"`   // 销售额 ≥ 高阈值，降序
	Slows         []LabeledSlot `json:"slows"`   // 销售额 ≤ 低阈值，升序
	Labeled       []LabeledSlot `json:"labeled"` // 全部时段，按时刻排序
}

// Quantile 样本分位数 (下取整法)
// 排序后取 v[floor((n-1)q)]。阈值文档给出的忙/闲集合按该口径才能复现，
// 线性插值法会把 10..100 的 90 分位推到 91 而漏掉 90。
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted)-1) * q)
	return sorted[idx]
}

// ClassifySlots 对某一天的时段做忙闲分类
// topPct/bottomPct 是比例 (0.10 表示前 10%)。
// 时段极少、两个阈值重合时，同一时段可能同时出现在忙和闲两个清单里；
// 两个清单按各自的不等式独立判定，不做去重。
func ClassifySlots(rows []*model.SlotRecord, topPct, bottomPct float64) *DayClassification {
	result := &DayClassification{
		Peaks:   []LabeledSlot{},
		Slows:   []LabeledSlot{},
		Labeled: []LabeledSlot{},
	}
	if len(rows) == 0 {
		return result
	}
	result.DateRaw = rows[0].DateRaw

	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.Sales
	}
	result.PeakThreshold = Quantile(values, 1-topPct)
	result.SlowThreshold = Quantile(values, bottomPct)

	toLabeled := func(r *model.SlotRecord, label SlotLabel) LabeledSlot {
		return LabeledSlot{
			Slot:         r.Slot,
			Sales:        r.Sales,
			Transactions: r.Transactions,
			AvgTicket:    r.AvgTicket,
			Label:        label,
		}
	}

	// 按时刻排升序，解析失败的标签排最后 (保持原序)
	chrono := make([]*model.SlotRecord, len(rows))
	copy(chrono, rows)
	labels := make([]string, len(chrono))
	for i, r := range chrono {
		labels[i] = r.Slot
	}
	keys := slotOrderKeys(labels)
	sort.SliceStable(chrono, func(i, j int) bool {
		return keys[chrono[i].Slot] < keys[chrono[j].Slot]
	})

	for _, r := range chrono {
		label := LabelNormal
		switch {
		case r.Sales >= result.PeakThreshold:
			label = LabelPeak
		case r.Sales <= result.SlowThreshold:
			label = LabelSlow
		}
		result.Labeled = append(result.Labeled, toLabeled(r, label))

		if r.Sales >= result.PeakThreshold {
			result.Peaks = append(result.Peaks, toLabeled(r, LabelPeak))
		}
		if r.Sales <= result.SlowThreshold {
			result.Slows = append(result.Slows, toLabeled(r, LabelSlow))
		}
	}

	sort.SliceStable(result.Peaks, func(i, j int) bool { return result.Peaks[i].Sales > result.Peaks[j].Sales })
	sort.SliceStable(result.Slows, func(i, j int) bool { return result.Slows[i].Sales < result.Slows[j].Sales })

	return result
}

// slotOrderKeys 标签到时刻排序键的映射，整组一起解析以便格式回退按列生效
func slotOrderKeys(labels []string) map[string]int {
	keys := calendar.SlotSortKeys(labels)
	m := make(map[string]int, len(labels))
	for i, l := range labels {
		m[l] = keys[i]
	}
	return m
}

// SlotAverage 某个时段标签跨天的平均表现
type SlotAverage struct {
	Slot            string  `json:"slot"`
	AvgSales        float64 `json:"avgSales"`
	AvgTransactions float64 `json:"avgTransactions"`
	Days            int     `json:"days"`
}

// AverageBySlot 跨天按时段标签求平均，按时刻排序
func AverageBySlot(slots *model.SlotTable) []*SlotAverage {
	if slots.Empty() {
		return []*SlotAverage{}
	}

	type acc struct {
		sales float64
		txns  float64
		n     int
		days  map[string]bool
	}
	bySlot := make(map[string]*acc)
	order := make([]string, 0)

	for _, r := range slots.Rows {
		a, ok := bySlot[r.Slot]
		if !ok {
			a = &acc{days: make(map[string]bool)}
			bySlot[r.Slot] = a
			order = append(order, r.Slot)
		}
		a.sales += r.Sales
		a.txns += r.Transactions
		a.n++
		a.days[r.DateRaw] = true
	}

	out := make([]*SlotAverage, 0, len(bySlot))
	for _, slot := range order {
		a := bySlot[slot]
		out = append(out, &SlotAverage{
			Slot:            slot,
			AvgSales:        a.sales / float64(a.n),
			AvgTransactions: a.txns / float64(a.n),
			Days:            len(a.days),
		})
	}

	labels := make([]string, len(out))
	for i, a := range out {
		labels[i] = a.Slot
	}
	keys := slotOrderKeys(labels)
	sort.SliceStable(out, func(i, j int) bool {
		return keys[out[i].Slot] < keys[out[j].Slot]
	})
	return out
}
