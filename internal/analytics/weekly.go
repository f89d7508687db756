package analytics

import (
	"sort"
	"time"

	"salespulse/internal/model"
)

// WeeklyStat 一个销售周的汇总
type WeeklyStat struct {
	WeekLabel string    `json:"weekLabel"`
	WeekYear  int       `json:"weekYear"`
	WeekNum   int       `json:"weekNum"`
	WeekStart time.Time `json:"weekStart"`

	Sales        float64 `json:"sales"`
	Transactions float64 `json:"transactions"`
	DaysInWeek   int     `json:"daysInWeek"`

	GrossBefore float64 `json:"grossBefore"`
	Discounts   float64 `json:"discounts"`
	GrossAfter  float64 `json:"grossAfter"`

	AvgTicket     *float64 `json:"avgTicket"` // 无成交时 nil
	AvgDailySales float64  `json:"avgDailySales"`
	DiscountRate  *float64 `json:"discountRate"` // Discounts/GrossBefore×100；分母为 0 时 nil

	// 环比增速 (%)；序列里的第一周没有上一周，恒为 nil
	WoWSalesGrowth *float64 `json:"wowSalesGrowth"`
	WoWTxnGrowth   *float64 `json:"wowTxnGrowth"`
}

// WeeklyStats 按销售周汇总两张规范表
// 时段表贡献销售额/笔数/营业天数，日度表贡献财务控制指标，按周标签合并。
func WeeklyStats(daily *model.DailyTable, slots *model.SlotTable) []*WeeklyStat {
	if slots.Empty() {
		return []*WeeklyStat{}
	}

	byLabel := make(map[string]*WeeklyStat)
	daysSeen := make(map[string]map[string]bool)

	for _, r := range slots.Rows {
		label := r.WeekLabel()
		w, ok := byLabel[label]
		if !ok {
			w = &WeeklyStat{
				WeekLabel: label,
				WeekYear:  r.Week.Year,
				WeekNum:   r.Week.Number,
				WeekStart: r.Week.Start,
			}
			byLabel[label] = w
			daysSeen[label] = make(map[string]bool)
		}
		w.Sales += r.Sales
		w.Transactions += r.Transactions
		daysSeen[label][r.DateRaw] = true
	}

	for _, r := range daily.Rows {
		w, ok := byLabel[r.WeekLabel()]
		if !ok {
			continue
		}
		if v, ok := r.Metric(model.MetricGrossBefore); ok {
			w.GrossBefore += v
		}
		if v, ok := r.Metric(model.MetricTotalDiscounts); ok {
			w.Discounts += v
		}
		if v, ok := r.Metric(model.MetricGrossAfter); ok {
			w.GrossAfter += v
		}
	}

	out := make([]*WeeklyStat, 0, len(byLabel))
	for label, w := range byLabel {
		w.DaysInWeek = len(daysSeen[label])
		if w.Transactions > 0 {
			v := w.Sales / w.Transactions
			w.AvgTicket = &v
		}
		if w.DaysInWeek > 0 {
			w.AvgDailySales = w.Sales / float64(w.DaysInWeek)
		}
		if w.GrossBefore != 0 {
			v := w.Discounts / w.GrossBefore * 100
			w.DiscountRate = &v
		}
		out = append(out, w)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].WeekStart.Before(out[j].WeekStart) })

	// 环比：第一周保持 nil，不是 0
	for i := 1; i < len(out); i++ {
		prev := out[i-1]
		if prev.Sales != 0 {
			v := (out[i].Sales - prev.Sales) / prev.Sales * 100
			out[i].WoWSalesGrowth = &v
		}
		if prev.Transactions != 0 {
			v := (out[i].Transactions - prev.Transactions) / prev.Transactions * 100
			out[i].WoWTxnGrowth = &v
		}
	}

	return out
}
