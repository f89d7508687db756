package analytics

import (
	"sort"

	"salespulse/internal/calendar"
	"salespulse/internal/model"
)

// DayOfWeekStat 按星期几的横向对比
type DayOfWeekStat struct {
	DayName string `json:"dayName"`
	NumDays int    `json:"numDays"`

	TotalSales        float64 `json:"totalSales"`
	TotalTransactions float64 `json:"totalTransactions"`
	GrossBefore       float64 `json:"grossBefore"`
	Discounts         float64 `json:"discounts"`

	AvgSalesPerDay     float64  `json:"avgSalesPerDay"`
	AvgDiscountsPerDay float64  `json:"avgDiscountsPerDay"`
	AvgTicket          *float64 `json:"avgTicket"`
	DiscountRate       *float64 `json:"discountRate"`
}

// DayOfWeekStats 按星期几汇总
// 固定 Monday..Sunday 顺序输出，认不出来的名字排最后。
func DayOfWeekStats(daily *model.DailyTable, slots *model.SlotTable) []*DayOfWeekStat {
	if slots.Empty() {
		return []*DayOfWeekStat{}
	}

	byDay := make(map[string]*DayOfWeekStat)
	daysSeen := make(map[string]map[string]bool)

	get := func(name string) *DayOfWeekStat {
		s, ok := byDay[name]
		if !ok {
			s = &DayOfWeekStat{DayName: name}
			byDay[name] = s
			daysSeen[name] = make(map[string]bool)
		}
		return s
	}

	for _, r := range slots.Rows {
		s := get(r.DayName)
		s.TotalSales += r.Sales
		s.TotalTransactions += r.Transactions
	}

	for _, r := range daily.Rows {
		s := get(r.DayName)
		if v, ok := r.Metric(model.MetricGrossBefore); ok {
			s.GrossBefore += v
		}
		if v, ok := r.Metric(model.MetricTotalDiscounts); ok {
			s.Discounts += v
		}
		daysSeen[r.DayName][r.DateRaw] = true
	}

	out := make([]*DayOfWeekStat, 0, len(byDay))
	for name, s := range byDay {
		s.NumDays = len(daysSeen[name])
		if s.NumDays > 0 {
			s.AvgSalesPerDay = s.TotalSales / float64(s.NumDays)
			s.AvgDiscountsPerDay = s.Discounts / float64(s.NumDays)
		}
		if s.TotalTransactions > 0 {
			v := s.TotalSales / s.TotalTransactions
			s.AvgTicket = &v
		}
		if s.GrossBefore != 0 {
			v := s.Discounts / s.GrossBefore * 100
			s.DiscountRate = &v
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return calendar.DayNameOrder(out[i].DayName) < calendar.DayNameOrder(out[j].DayName)
	})
	return out
}
