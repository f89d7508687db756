package analytics

import "salespulse/internal/model"

// Summary 全局经营概览
type Summary struct {
	Days              int     `json:"days"`
	TotalSales        float64 `json:"totalSales"`
	TotalTransactions float64 `json:"totalTransactions"`
	AvgTicket         float64 `json:"avgTicket"`
	AvgDailySales     float64 `json:"avgDailySales"`

	// 财务控制段合计；整列缺失时为 nil，不显示成 0
	GrossBefore    *float64 `json:"grossBefore"`
	TotalDiscounts *float64 `json:"totalDiscounts"`
	GrossAfter     *float64 `json:"grossAfter"`
	SalesNetVAT    *float64 `json:"salesNetVAT"`
	DiscountRate   *float64 `json:"discountRate"`
}

// sumMetric 跨日累加某个财务指标；所有日子都没有该键时返回 nil
func sumMetric(daily *model.DailyTable, name string) *float64 {
	var total float64
	seen := false
	for _, r := range daily.Rows {
		if v, ok := r.Metric(name); ok {
			total += v
			seen = true
		}
	}
	if !seen {
		return nil
	}
	return &total
}

// Summarize 计算全局概览
func Summarize(daily *model.DailyTable, slots *model.SlotTable) *Summary {
	s := &Summary{}

	seen := make(map[string]bool)
	for _, r := range daily.Rows {
		seen[r.DateRaw] = true
	}
	s.Days = len(seen)

	for _, r := range slots.Rows {
		s.TotalSales += r.Sales
		s.TotalTransactions += r.Transactions
	}
	if s.TotalTransactions > 0 {
		s.AvgTicket = s.TotalSales / s.TotalTransactions
	}
	if s.Days > 0 {
		s.AvgDailySales = s.TotalSales / float64(s.Days)
	}

	s.GrossBefore = sumMetric(daily, model.MetricGrossBefore)
	s.TotalDiscounts = sumMetric(daily, model.MetricTotalDiscounts)
	s.GrossAfter = sumMetric(daily, model.MetricGrossAfter)
	s.SalesNetVAT = sumMetric(daily, model.MetricSalesNetVAT)

	if s.GrossBefore != nil && *s.GrossBefore != 0 && s.TotalDiscounts != nil {
		v := *s.TotalDiscounts / *s.GrossBefore * 100
		s.DiscountRate = &v
	}

	return s
}
