package exporter

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"salespulse/internal/analytics"
	"salespulse/internal/model"
)

// 各输出表的 CSV 序列化。列集合与内存表一一对应，
// 空值 (nil) 输出空单元格而不是 0。

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fmtPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return fmtFloat(*v)
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DailyCSV 日度表
func DailyCSV(daily *model.DailyTable) ([]byte, error) {
	header := []string{
		"Date", "Day", "Week",
		"Gross Sales Before Discounts", "Total Discounts", "Gross Sales After Discounts",
		"Credit Card", "Cash",
		"Slot Sales Total", "Slot Transactions Total", "Avg Ticket",
	}
	rows := make([][]string, 0, len(daily.Rows))
	for _, r := range daily.Rows {
		metric := func(name string) string {
			if v, ok := r.Metric(name); ok {
				return fmtFloat(v)
			}
			return ""
		}
		rows = append(rows, []string{
			r.Date.Format("2006-01-02"),
			r.DayName,
			r.WeekLabel(),
			metric(model.MetricGrossBefore),
			metric(model.MetricTotalDiscounts),
			metric(model.MetricGrossAfter),
			fmtFloat(r.TenderAmount(model.TenderCreditCard)),
			fmtFloat(r.TenderAmount(model.TenderCash)),
			fmtPtr(r.SlotSalesTotal),
			fmtPtr(r.SlotTransactionsTotal),
			fmtPtr(r.SlotAvgTicket),
		})
	}
	return writeCSV(header, rows)
}

// SlotsCSV 时段明细表
func SlotsCSV(slots *model.SlotTable) ([]byte, error) {
	header := []string{"Date", "Day", "Week", "Time Slot", "Sales", "Transactions", "Avg Ticket"}
	rows := make([][]string, 0, len(slots.Rows))
	for _, r := range slots.Rows {
		rows = append(rows, []string{
			r.Date.Format("2006-01-02"),
			r.DayName,
			r.WeekLabel(),
			r.Slot,
			fmtFloat(r.Sales),
			fmtFloat(r.Transactions),
			fmtFloat(r.AvgTicket),
		})
	}
	return writeCSV(header, rows)
}

// WeeklyCSV 周度汇总表
func WeeklyCSV(stats []*analytics.WeeklyStat) ([]byte, error) {
	header := []string{
		"Week", "Week Start", "Days", "Sales", "Transactions",
		"Gross Before", "Discounts", "Discount Rate %",
		"Avg Ticket", "Avg Daily Sales", "WoW Sales Growth %", "WoW Txn Growth %",
	}
	rows := make([][]string, 0, len(stats))
	for _, w := range stats {
		rows = append(rows, []string{
			w.WeekLabel,
			w.WeekStart.Format("2006-01-02"),
			strconv.Itoa(w.DaysInWeek),
			fmtFloat(w.Sales),
			fmtFloat(w.Transactions),
			fmtFloat(w.GrossBefore),
			fmtFloat(w.Discounts),
			fmtPtr(w.DiscountRate),
			fmtPtr(w.AvgTicket),
			fmtFloat(w.AvgDailySales),
			fmtPtr(w.WoWSalesGrowth),
			fmtPtr(w.WoWTxnGrowth),
		})
	}
	return writeCSV(header, rows)
}

// DayOfWeekCSV 星期对比表
func DayOfWeekCSV(stats []*analytics.DayOfWeekStat) ([]byte, error) {
	header := []string{
		"Day", "Num Days", "Total Sales", "Total Transactions",
		"Avg Sales/Day", "Avg Discounts/Day", "Avg Ticket", "Discount Rate %",
	}
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.DayName,
			strconv.Itoa(s.NumDays),
			fmtFloat(s.TotalSales),
			fmtFloat(s.TotalTransactions),
			fmtFloat(s.AvgSalesPerDay),
			fmtFloat(s.AvgDiscountsPerDay),
			fmtPtr(s.AvgTicket),
			fmtPtr(s.DiscountRate),
		})
	}
	return writeCSV(header, rows)
}

// CommissionCSV 周度分成表
func CommissionCSV(records []*model.WeeklyCommissionRecord) ([]byte, error) {
	header := []string{
		"Week", "Gross After Discounts", "Total Discounts", "Credit Card Sales",
		"Cash Sales", "Sales Tax Collected", "Tax Imputed",
		"Calculated Gross Before", "CC Fee", "Total Commissionable",
		"Party A Commission", "Party A Net", "Party B Commission", "Party B Net",
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.WeekLabel,
			r.GrossAfterDiscounts.String(),
			r.TotalDiscounts.String(),
			r.CreditCardSales.String(),
			r.CashSales.String(),
			r.SalesTaxCollected.String(),
			strconv.FormatBool(r.SalesTaxImputed),
			r.CalculatedGrossBefore.String(),
			r.CCFee.String(),
			r.TotalCommissionable.String(),
			r.PartyACommission.String(),
			r.PartyANet.String(),
			r.PartyBCommission.String(),
			r.PartyBNet.String(),
		})
	}
	return writeCSV(header, rows)
}

// DaySlotsCSV 单日时段明细 (带忙闲标签)
func DaySlotsCSV(rows []analytics.LabeledSlot) ([]byte, error) {
	header := []string{"Time Slot", "Sales", "Transactions", "Avg Ticket", "Label"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Slot,
			fmtFloat(r.Sales),
			fmtFloat(r.Transactions),
			fmtFloat(r.AvgTicket),
			string(r.Label),
		})
	}
	return writeCSV(header, out)
}
