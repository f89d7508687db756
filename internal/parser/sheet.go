package parser

import (
	"salespulse/internal/model"
)

// ParseSheet 解析一个 sheet，拼出一条日度记录和若干时段记录
// rows 是该 sheet 的完整单元格网格 (excelize GetRows 的结果)。
// 日期缺失时回退用 sheet 名充当日期文本，能否当日期用由上层加载器裁决；
// 时段表缺失不影响日度记录，财务段可能独立存在。
func ParseSheet(sheetName string, rows [][]string) (*model.DailyRecord, []*model.SlotRecord) {
	header := extractHeader(rows)

	dateRaw := header.DateRaw
	if dateRaw == "" {
		dateRaw = sheetName
	}

	daily := &model.DailyRecord{
		Sheet:     sheetName,
		DateRaw:   dateRaw,
		DayName:   header.DayName,
		Financial: extractFinancial(rows, model.MetricSalesTax),
		Tender:    extractTender(rows, model.TenderCreditCard, model.TenderCash),
	}

	slotRows := extractSlotTable(rows)
	slots := make([]*model.SlotRecord, 0, len(slotRows))
	for _, sr := range slotRows {
		slots = append(slots, &model.SlotRecord{
			Sheet:        sheetName,
			DateRaw:      dateRaw,
			DayName:      header.DayName,
			Slot:         sr.Slot,
			Sales:        sr.Sales,
			Transactions: sr.Transactions,
			AvgTicket:    sr.AvgTicket,
		})
	}

	return daily, slots
}
