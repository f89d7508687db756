package analytics

import (
	"time"

	"salespulse/internal/calendar"
	"salespulse/internal/model"
)

// 测试数据构造器：日期一律用 2026 年 1 月 (2026-01-01 恰好是周四)

func testDate(day int) time.Time {
	return time.Date(2026, time.January, day, 0, 0, 0, 0, time.UTC)
}

func testSlot(day int, slot string, sales, txns float64) *model.SlotRecord {
	d := testDate(day)
	avg := 0.0
	if txns > 0 {
		avg = sales / txns
	}
	return &model.SlotRecord{
		Sheet:        d.Format("Jan 02"),
		DateRaw:      d.Format("2006-01-02"),
		Date:         d,
		DayName:      d.Weekday().String(),
		Week:         calendar.SalesWeekOf(d),
		Slot:         slot,
		Sales:        sales,
		Transactions: txns,
		AvgTicket:    avg,
	}
}

func testDaily(day int, financial, tender map[string]float64) *model.DailyRecord {
	d := testDate(day)
	return &model.DailyRecord{
		Sheet:     d.Format("Jan 02"),
		DateRaw:   d.Format("2006-01-02"),
		Date:      d,
		DayName:   d.Weekday().String(),
		Week:      calendar.SalesWeekOf(d),
		Financial: financial,
		Tender:    tender,
	}
}

func slotTable(rows ...*model.SlotRecord) *model.SlotTable {
	return &model.SlotTable{Rows: rows}
}

func dailyTable(rows ...*model.DailyRecord) *model.DailyTable {
	return &model.DailyTable{Rows: rows}
}
