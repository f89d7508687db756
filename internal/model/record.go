package model

import (
	"time"

	"salespulse/internal/calendar"
)

// 财务控制段与收款段里约定的规范指标名
// 键名保留报表原文，会计对账时按这些名字查找。
const (
	MetricGrossBefore    = "Gross Sales Before Discounts"
	MetricTotalDiscounts = "Total Discounts"
	MetricGrossAfter     = "Gross Sales After Discounts"
	MetricSalesNetVAT    = "Sales Net VAT"
	MetricSalesTax       = "Sales Tax Collected"
	TenderCreditCard     = "Credit Card"
	TenderCash           = "Cash"
)

// DailyRecord 一个 sheet / 一个营业日的日度记录
type DailyRecord struct {
	Sheet   string    `json:"sheet"`   // sheet 名
	DateRaw string    `json:"dateRaw"` // 表头里的原始日期文本 (缺失时回退为 sheet 名)
	Date    time.Time `json:"date"`    // 解析后的日期；解析失败的记录不会进入汇总表
	DayName string    `json:"dayName"`

	Week calendar.SalesWeek `json:"week"`

	// 财务控制段指标，键是报表原文；缺失的键视为缺数据，不造零。
	Financial map[string]float64 `json:"financial"`
	// 收款方式汇总 (Credit Card / Cash / Sales Tax Collected)
	Tender map[string]float64 `json:"tender"`

	// 由时段表反推的日度合计；该日无时段数据时为 nil
	SlotSalesTotal        *float64 `json:"slotSalesTotal"`
	SlotTransactionsTotal *float64 `json:"slotTransactionsTotal"`
	SlotAvgTicket         *float64 `json:"slotAvgTicket"`
}

// Metric 读取财务指标，缺失返回 (0, false)
func (r *DailyRecord) Metric(name string) (float64, bool) {
	v, ok := r.Financial[name]
	return v, ok
}

// TenderAmount 读取收款金额，缺失返回 0
func (r *DailyRecord) TenderAmount(name string) float64 {
	return r.Tender[name]
}

// WeekLabel 所属销售周标签
func (r *DailyRecord) WeekLabel() string {
	return r.Week.Label()
}

// SlotRecord 一条 (营业日, 时段) 记录
type SlotRecord struct {
	Sheet   string    `json:"sheet"`
	DateRaw string    `json:"dateRaw"`
	Date    time.Time `json:"date"`
	DayName string    `json:"dayName"`

	Week calendar.SalesWeek `json:"week"`

	Slot         string  `json:"slot"` // 原始时段标签，如 "11:00 AM - 11:15 AM"
	Sales        float64 `json:"sales"`
	Transactions float64 `json:"transactions"`
	AvgTicket    float64 `json:"avgTicket"` // 有成交时 = Sales/Transactions，否则 0
}

// WeekLabel 所属销售周标签
func (r *SlotRecord) WeekLabel() string {
	return r.Week.Label()
}

// DailyTable 日度汇总表 (一次加载的不可变快照)
type DailyTable struct {
	Rows []*DailyRecord `json:"rows"`
}

// SlotTable 时段明细表 (一次加载的不可变快照)
type SlotTable struct {
	Rows []*SlotRecord `json:"rows"`
}

// Empty 是否没有任何可用数据
func (t *DailyTable) Empty() bool { return t == nil || len(t.Rows) == 0 }

// Empty 是否没有任何时段数据
func (t *SlotTable) Empty() bool { return t == nil || len(t.Rows) == 0 }

// ByDate 取某个营业日的全部时段行，按 DateRaw 匹配
func (t *SlotTable) ByDate(dateRaw string) []*SlotRecord {
	out := make([]*SlotRecord, 0)
	for _, r := range t.Rows {
		if r.DateRaw == dateRaw {
			out = append(out, r)
		}
	}
	return out
}
