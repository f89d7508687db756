package analytics

import (
	"math"
	"sort"
	"time"

	"salespulse/internal/model"
)

// DailyStat 单个营业日的时段统计
type DailyStat struct {
	DateRaw   string    `json:"dateRaw"`
	Date      time.Time `json:"date"`
	DayName   string    `json:"dayName"`
	WeekLabel string    `json:"weekLabel"`

	Slots      int      `json:"slots"`
	TotalSales float64  `json:"totalSales"`
	TotalTxns  float64  `json:"totalTxns"`
	AvgPerSlot float64  `json:"avgPerSlot"`
	MaxSlot    float64  `json:"maxSlot"`
	MinSlot    float64  `json:"minSlot"`
	StdDev     *float64 `json:"stdDev"` // 样本标准差 (N-1)；不足 2 个时段时为 nil
	CV         *float64 `json:"cv"`     // 变异系数 std/mean；均值为 0 时为 nil
}

// DailyStats 按营业日汇总时段表
// 输入不被修改；无时段数据的日期不出现在结果里。
func DailyStats(slots *model.SlotTable) []*DailyStat {
	if slots.Empty() {
		return []*DailyStat{}
	}

	groups := make(map[string][]*model.SlotRecord)
	order := make([]string, 0)
	for _, r := range slots.Rows {
		if _, ok := groups[r.DateRaw]; !ok {
			order = append(order, r.DateRaw)
		}
		groups[r.DateRaw] = append(groups[r.DateRaw], r)
	}

	out := make([]*DailyStat, 0, len(groups))
	for _, dateRaw := range order {
		rows := groups[dateRaw]

		stat := &DailyStat{
			DateRaw:   dateRaw,
			Date:      rows[0].Date,
			DayName:   rows[0].DayName,
			WeekLabel: rows[0].WeekLabel(),
			Slots:     len(rows),
			MaxSlot:   math.Inf(-1),
			MinSlot:   math.Inf(1),
		}
		for _, r := range rows {
			stat.TotalSales += r.Sales
			stat.TotalTxns += r.Transactions
			if r.Sales > stat.MaxSlot {
				stat.MaxSlot = r.Sales
			}
			if r.Sales < stat.MinSlot {
				stat.MinSlot = r.Sales
			}
		}
		stat.AvgPerSlot = stat.TotalSales / float64(stat.Slots)

		if stat.Slots >= 2 {
			var ss float64
			for _, r := range rows {
				d := r.Sales - stat.AvgPerSlot
				ss += d * d
			}
			std := math.Sqrt(ss / float64(stat.Slots-1))
			stat.StdDev = &std
			if stat.AvgPerSlot != 0 {
				cv := std / stat.AvgPerSlot
				stat.CV = &cv
			}
		}

		out = append(out, stat)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
