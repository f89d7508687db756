package calendar

import (
	"fmt"
	"time"
)

// SalesWeek 销售周 (周四 ~ 次周三)
// 零售口径不用自然周：每周从周四 00:00 起算，到下周三止。
type SalesWeek struct {
	Year   int       `json:"year"`
	Number int       `json:"number"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// Label 周标签，如 "W05 (Jan 30)"
func (w SalesWeek) Label() string {
	return fmt.Sprintf("W%02d (%s)", w.Number, w.Start.Format("Jan 02"))
}

// pythonWeekday 周一=0 ... 周日=6
func pythonWeekday(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

// thursdayOnOrBefore 返回 d 当周 (含 d) 的周四
func thursdayOnOrBefore(d time.Time) time.Time {
	daysSinceThursday := (pythonWeekday(d) - 3 + 7) % 7
	return d.AddDate(0, 0, -daysSinceThursday)
}

// SalesWeekOf 计算日期所属的销售周
// 周序号以周起始年份元旦所在周的周四为锚点；早于首个锚点的日期归入上一年第 52 周。
// 跨年正确性：12 月末的日期可能落入次年第 1 周，1 月初的日期可能落入上一年末尾周。
func SalesWeekOf(d time.Time) SalesWeek {
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := thursdayOnOrBefore(d)

	year := weekStart.Year()
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	firstThursday := thursdayOnOrBefore(jan1)

	var number int
	if weekStart.Before(firstThursday) {
		year--
		number = 52
	} else {
		number = int(weekStart.Sub(firstThursday).Hours()/24)/7 + 1
	}

	return SalesWeek{
		Year:   year,
		Number: number,
		Start:  weekStart,
		End:    weekStart.AddDate(0, 0, 6),
	}
}

// dayOrder 星期的固定展示顺序；未识别的名字排最后
var dayOrder = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
	"Saturday":  5,
	"Sunday":    6,
}

// DayNameOrder 星期名称的排序序号
func DayNameOrder(name string) int {
	if idx, ok := dayOrder[name]; ok {
		return idx
	}
	return 999
}
