package calendar

import (
	"strings"
	"time"
)

// ClockTime 一天内的时刻 (不含日期)
type ClockTime struct {
	Hour   int
	Minute int
}

// 时段标签里出现过的两种时刻格式: "11:45:00AM" 和 "11:45 AM"
var clockLayouts = []string{
	"3:04:05PM",
	"3:04 PM",
	"3:04PM",
}

// ParseClock 解析单个时刻字符串
// "Total" 等非时刻文本返回 ok=false
func ParseClock(s string) (ClockTime, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ClockTime{}, false
	}
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, strings.ToUpper(s))
		if err == nil {
			return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, true
		}
	}
	return ClockTime{}, false
}

// ParseClockColumn 按列解析时刻
// 先用带秒格式解析整列；若整列都失败，再退回不带秒的格式。
// 返回值与输入等长，失败位置 ok=false。
func ParseClockColumn(values []string) ([]ClockTime, []bool) {
	parseAll := func(layout string) ([]ClockTime, []bool, int) {
		times := make([]ClockTime, len(values))
		oks := make([]bool, len(values))
		n := 0
		for i, v := range values {
			t, err := time.Parse(layout, strings.ToUpper(strings.TrimSpace(v)))
			if err != nil {
				continue
			}
			times[i] = ClockTime{Hour: t.Hour(), Minute: t.Minute()}
			oks[i] = true
			n++
		}
		return times, oks, n
	}

	times, oks, n := parseAll("3:04:05PM")
	if n > 0 {
		return times, oks
	}
	times, oks, _ = parseAll("3:04 PM")
	return times, oks
}

// SlotSortKey 时段标签的排序键
// 取 "11:00 AM - 11:15 AM" 中 " - " 前的起始时刻；解析失败排到最后。
func SlotSortKey(label string) (hour, minute int) {
	t, ok := ParseClock(slotStart(label))
	if !ok {
		return 999, 999
	}
	return t.Hour, t.Minute
}

// SlotSortKeys 一组时段标签的排序键 (分钟数)
// 起始时刻按列解析，享受整列的带秒/不带秒回退；
// 列内解析不出来的标签再单独试一次，仍失败的排最后。
func SlotSortKeys(labels []string) []int {
	starts := make([]string, len(labels))
	for i, l := range labels {
		starts[i] = slotStart(l)
	}
	times, oks := ParseClockColumn(starts)

	out := make([]int, len(labels))
	for i := range labels {
		if !oks[i] {
			h, m := SlotSortKey(labels[i])
			out[i] = h*60 + m
			continue
		}
		out[i] = times[i].Hour*60 + times[i].Minute
	}
	return out
}

func slotStart(label string) string {
	if idx := strings.Index(label, " - "); idx >= 0 {
		return label[:idx]
	}
	return label
}
