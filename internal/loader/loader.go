package loader

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"salespulse/internal/calendar"
	"salespulse/internal/model"
	"salespulse/internal/parser"
)

// Result 一次工作簿加载的产物
// 两张规范表是不可变快照；相同输入字节必然得到相同结果，
// ContentKey (路径无关的内容哈希) 供缓存层做免重复解析。
type Result struct {
	LoadID     string            `json:"loadId"`
	Path       string            `json:"path"`
	ContentKey string            `json:"contentKey"`
	LoadedAt   time.Time         `json:"loadedAt"`
	Daily      *model.DailyTable `json:"daily"`
	Slots      *model.SlotTable  `json:"slots"`

	SheetCount   int `json:"sheetCount"`
	DroppedDates int `json:"droppedDates"` // 日期解析失败被剔除的天数
}

// 日期文本的候选格式，导出模板和 sheet 名里见过的都在这
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 Jan 2006",
	"02.01.2006",
}

// ParseDate 解析日期文本，失败返回 ok=false
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// HashFile 计算工作簿的内容键 (sha256)，供缓存层先查后解析
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read workbook: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Load 加载整个工作簿并产出两张规范表
// 文件不存在是硬错误；单个 sheet 解析不出来只会让数据变少，不会中断。
func Load(path string, log *logrus.Logger) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sum := sha256.Sum256(data)

	result, err := loadWorkbook(f, log)
	if err != nil {
		return nil, err
	}
	result.LoadID = uuid.New().String()
	result.Path = path
	result.ContentKey = hex.EncodeToString(sum[:])
	result.LoadedAt = time.Now()
	return result, nil
}

// loadWorkbook 按 sheet 顺序跑抽取器并汇总
func loadWorkbook(f *excelize.File, log *logrus.Logger) (*Result, error) {
	sheets := f.GetSheetList()

	dailyRows := make([]*model.DailyRecord, 0, len(sheets))
	slotRows := make([]*model.SlotRecord, 0)
	dropped := 0

	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			log.WithFields(logrus.Fields{"sheet": sheet}).Warnf("读取 sheet 失败，跳过: %v", err)
			continue
		}

		daily, slots := parser.ParseSheet(sheet, rows)

		// 日期必须能解析成真实日期，否则整条记录 (连同其时段行) 剔除
		date, ok := ParseDate(daily.DateRaw)
		if !ok {
			dropped++
			log.WithFields(logrus.Fields{
				"sheet": sheet,
				"date":  daily.DateRaw,
			}).Warn("日期无法解析，剔除该日记录")
			continue
		}

		daily.Date = date
		daily.DayName = dayNameOrDefault(daily.DayName, date)
		daily.Week = calendar.SalesWeekOf(date)
		dailyRows = append(dailyRows, daily)

		for _, s := range slots {
			s.Date = date
			s.DayName = daily.DayName
			s.Week = daily.Week
			slotRows = append(slotRows, s)
		}
	}

	// 日度表按日期升序
	sort.SliceStable(dailyRows, func(i, j int) bool {
		return dailyRows[i].Date.Before(dailyRows[j].Date)
	})

	attachSlotTotals(dailyRows, slotRows)

	return &Result{
		Daily:        &model.DailyTable{Rows: dailyRows},
		Slots:        &model.SlotTable{Rows: slotRows},
		SheetCount:   len(sheets),
		DroppedDates: dropped,
	}, nil
}

// dayNameOrDefault 表头没写星期时按日期补
func dayNameOrDefault(name string, date time.Time) string {
	if name != "" {
		return name
	}
	return date.Weekday().String()
}

// attachSlotTotals 由时段表反推日合计并左连接到日度表
// 有财务数据但没有时段数据的日子保持 nil，不造零。
func attachSlotTotals(daily []*model.DailyRecord, slots []*model.SlotRecord) {
	type totals struct {
		sales float64
		txns  float64
	}
	byDate := make(map[string]*totals)
	for _, s := range slots {
		t, ok := byDate[s.DateRaw]
		if !ok {
			t = &totals{}
			byDate[s.DateRaw] = t
		}
		t.sales += s.Sales
		t.txns += s.Transactions
	}

	for _, d := range daily {
		t, ok := byDate[d.DateRaw]
		if !ok {
			continue
		}
		sales := t.sales
		txns := t.txns
		d.SlotSalesTotal = &sales
		d.SlotTransactionsTotal = &txns
		if txns > 0 {
			avg := sales / txns
			d.SlotAvgTicket = &avg
		}
	}
}
