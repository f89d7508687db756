package parser

import "strings"

// 区段抽取器：逐行扫描 sheet 的前两列 (键/值)。
// 各区段在不同门店的导出里行号不固定，只能靠标记词定位。

// headerInfo 表头区抽取结果
type headerInfo struct {
	DateRaw string
	DayName string
}

// extractHeader 抽取表头区的日期与星期
// 自上而下扫第一列，键 "date"/"day" 取第二列的值；
// 碰到财务段或收款段的标记即停止。
func extractHeader(rows [][]string) headerInfo {
	info := headerInfo{}
	for _, row := range rows {
		key := getCell(row, 0)
		if key == "" {
			continue
		}
		k := normKey(key)
		switch k {
		case "date":
			info.DateRaw = getCell(row, 1)
		case "day":
			info.DayName = getCell(row, 1)
		}
		if containsAny(k, headerStopMarkers) {
			break
		}
	}
	return info
}

// extractFinancial 抽取财务控制段的指标
// 只在见到 "run financial control report" 之后开始读数；
// 非数值的行直接忽略；含 "tax collected" 的键额外镜像为规范名 "Sales Tax Collected"。
func extractFinancial(rows [][]string, taxMirrorKey string) map[string]float64 {
	metrics := make(map[string]float64)
	inSection := false

	for _, row := range rows {
		key := getCell(row, 0)
		if key == "" {
			continue
		}
		k := normKey(key)

		if strings.Contains(k, financialStartMarker) {
			inSection = true
			continue
		}
		if inSection && containsAny(k, financialStopMarkers) {
			break
		}
		if !inSection || financialSkipKeys[k] {
			continue
		}

		v, ok := parseFloat(getCell(row, 1))
		if !ok {
			continue
		}
		metrics[key] = v
		if strings.Contains(k, taxCollectedMarker) {
			metrics[taxMirrorKey] = v
		}
	}

	return metrics
}

// extractTender 抽取收款段并归并到固定桶
// 键含 "credit" 记入 Credit Card，含 "cash" 记入 Cash；
// "type"/"amount" 这类表头行跳过；桶未出现时保持 0。
func extractTender(rows [][]string, creditBucket, cashBucket string) map[string]float64 {
	buckets := map[string]float64{
		creditBucket: 0,
		cashBucket:   0,
	}
	inSection := false

	for _, row := range rows {
		key := getCell(row, 0)
		if key == "" {
			continue
		}
		k := normKey(key)

		if !inSection {
			if containsAny(k, tenderStartMarkers) {
				inSection = true
			}
			continue
		}
		if containsAny(k, tenderStopMarkers) {
			break
		}
		if tenderSkipKeys[k] {
			continue
		}

		v, ok := parseFloat(getCell(row, 1))
		if !ok {
			continue
		}
		switch {
		case strings.Contains(k, "credit"):
			buckets[creditBucket] += v
		case strings.Contains(k, "cash"):
			buckets[cashBucket] += v
		}
	}

	return buckets
}
