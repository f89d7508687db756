package parser

import "strings"

// slotRow 时段表的一行原始数据
type slotRow struct {
	Slot         string
	Sales        float64
	Transactions float64
	AvgTicket    float64
}

// findSlotHeaderRow 定位时段表的表头行
// 第一列等于 "time_slots"/"time slots" 的那一行即表头，其下全部是数据。
func findSlotHeaderRow(rows [][]string) int {
	for i, row := range rows {
		if slotHeaderKeys[normKey(getCell(row, 0))] {
			return i
		}
	}
	return -1
}

// extractSlotTable 抽取时段明细
// 列不按固定位置找，而按 markers.go 里的规则表做子串匹配；
// 找不到时刻列或销售额列时整表放弃 (该 sheet 不贡献时段行)。
// 汇总行 "Total" 不是时段，必须剔除，否则日合计会翻倍。
func extractSlotTable(rows [][]string) []slotRow {
	headerIdx := findSlotHeaderRow(rows)
	if headerIdx < 0 || headerIdx+1 >= len(rows) {
		return nil
	}

	header := rows[headerIdx]

	timeCol := -1
	for i, h := range header {
		if slotHeaderKeys[normKey(h)] {
			timeCol = i
			break
		}
	}
	salesCol := findColumn(header, salesColumnRules)
	txnCol := findColumn(header, txnColumnRules)

	if timeCol < 0 || salesCol < 0 {
		return nil
	}

	out := make([]slotRow, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		label := getCell(row, timeCol)
		l := strings.ToLower(label)
		if label == "" || l == "nan" || l == slotTotalLabel {
			continue
		}

		sales, _ := parseFloat(getCell(row, salesCol))

		var txns float64
		if txnCol >= 0 {
			txns, _ = parseFloat(getCell(row, txnCol))
		}

		avgTicket := 0.0
		if txns > 0 {
			avgTicket = sales / txns
		}

		out = append(out, slotRow{
			Slot:         label,
			Sales:        sales,
			Transactions: txns,
			AvgTicket:    avgTicket,
		})
	}

	return out
}
