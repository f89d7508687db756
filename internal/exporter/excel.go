package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"salespulse/internal/analytics"
	"salespulse/internal/model"
)

// CommissionWorkbook 生成周度分成核算的 Excel 报表
// 给会计对账用：一个 sheet 放分成明细，一个 sheet 放周度经营汇总。
func CommissionWorkbook(records []*model.WeeklyCommissionRecord, weekly []*analytics.WeeklyStat) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Commission"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{
		"Week", "Gross After Discounts", "Total Discounts", "Credit Card Sales",
		"Sales Tax", "Calculated Gross Before", "CC Fee", "Total Commissionable",
		"Party A Commission", "Party A Net", "Party B Commission", "Party B Net",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(sheetName, 1, 1, headerStyle)

	for i, r := range records {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.WeekLabel)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.GrossAfterDiscounts.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.TotalDiscounts.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.CreditCardSales.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.SalesTaxCollected.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.CalculatedGrossBefore.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), r.CCFee.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), r.TotalCommissionable.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), r.PartyACommission.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), r.PartyANet.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), r.PartyBCommission.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), r.PartyBNet.InexactFloat64())
	}

	if len(weekly) > 0 {
		weeklySheet := "Weekly"
		f.NewSheet(weeklySheet)

		weeklyHeaders := []string{
			"Week", "Days", "Sales", "Transactions", "Gross Before", "Discounts", "Avg Daily Sales",
		}
		for i, h := range weeklyHeaders {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(weeklySheet, cell, h)
		}
		f.SetRowStyle(weeklySheet, 1, 1, headerStyle)

		for i, w := range weekly {
			row := i + 2
			f.SetCellValue(weeklySheet, fmt.Sprintf("A%d", row), w.WeekLabel)
			f.SetCellValue(weeklySheet, fmt.Sprintf("B%d", row), w.DaysInWeek)
			f.SetCellValue(weeklySheet, fmt.Sprintf("C%d", row), w.Sales)
			f.SetCellValue(weeklySheet, fmt.Sprintf("D%d", row), w.Transactions)
			f.SetCellValue(weeklySheet, fmt.Sprintf("E%d", row), w.GrossBefore)
			f.SetCellValue(weeklySheet, fmt.Sprintf("F%d", row), w.Discounts)
			f.SetCellValue(weeklySheet, fmt.Sprintf("G%d", row), w.AvgDailySales)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 18)
	f.SetColWidth(sheetName, "B", "L", 16)

	return f, nil
}
