package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"salespulse/internal/model"
)

// 分成核算。金额一律走 decimal：结果要和外部会计的手工台账逐分钱对上，
// 浮点误差在这条链路上是缺陷不是噪声。

var hundred = decimal.NewFromInt(100)

// weeklyFinancials 分成计算的中间量：按周累加的原始金额
type weeklyFinancials struct {
	label      string
	year       int
	num        int
	grossAfter float64
	discounts  float64
	creditCard float64
	cash       float64
	salesTax   float64
}

// ComputeCommission 计算每个销售周的两方分成
// 人工修正 (GetApp 刷卡额、人工税额) 在推导字段之前套用；
// 同一份日度表换一套修正值可以直接重算，不需要重新加载工作簿。
func ComputeCommission(daily *model.DailyTable, overrides *model.Overrides, rates model.CommissionRates) []*model.WeeklyCommissionRecord {
	if daily.Empty() {
		return []*model.WeeklyCommissionRecord{}
	}
	if overrides == nil {
		overrides = model.NewOverrides()
	}

	byLabel := make(map[string]*weeklyFinancials)
	for _, r := range daily.Rows {
		label := r.WeekLabel()
		w, ok := byLabel[label]
		if !ok {
			w = &weeklyFinancials{
				label: label,
				year:  r.Week.Year,
				num:   r.Week.Number,
			}
			byLabel[label] = w
		}
		if v, ok := r.Metric(model.MetricGrossAfter); ok {
			w.grossAfter += v
		}
		if v, ok := r.Metric(model.MetricTotalDiscounts); ok {
			w.discounts += v
		}
		if v, ok := r.Metric(model.MetricSalesTax); ok {
			w.salesTax += v
		}
		w.creditCard += r.TenderAmount(model.TenderCreditCard)
		w.cash += r.TenderAmount(model.TenderCash)
	}

	commissionRate := decimal.NewFromFloat(rates.CommissionPct).Div(hundred)
	ccFeeRate := decimal.NewFromFloat(rates.CCFeePct).Div(hundred)
	salesTaxRate := decimal.NewFromFloat(rates.SalesTaxPct).Div(hundred)

	out := make([]*model.WeeklyCommissionRecord, 0, len(byLabel))
	for label, w := range byLabel {
		grossAfter := decimal.NewFromFloat(w.grossAfter)
		discounts := decimal.NewFromFloat(w.discounts)

		// GetApp 渠道的刷卡额不在报表里，按周人工补入
		creditCard := decimal.NewFromFloat(w.creditCard)
		if addon, ok := overrides.GetAppCreditCard[label]; ok {
			creditCard = creditCard.Add(decimal.NewFromFloat(addon))
		}

		// 业务规则：没有现金结算渠道，现金强制归零
		cash := decimal.Zero

		// 人工税额优先；没给 (或给 0) 时按刷卡额 × 税率推算
		salesTax := decimal.Zero
		imputed := true
		if v, ok := overrides.SalesTax[label]; ok && v != 0 {
			salesTax = decimal.NewFromFloat(v)
			imputed = false
		} else {
			salesTax = creditCard.Mul(salesTaxRate)
		}

		// 重算毛额，不取报表原字段，与会计台账的口径一致
		calcGrossBefore := grossAfter.Add(discounts)
		ccFee := creditCard.Mul(ccFeeRate)
		commissionable := calcGrossBefore.Sub(ccFee)
		partyA := commissionable.Mul(commissionRate)
		partyANet := partyA.Sub(discounts)
		partyB := commissionable.Sub(partyA)
		partyBNet := partyB.Sub(cash).Add(salesTax)

		out = append(out, &model.WeeklyCommissionRecord{
			WeekLabel:             label,
			WeekYear:              w.year,
			WeekNum:               w.num,
			GrossAfterDiscounts:   grossAfter,
			TotalDiscounts:        discounts,
			CreditCardSales:       creditCard,
			CashSales:             cash,
			SalesTaxCollected:     salesTax,
			SalesTaxImputed:       imputed,
			CalculatedGrossBefore: calcGrossBefore,
			CCFee:                 ccFee,
			TotalCommissionable:   commissionable,
			PartyACommission:      partyA,
			PartyANet:             partyANet,
			PartyBCommission:      partyB,
			PartyBNet:             partyBNet,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].WeekYear != out[j].WeekYear {
			return out[i].WeekYear < out[j].WeekYear
		}
		return out[i].WeekNum < out[j].WeekNum
	})
	return out
}
