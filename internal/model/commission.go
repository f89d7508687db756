package model

import "github.com/shopspring/decimal"

// CommissionRates 分成计算用的比率 (百分数, 如 20 表示 20%)
type CommissionRates struct {
	CommissionPct float64 `json:"commissionPct"` // 甲方分成比例
	CCFeePct      float64 `json:"ccFeePct"`      // 刷卡手续费率
	SalesTaxPct   float64 `json:"salesTaxPct"`   // 销售税率 (无人工税额时用于推算)
}

// Overrides 按周标签提供的人工修正值
// 原始报表之外、由会计口头/邮件补充的数字，计算分成前先套用。
type Overrides struct {
	// GetApp 渠道刷卡额，按周累加到刷卡销售额上
	GetAppCreditCard map[string]float64 `json:"getAppCreditCard"`
	// 人工指定的销售税额；缺失 (或为 0) 时按刷卡额 × 税率推算
	SalesTax map[string]float64 `json:"salesTax"`
}

// NewOverrides 创建空的修正表
func NewOverrides() *Overrides {
	return &Overrides{
		GetAppCreditCard: make(map[string]float64),
		SalesTax:         make(map[string]float64),
	}
}

// WeeklyCommissionRecord 一个销售周的分成核算结果
// 算法要与外部会计的手工台账逐分钱对上，金额一律用 decimal。
type WeeklyCommissionRecord struct {
	WeekLabel string `json:"weekLabel"`
	WeekYear  int    `json:"weekYear"`
	WeekNum   int    `json:"weekNum"`

	GrossAfterDiscounts decimal.Decimal `json:"grossAfterDiscounts"`
	TotalDiscounts      decimal.Decimal `json:"totalDiscounts"`
	CreditCardSales     decimal.Decimal `json:"creditCardSales"` // 含 GetApp 人工补入
	CashSales           decimal.Decimal `json:"cashSales"`       // 业务规则: 恒为 0
	SalesTaxCollected   decimal.Decimal `json:"salesTaxCollected"`
	SalesTaxImputed     bool            `json:"salesTaxImputed"` // true = 税额为推算值而非人工值

	CalculatedGrossBefore decimal.Decimal `json:"calculatedGrossBefore"` // GrossAfter + Discounts, 重算不取原字段
	CCFee                 decimal.Decimal `json:"ccFee"`
	TotalCommissionable   decimal.Decimal `json:"totalCommissionable"`
	PartyACommission      decimal.Decimal `json:"partyACommission"`
	PartyANet             decimal.Decimal `json:"partyANet"`
	PartyBCommission      decimal.Decimal `json:"partyBCommission"`
	PartyBNet             decimal.Decimal `json:"partyBNet"`
}
