package parser

// 本文件集中定义各区段的标记词与列识别规则。
// 这类导出模板的段落位置不固定，只能按关键字扫描定位；
// 所有模糊匹配规则都放在这里按固定顺序求值，避免散落在各处导致行为不确定。

// 日期/星期段：遇到这些标记说明表头区结束
var headerStopMarkers = []string{
	"run financial",
	"payment summary",
}

// 财务控制段的起始标记
const financialStartMarker = "run financial control report"

// 财务控制段的结束标记
var financialStopMarkers = []string{
	"tender summary",
	"payment summary",
	"day part summary",
}

// 财务控制段里要跳过的表头行
var financialSkipKeys = map[string]bool{
	"name": true,
}

// 含该词的指标额外归一化镜像为 Sales Tax Collected
const taxCollectedMarker = "tax collected"

// 收款段的起始/结束标记
var tenderStartMarkers = []string{
	"tender summary",
	"payment summary",
}

var tenderStopMarkers = []string{
	"day part",
}

// 收款段里要跳过的表头行
var tenderSkipKeys = map[string]bool{
	"type":   true,
	"amount": true,
}

// columnRule 列识别规则：substring 命中 (或 exact 精确相等) 即匹配
type columnRule struct {
	substring string
	exact     bool
}

// 时段表的表头单元格取值
var slotHeaderKeys = map[string]bool{
	"time_slots": true,
	"time slots": true,
}

// 销售额列的识别规则，按顺序求值
var salesColumnRules = []columnRule{
	{substring: "sales net vat"},
	{substring: "after discount"},
	{substring: "sales", exact: true},
}

// 成交笔数列的识别规则
var txnColumnRules = []columnRule{
	{substring: "transaction"},
	{substring: "checks"},
	{substring: "count"},
}

// 时段表里要排除的汇总行标签
const slotTotalLabel = "total"
