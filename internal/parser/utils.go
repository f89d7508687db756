package parser

import (
	"strconv"
	"strings"
)

// getCell 安全取单元格，越界返回空串
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// normKey 键归一化：去空格、转小写
func normKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// parseFloat 宽松数值解析：去千分位逗号和货币符号，失败返回 (0, false)
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	// 报表里负数偶尔写成 (123.45)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + s[1:len(s)-1]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// containsAny 是否包含任一关键词
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// matchColumn 列名是否命中规则
func matchColumn(key string, rule columnRule) bool {
	if rule.exact {
		return key == rule.substring
	}
	return strings.Contains(key, rule.substring)
}

// findColumn 按规则表顺序找列，返回首个命中的列号
func findColumn(header []string, rules []columnRule) int {
	for _, rule := range rules {
		for i, h := range header {
			if matchColumn(normKey(h), rule) {
				return i
			}
		}
	}
	return -1
}
