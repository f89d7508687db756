package store

import (
	"sync"

	"salespulse/internal/loader"
	"salespulse/internal/model"
)

// Session 进程内会话状态
// 当前已加载的规范表 + 人工修正表。修正表是仅有的可变共享状态，
// 读多写少，RWMutex 保护；每次读取返回拷贝，调用方拿不到内部引用。
type Session struct {
	mu        sync.RWMutex
	current   *loader.Result
	overrides *model.Overrides
}

// NewSession 创建空会话
func NewSession() *Session {
	return &Session{
		overrides: model.NewOverrides(),
	}
}

// SetCurrent 替换当前加载结果
func (s *Session) SetCurrent(result *loader.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = result
}

// Current 取当前加载结果，未加载返回 nil
func (s *Session) Current() *loader.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Overrides 取人工修正表的拷贝
func (s *Session) Overrides() *model.Overrides {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := model.NewOverrides()
	for k, v := range s.overrides.GetAppCreditCard {
		out.GetAppCreditCard[k] = v
	}
	for k, v := range s.overrides.SalesTax {
		out.SalesTax[k] = v
	}
	return out
}

// SetGetAppCreditCard 设置某周的 GetApp 刷卡额修正
func (s *Session) SetGetAppCreditCard(weekLabel string, amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount == 0 {
		// 0 和未设置在下游无法区分，直接删键，让推算兜底成为唯一路径
		delete(s.overrides.GetAppCreditCard, weekLabel)
		return
	}
	s.overrides.GetAppCreditCard[weekLabel] = amount
}

// SetSalesTax 设置某周的人工税额
func (s *Session) SetSalesTax(weekLabel string, amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount == 0 {
		delete(s.overrides.SalesTax, weekLabel)
		return
	}
	s.overrides.SalesTax[weekLabel] = amount
}

// ClearOverrides 清空全部人工修正
func (s *Session) ClearOverrides() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = model.NewOverrides()
}
