package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server    ServerConfig    `toml:"server"`
	Data      DataConfig      `toml:"data"`
	Analytics AnalyticsConfig `toml:"analytics"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// AnalyticsConfig 分析与分成参数 (均为百分数)
type AnalyticsConfig struct {
	PeakTopPct    float64 `toml:"peak_top_pct"`    // 忙时阈值，前 N% (1-30)
	SlowBottomPct float64 `toml:"slow_bottom_pct"` // 闲时阈值，后 N% (1-50)
	CommissionPct float64 `toml:"commission_pct"`  // 甲方分成比例 (0-100)
	CCFeePct      float64 `toml:"cc_fee_pct"`      // 刷卡手续费率 (0-10)
	SalesTaxPct   float64 `toml:"sales_tax_pct"`   // 销售税率 (0-15)
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20271,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Analytics: AnalyticsConfig{
			PeakTopPct:    10,
			SlowBottomPct: 20,
			CommissionPct: 20,
			CCFeePct:      3,
			SalesTaxPct:   8,
		},
	}
}

// Normalize 把越界的分析参数拉回默认值
func (c *AppConfig) Normalize() {
	def := DefaultConfig().Analytics
	a := &c.Analytics
	if a.PeakTopPct < 1 || a.PeakTopPct > 30 {
		a.PeakTopPct = def.PeakTopPct
	}
	if a.SlowBottomPct < 1 || a.SlowBottomPct > 50 {
		a.SlowBottomPct = def.SlowBottomPct
	}
	if a.CommissionPct < 0 || a.CommissionPct > 100 {
		a.CommissionPct = def.CommissionPct
	}
	if a.CCFeePct < 0 || a.CCFeePct > 10 {
		a.CCFeePct = def.CCFeePct
	}
	if a.SalesTaxPct < 0 || a.SalesTaxPct > 15 {
		a.SalesTaxPct = def.SalesTaxPct
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// 配置文件不存在，使用默认配置
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}
	config.Normalize()

	return config, info, nil
}

// EnsureDataDir 确保数据目录存在并返回绝对路径
func EnsureDataDir(cfg *AppConfig) (string, error) {
	dir := cfg.Data.DataDir
	if !filepath.IsAbs(dir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dir = filepath.Join(exeDir, dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
