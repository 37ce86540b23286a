package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GameConfig 游戏配置（可从 YAML 文件加载）
type GameConfig struct {
	Columns  int   `yaml:"columns"`   // 列数
	MaxDraws int   `yaml:"max_draws"` // 最多可发的额外行数
	Seed     int64 `yaml:"seed"`      // 洗牌种子（0 表示随机）
}

// Default 返回标准双花色蜘蛛纸牌的默认配置
func Default() GameConfig {
	return GameConfig{
		Columns:  10,
		MaxDraws: 5,
		Seed:     0,
	}
}

// Load 从 YAML 文件加载配置
//
// 文件不存在时返回默认配置（不视为错误）；文件内容非法或
// 配置值越界时返回错误。
func Load(path string) (GameConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("读取配置文件失败: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("解析配置文件失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate 检查配置值是否在合法范围内
func (c GameConfig) Validate() error {
	if c.Columns < 4 || c.Columns > 13 {
		return fmt.Errorf("列数必须在 4 到 13 之间: %d", c.Columns)
	}
	if c.MaxDraws < 0 {
		return fmt.Errorf("最大发牌次数不能为负: %d", c.MaxDraws)
	}
	return nil
}
