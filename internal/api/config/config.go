package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	// 交互常量没有经过调优，只是原始 UX 取值，允许按环境覆盖
	viper.SetDefault("notification.retention_cap", 20)
	viper.SetDefault("tracker.debounce_ms", 500)
	viper.SetDefault("follow.max_following", 1000)
	viper.SetDefault("follow.cache_size", 1000)
	viper.SetDefault("follow.cache_ttl_hours", 1)

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}
