// Package config 提供 rbtree-inspect 的配置加载、校验与热更新.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/wyfcoding/ordtree/logging"
)

// Config 全局顶级配置结构.
type Config struct {
	Log     LogConfig     `mapstructure:"log"     toml:"log"`
	Tree    TreeConfig    `mapstructure:"tree"    toml:"tree"`
	Metrics MetricsConfig `mapstructure:"metrics" toml:"metrics"`
}

// LogConfig 定义日志输出、级别与切割策略.
type LogConfig struct {
	Level      string `mapstructure:"level"       toml:"level"       validate:"omitempty,oneof=debug info warn error"`
	Format     string `mapstructure:"format"      toml:"format"      validate:"omitempty,oneof=json text"`
	File       string `mapstructure:"file"        toml:"file"`
	MaxSize    int    `mapstructure:"max_size"    toml:"max_size"    validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max_age"     toml:"max_age"     validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"    toml:"compress"`
}

// TreeConfig 描述要构建的树: 键类型、依次插入的键与随后删除的键.
type TreeConfig struct {
	KeyType string   `mapstructure:"key_type" toml:"key_type" validate:"required,oneof=int string"`
	Keys    []string `mapstructure:"keys"     toml:"keys"`
	Remove  []string `mapstructure:"remove"   toml:"remove"`
	Verify  bool     `mapstructure:"verify"   toml:"verify"`
}

// MetricsConfig 指标输出配置.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"   toml:"enabled"`
	Namespace string `mapstructure:"namespace" toml:"namespace" validate:"required_if=Enabled true"`
	Addr      string `mapstructure:"addr"      toml:"addr"`
}

// LoggingConfig 转换为 logging 包的配置.
func (c LogConfig) LoggingConfig(service, module string) logging.Config {
	return logging.Config{
		Service:    service,
		Module:     module,
		Level:      c.Level,
		Format:     c.Format,
		File:       c.File,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
		Compress:   c.Compress,
	}
}

// Loader 持有独立的 viper 实例, 负责读取、校验并在文件变化时重新加载配置.
type Loader struct {
	v        *viper.Viper
	validate *validator.Validate

	mu       sync.Mutex
	onReload []func(*Config)
}

// NewLoader 创建配置加载器. 环境变量以 APP_ 为前缀, 层级分隔符 "." 替换为 "_".
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("tree.key_type", "int")
	v.SetDefault("tree.verify", true)
	v.SetDefault("metrics.namespace", "ordtree")

	return &Loader{v: v, validate: validator.New()}
}

// RegisterReloadHook 注册配置热更新回调。
func (l *Loader) RegisterReloadHook(hook func(*Config)) {
	if hook == nil {
		return
	}
	l.mu.Lock()
	l.onReload = append(l.onReload, hook)
	l.mu.Unlock()
}

// Load 读取并校验配置文件.
func (l *Loader) Load(path string, conf *Config) error {
	l.v.SetConfigFile(path)

	if err := l.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config error: %w", err)
	}
	return l.decode(conf)
}

// LoadDefaults 不读取文件, 仅由默认值与 APP_ 环境变量组装配置.
func (l *Loader) LoadDefaults(conf *Config) error {
	return l.decode(conf)
}

func (l *Loader) decode(conf *Config) error {
	if err := l.v.Unmarshal(conf); err != nil {
		return fmt.Errorf("unmarshal config error: %w", err)
	}
	if err := l.validate.Struct(conf); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Watch 监听配置文件变化. 重新解析并校验通过后同步日志级别, 再把新配置交给回调;
// 校验失败时不触发回调.
func (l *Loader) Watch() {
	l.v.OnConfigChange(func(event fsnotify.Event) {
		slog.Info("detecting config change", "file", event.Name, "op", event.Op.String())
		const debounceTimeout = 200 * time.Millisecond
		time.Sleep(debounceTimeout)

		var next Config
		if err := l.decode(&next); err != nil {
			slog.Error("reload config failed", "error", err)
			return
		}

		logging.SetLevel(next.Log.Level)
		slog.Info("config hot-reloaded and validated successfully")

		l.mu.Lock()
		hooks := append([]func(*Config){}, l.onReload...)
		l.mu.Unlock()
		for _, hook := range hooks {
			hook(&next)
		}
	})
	l.v.WatchConfig()
}

// Load 使用一次性加载器读取配置.
func Load(path string, conf *Config) error {
	return NewLoader().Load(path, conf)
}
