package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/rushteam/movietrack/logging"
)

const (
	// EnvPrefix 是环境变量前缀：MOVIETRACK_ACCOUNTS_DRIVER -> accounts.driver
	EnvPrefix = "MOVIETRACK_"

	// ConfigPathEnvVar 指定配置文件路径，-config 参数优先
	ConfigPathEnvVar = "MOVIETRACK_CONFIG"
)

// DefaultConfigPaths 未显式指定配置文件时依次查找，都不存在则只用默认值和环境变量。
var DefaultConfigPaths = []string{
	"movietrack.yaml",
	"config/movietrack.yaml",
}

// 账户存储驱动
const (
	DriverCSV    = "csv"
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverBadger = "badger"
)

// Config 是应用配置。
type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Accounts  AccountsConfig  `koanf:"accounts"`
	Redis     RedisConfig     `koanf:"redis"`
	Badger    BadgerConfig    `koanf:"badger"`
	Pipeline  PipelineConfig  `koanf:"pipeline"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   logging.Config  `koanf:"logging"`
}

type CatalogConfig struct {
	// Path 是影片目录 CSV
	Path string `koanf:"path" validate:"required"`
}

type AccountsConfig struct {
	Driver string `koanf:"driver" validate:"oneof=csv memory redis badger"`

	// Path 是 csv 驱动的用户文件
	Path string `koanf:"path"`

	BcryptCost int `koanf:"bcrypt_cost" validate:"min=4,max=31"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"min=0"`
	Prefix   string `koanf:"prefix"`
}

type BadgerConfig struct {
	// Dir 为空时使用内存模式，进程退出后数据丢失
	Dir string `koanf:"dir"`
}

type PipelineConfig struct {
	// Path 是额外推荐节点的 YAML 文件，为空表示不挂载
	Path string `koanf:"path"`

	// BlacklistKey 是 Store 中黑名单文档的默认 key，filter.blacklist 未指定 key 时使用
	BlacklistKey string `koanf:"blacklist_key"`
}

type RecommendConfig struct {
	// Seed 非零时 random 策略使用固定种子
	Seed uint64 `koanf:"seed"`
}

// Default 返回默认配置。
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{Path: "data/movies.csv"},
		Accounts: AccountsConfig{
			Driver:     DriverCSV,
			Path:       "data/users.csv",
			BcryptCost: 10,
		},
		Redis: RedisConfig{
			Addr:   "127.0.0.1:6379",
			Prefix: "movietrack:",
		},
		Logging: logging.Config{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load 按 默认值 → YAML 文件 → 环境变量 的顺序加载配置并校验。
// path 为空时依次尝试 MOVIETRACK_CONFIG 和 DefaultConfigPaths。
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	configPath, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
		logging.Debug().Str("path", configPath).Msg("config file loaded")
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if path == "" {
		path = os.Getenv(ConfigPathEnvVar)
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file %s: %w", path, err)
		}
		return path, nil
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// envTransformFunc 把 MOVIETRACK_SECTION_SOME_KEY 转为 section.some_key。
// MOVIETRACK_CONFIG 本身不是配置项，返回空串丢弃。
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok || rest == "" {
		return ""
	}
	return section + "." + rest
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate 校验字段取值以及驱动相关的必填项。
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}

	switch c.Accounts.Driver {
	case DriverCSV:
		if c.Accounts.Path == "" {
			return errors.New("accounts.path is required for the csv driver")
		}
	case DriverRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis.addr is required for the redis driver")
		}
	}
	return nil
}
