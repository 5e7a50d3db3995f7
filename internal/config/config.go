package config

import (
	"log"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
)

const defaultConfigPath = "configs/config_local.toml"

type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
}

type MysqlConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
}

type LogConfig struct {
	LogPath string `toml:"logPath"`
	Level   string `toml:"level"`
}

type JwtConfig struct {
	Key         string `toml:"key"`
	ExpireHours int    `toml:"expireHours"`
	Issuer      string `toml:"issuer"`
}

type RedisConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	PoolSize     int    `toml:"poolSize"`
	MinIdleConns int    `toml:"minIdleConns"`
	// PreferenceTTLSeconds 通知偏好缓存时长
	PreferenceTTLSeconds int `toml:"preferenceTTLSeconds"`
}

// SchedulerConfig 后台任务调度配置，使用 robfig/cron 语法（如 "@every 1h"）
type SchedulerConfig struct {
	Enabled        bool   `toml:"enabled"`
	ScanSpec       string `toml:"scanSpec"`
	ExpirySpec     string `toml:"expirySpec"`
	RunScanOnStart bool   `toml:"runScanOnStart"`
}

// RiskConfig 风险分级窗口（单位：天）
type RiskConfig struct {
	CriticalWindowDays            int `toml:"criticalWindowDays"`
	WarningWindowDays             int `toml:"warningWindowDays"`
	CertificateCriticalWindowDays int `toml:"certificateCriticalWindowDays"`
	CertificateWarningWindowDays  int `toml:"certificateWarningWindowDays"`
}

type RealtimeConfig struct {
	SendBuffer       int      `toml:"sendBuffer"`
	WriteWaitSeconds int      `toml:"writeWaitSeconds"`
	PongWaitSeconds  int      `toml:"pongWaitSeconds"`
	AllowedOrigins   []string `toml:"allowedOrigins"`
}

type TLSConfig struct {
	Enabled  bool   `toml:"enabled"`
	CertFile string `toml:"certFile"`
	KeyFile  string `toml:"keyFile"`
}

type Config struct {
	MainConfig      `toml:"mainConfig"`
	MysqlConfig     `toml:"mysqlConfig"`
	JwtConfig       `toml:"jwtConfig"`
	LogConfig       `toml:"logConfig"`
	RedisConfig     `toml:"redisConfig"`
	SchedulerConfig `toml:"schedulerConfig"`
	RiskConfig      `toml:"riskConfig"`
	RealtimeConfig  `toml:"realtimeConfig"`
	TLSConfig       `toml:"tlsConfig"`
}

// Default 返回全部字段的默认值，配置文件中缺失的字段沿用这些值
func Default() *Config {
	return &Config{
		MainConfig: MainConfig{
			AppName: "aerocomply",
			Host:    "0.0.0.0",
			Port:    8080,
		},
		MysqlConfig: MysqlConfig{
			Host:         "127.0.0.1",
			Port:         3306,
			User:         "root",
			DatabaseName: "aerocomply",
		},
		JwtConfig: JwtConfig{
			ExpireHours: 24,
		},
		LogConfig: LogConfig{
			Level: "info",
		},
		RedisConfig: RedisConfig{
			Port:                 6379,
			PoolSize:             10,
			PreferenceTTLSeconds: 300,
		},
		SchedulerConfig: SchedulerConfig{
			Enabled:    true,
			ScanSpec:   "@every 1h",
			ExpirySpec: "@every 10m",
		},
		RiskConfig: RiskConfig{
			CriticalWindowDays:            3,
			WarningWindowDays:             7,
			CertificateCriticalWindowDays: 30,
			CertificateWarningWindowDays:  60,
		},
		RealtimeConfig: RealtimeConfig{
			SendBuffer:       64,
			WriteWaitSeconds: 10,
			PongWaitSeconds:  60,
		},
	}
}

// LoadConfig 在默认值之上解析 TOML 文件
func LoadConfig(path string) (*Config, error) {
	conf := Default()
	if _, err := toml.DecodeFile(path, conf); err != nil {
		return conf, err
	}
	return conf, nil
}

var (
	config   *Config
	loadOnce sync.Once
)

// GetConfig 进程级配置，首次调用时从 AEROCOMPLY_CONFIG 或默认路径加载
func GetConfig() *Config {
	loadOnce.Do(func() {
		path := os.Getenv("AEROCOMPLY_CONFIG")
		if path == "" {
			path = defaultConfigPath
		}
		conf, err := LoadConfig(path)
		if err != nil {
			log.Printf("load config %s failed: %v, using defaults", path, err)
		}
		config = conf
	})
	return config
}
