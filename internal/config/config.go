package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type MainConfig struct {
	AppName     string `toml:"appName"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	SSLRedirect bool   `toml:"sslRedirect"`
}

type DatabaseConfig struct {
	// mysql | postgres
	Driver       string `toml:"driver"`
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
	AutoMigrate  bool   `toml:"autoMigrate"`
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
	// 站内实时通知的 pub/sub 频道
	NotifyChannel string `toml:"notifyChannel"`
}

type KafkaConfig struct {
	Brokers         []string `toml:"brokers"`
	ClientID        string   `toml:"clientID"`
	PushTopic       string   `toml:"pushTopic"`
	ConsumerGroupID string   `toml:"consumerGroupID"`
	Partitions      int32    `toml:"partitions"`
	Replication     int16    `toml:"replication"`
}

type NotifyConfig struct {
	Timezone             string `toml:"timezone"`
	LeadDays             int    `toml:"leadDays"`
	DueHour              int    `toml:"dueHour"`
	DispatchSpec         string `toml:"dispatchSpec"`
	ReconcileSpec        string `toml:"reconcileSpec"`
	ReconcileHours       int    `toml:"reconcileHours"`
	QueryTimeoutSeconds  int    `toml:"queryTimeoutSeconds"`
	SchedulerEnabled     bool   `toml:"schedulerEnabled"`
	InboxLimit           int    `toml:"inboxLimit"`
	PushWorkerEnabled    bool   `toml:"pushWorkerEnabled"`
	RealtimeEnabled      bool   `toml:"realtimeEnabled"`
	FallbackQueueSize    int    `toml:"fallbackQueueSize"`
	FallbackQueueWorkers int    `toml:"fallbackQueueWorkers"`
}

type PushConfig struct {
	Enabled        bool    `toml:"enabled"`
	Endpoint       string  `toml:"endpoint"`
	AccessToken    string  `toml:"accessToken"`
	TimeoutSeconds int     `toml:"timeoutSeconds"`
	RatePerSecond  float64 `toml:"ratePerSecond"`
	Burst          int     `toml:"burst"`
	// 熔断：连续失败次数达到阈值后打开
	BreakerFailures uint32 `toml:"breakerFailures"`
	BreakerOpenSecs int    `toml:"breakerOpenSeconds"`
}

// MCPConfig 运维 MCP Server 配置
type MCPConfig struct {
	Enabled                bool   `toml:"enabled"`
	Name                   string `toml:"name"`
	Version                string `toml:"version"`
	ToolCallTimeoutSeconds int    `toml:"toolCallTimeoutSeconds"`
}

type Config struct {
	MainConfig     `toml:"mainConfig"`
	DatabaseConfig `toml:"databaseConfig"`
	LogConfig      `toml:"logConfig"`
	JwtConfig      `toml:"jwtConfig"`
	RedisConfig    `toml:"redisConfig"`
	KafkaConfig    `toml:"kafkaConfig"`
	NotifyConfig   `toml:"notifyConfig"`
	PushConfig     `toml:"pushConfig"`
	MCPConfig      `toml:"mcpConfig"`
}

const DefaultPath = "configs/config_local.toml"

// Default 未配置项的默认值
func Default() *Config {
	return &Config{
		MainConfig: MainConfig{
			AppName: "gigbell",
			Host:    "0.0.0.0",
			Port:    8000,
		},
		DatabaseConfig: DatabaseConfig{
			Driver:       "mysql",
			Host:         "127.0.0.1",
			Port:         3306,
			User:         "root",
			DatabaseName: "gigbell",
			AutoMigrate:  true,
		},
		LogConfig: LogConfig{
			LogPath: "logs/gigbell.log",
			Level:   "info",
		},
		JwtConfig: JwtConfig{
			ExpireHours: 24,
			Issuer:      "gigbell",
		},
		RedisConfig: RedisConfig{
			Port:          6379,
			PoolSize:      10,
			NotifyChannel: "gigbell:notification",
		},
		KafkaConfig: KafkaConfig{
			ClientID:        "gigbell",
			PushTopic:       "gigbell.push",
			ConsumerGroupID: "gigbell-push",
			Partitions:      3,
			Replication:     1,
		},
		NotifyConfig: NotifyConfig{
			Timezone:             "Asia/Seoul",
			LeadDays:             1,
			DueHour:              12,
			DispatchSpec:         "@every 1m",
			ReconcileSpec:        "@hourly",
			ReconcileHours:       24,
			QueryTimeoutSeconds:  30,
			SchedulerEnabled:     true,
			InboxLimit:           100,
			PushWorkerEnabled:    true,
			RealtimeEnabled:      true,
			FallbackQueueSize:    256,
			FallbackQueueWorkers: 2,
		},
		PushConfig: PushConfig{
			Endpoint:        "https://exp.host/--/api/v2/push/send",
			TimeoutSeconds:  10,
			RatePerSecond:   50,
			Burst:           10,
			BreakerFailures: 5,
			BreakerOpenSecs: 30,
		},
		MCPConfig: MCPConfig{
			Name:                   "gigbell-ops",
			Version:                "1.0.0",
			ToolCallTimeoutSeconds: 60,
		},
	}
}

// Load 读取 toml 文件并叠加到默认值上；文件不存在时直接用默认值
func Load(path string) (*Config, error) {
	conf := Default()
	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return conf, nil
		}
		return nil, err
	}
	if _, err := toml.DecodeFile(path, conf); err != nil {
		return nil, fmt.Errorf("加载配置文件失败: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) Validate() error {
	switch c.DatabaseConfig.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseConfig.Driver)
	}
	if c.NotifyConfig.DueHour < 0 || c.NotifyConfig.DueHour > 23 {
		return fmt.Errorf("notifyConfig.dueHour out of range: %d", c.NotifyConfig.DueHour)
	}
	if c.NotifyConfig.LeadDays < 0 {
		return fmt.Errorf("notifyConfig.leadDays must not be negative")
	}
	return nil
}

// DSN 按驱动拼接连接串
func (d DatabaseConfig) DSN() string {
	if d.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			d.Host, d.Port, d.User, d.Password, d.DatabaseName)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User, d.Password, d.Host, d.Port, d.DatabaseName)
}
