package config

import (
	"github.com/ZhehuanUnique/AIGC-Studio/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// StorageConfig 对象存储配置
type StorageConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
	Bucket     string `mapstructure:"bucket"`
	UseSSL     bool   `mapstructure:"use_ssl"`
	PublicBase string `mapstructure:"public_base"` // 对外访问前缀，如 https://cdn.example.com
}

// SyncConfig 客户端同步器配置
type SyncConfig struct {
	APIBase     string `mapstructure:"api_base"`     // REST 网关地址
	CacheFile   string `mapstructure:"cache_file"`   // 本地快照文件
	AdminSecret string `mapstructure:"admin_secret"` // 全局管理解锁口令
	DebounceMS  int    `mapstructure:"debounce_ms"`  // 本地缓存写入防抖（毫秒）
}

type TaskConfig struct {
	CostAuditInterval   int `mapstructure:"cost_audit_interval"`   // 秒
	BlobCleanupInterval int `mapstructure:"blob_cleanup_interval"` // 秒
	BlobTTLHours        int `mapstructure:"blob_ttl_hours"`        // 孤儿对象保留时长
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/aigc-studio")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "aigc_studio")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("storage.endpoint", "localhost:9000")
	viper.SetDefault("storage.bucket", "aigc-studio-uploads")
	viper.SetDefault("storage.use_ssl", false)
	viper.SetDefault("sync.api_base", "http://localhost:8080/api")
	viper.SetDefault("sync.admin_secret", "8888")
	viper.SetDefault("sync.cache_file", "studio_snapshot.json")
	viper.SetDefault("sync.debounce_ms", 300)
	viper.SetDefault("task.cost_audit_interval", 600)
	viper.SetDefault("task.blob_cleanup_interval", 3600)
	viper.SetDefault("task.blob_ttl_hours", 24)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
