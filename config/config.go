package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Email     EmailConfig     `mapstructure:"email"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Messenger MessengerConfig `mapstructure:"messenger"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type EmailConfig struct {
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	APIBase  string `mapstructure:"api_base"`
}

type MessengerConfig struct {
	PageToken   string `mapstructure:"page_token"`
	VerifyToken string `mapstructure:"verify_token"`
	APIBase     string `mapstructure:"api_base"`
	PageLink    string `mapstructure:"page_link"`
}

type QueueConfig struct {
	NotificationQueue string `mapstructure:"notification_queue"`
	MaxWorkers        int    `mapstructure:"max_workers"`
}

type NotifyConfig struct {
	SuppressMinutes int `mapstructure:"suppress_minutes"` // 同内容通知抑制窗口（分钟）
	LinkCodeMinutes int `mapstructure:"link_code_minutes"` // Messenger 绑定码有效期（分钟）
	SendTimeoutSecs int `mapstructure:"send_timeout_secs"` // 单渠道发送超时（秒）
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// SuppressTTL 通知抑制窗口时长，未配置时默认 5 分钟
func (c *NotifyConfig) SuppressTTL() time.Duration {
	if c.SuppressMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.SuppressMinutes) * time.Minute
}

// LinkCodeTTL Messenger 绑定码有效期，未配置时默认 15 分钟
func (c *NotifyConfig) LinkCodeTTL() time.Duration {
	if c.LinkCodeMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.LinkCodeMinutes) * time.Minute
}

// SendTimeout 单渠道发送超时，未配置时默认 10 秒
func (c *NotifyConfig) SendTimeout() time.Duration {
	if c.SendTimeoutSecs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.SendTimeoutSecs) * time.Second
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	// 检查 config.local.yaml 是否存在
	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 环境变量覆盖
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
