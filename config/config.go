package config

import (
	"flag"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

const (
	defaultServerAddress = ":8080"
	defaultDatabaseDSN   = ""
	defaultLogLevel      = "debug"
	defaultSiteName      = "StudioMart"
	defaultSMTPPort      = 465
)

// WechatConfig holds WeChat Pay merchant credentials.
// Refund calls and notify decryption are unavailable until all fields are set.
type WechatConfig struct {
	MchID          string
	CertSerialNo   string
	PrivateKeyPath string
	APIv3Key       string
}

// Configured reports whether merchant credentials are complete.
func (wc WechatConfig) Configured() bool {
	return wc.MchID != "" && wc.CertSerialNo != "" && wc.PrivateKeyPath != "" && wc.APIv3Key != ""
}

// SMTPConfig holds outbound mail transport settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Config struct {
	ServerAddr    string
	DatabaseDSN   string
	LogLevel      string
	SiteName      string
	AuthTokenKey  string
	AdminPassHash string
	Wechat        WechatConfig
	SMTP          SMTPConfig
}

var (
	once      sync.Once
	singleton *Config
)

// New returns new Config. It parses command line and environment variables only once.
func New() (*Config, error) {
	once.Do(func() {
		// .env is optional, deployments may set environment variables directly
		_ = godotenv.Load()

		cfg := Config{}

		// initialize flags
		flag.StringVar(&cfg.ServerAddr, "a", defaultServerAddress, "server address")
		flag.StringVar(&cfg.DatabaseDSN, "d", defaultDatabaseDSN, "database DSN")
		flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")

		flag.Parse()

		// if environment variable is set, then using it
		if runAddrEnv := os.Getenv("RUN_ADDRESS"); runAddrEnv != "" {
			cfg.ServerAddr = runAddrEnv
		}
		if dataBaseURIEnv := os.Getenv("DATABASE_URI"); dataBaseURIEnv != "" {
			cfg.DatabaseDSN = dataBaseURIEnv
		}
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			cfg.LogLevel = logLevelEnv
		}

		cfg.SiteName = defaultSiteName
		if siteNameEnv := os.Getenv("SITE_NAME"); siteNameEnv != "" {
			cfg.SiteName = siteNameEnv
		}

		cfg.AuthTokenKey = os.Getenv("AUTH_TOKEN_KEY")
		cfg.AdminPassHash = os.Getenv("ADMIN_PASSWORD_HASH")

		cfg.Wechat = WechatConfig{
			MchID:          os.Getenv("WECHAT_MCH_ID"),
			CertSerialNo:   os.Getenv("WECHAT_CERT_SERIAL_NO"),
			PrivateKeyPath: os.Getenv("WECHAT_PRIVATE_KEY_PATH"),
			APIv3Key:       os.Getenv("WECHAT_APIV3_KEY"),
		}

		cfg.SMTP = SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     envInt("SMTP_PORT", defaultSMTPPort),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		}

		singleton = &cfg
	})

	return singleton, nil
}

func envInt(key string, def int) int {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return n
}
