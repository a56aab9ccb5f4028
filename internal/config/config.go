package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	BucketResumes string
	UseSSL        bool
	Region        string
}

type AuthConfig struct {
	CookieName      string
	CookieSecure    bool
	SessionTTL      time.Duration
	AdminPathPrefix string
	SignInPath      string
}

type FormsConfig struct {
	CooldownWindow time.Duration
	MaxResumeBytes int64
	DownloadSecret string
	DownloadTTL    time.Duration
}

type AdminSeedConfig struct {
	Email       string
	Password    string
	DisplayName string
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Storage          StorageConfig
	Auth             AuthConfig
	Forms            FormsConfig
	AdminSeed        AdminSeedConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("BRIGHTPATH")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.maxopen", 20)
	v.SetDefault("postgres.maxidle", 5)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.bucketresumes", "brightpath-resumes")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")

	v.SetDefault("auth.cookiename", "bp_session")
	v.SetDefault("auth.cookiesecure", true)
	v.SetDefault("auth.sessionttl", "168h") // 7 days
	v.SetDefault("auth.adminpathprefix", "/admin")
	v.SetDefault("auth.signinpath", "/sign-in")

	v.SetDefault("forms.cooldownwindow", "60s")
	v.SetDefault("forms.maxresumebytes", 10<<20)
	v.SetDefault("forms.downloadttl", "10m")

	v.SetDefault("adminseed.email", "admin@brightpath.example")
	v.SetDefault("adminseed.displayname", "Site Admin")
}
