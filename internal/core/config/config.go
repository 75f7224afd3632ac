package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
	// 每 IP 限速 / 并发上限 / 请求超时
	RateLimitRPS      float64
	RateLimitBurst    int
	MaxConcurrent     int64
	RequestTimeoutSec int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level string
	JSON  bool
	// File 非空时同时写入文件并按大小切割
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Session 签名 cookie 中的登录身份
type Session struct {
	Secret     string
	Issuer     string
	CookieName string
	TTLMin     int
	Secure     bool
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSec   int    `mapstructure:"ttlsec"`
}

type DB struct {
	// Driver 为空时按 DSN 前缀推断：postgres / mysql / sqlite
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Todo struct {
	// StrictOwnership 删除已保存条目前校验归属
	StrictOwnership bool
}

type Config struct {
	App     App
	Log     Log
	Session Session
	DB      DB
	Redis   Redis `mapstructure:"redis"`
	Todo    Todo
}

var ErrMissingSecret = errors.New("session secret is required (APP_SESSION_SECRET, SECRET_KEY or SQL_ALCHEMY_KEY)")

const defaultPath = "./configs/config.local.yaml"

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "todo")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.http.ratelimitrps", 50)
	v.SetDefault("app.http.ratelimitburst", 100)
	v.SetDefault("app.http.maxconcurrent", 300)
	v.SetDefault("app.http.requesttimeoutsec", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.maxsizemb", 100)
	v.SetDefault("log.maxbackups", 7)
	v.SetDefault("log.maxagedays", 30)
	v.SetDefault("log.file", "")
	v.SetDefault("log.compress", false)

	v.SetDefault("session.issuer", "todo")
	v.SetDefault("session.cookiename", "todo_session")
	v.SetDefault("session.ttlmin", 7*24*60)
	v.SetDefault("session.secure", false)

	v.SetDefault("db.driver", "")
	v.SetDefault("db.dsn", "sqlite:///todo.db")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 5)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.automigrate", true)
	v.SetDefault("db.loglevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttlsec", 300)

	v.SetDefault("todo.strictownership", false)
}

// Load 读取配置：默认值 < YAML 文件（可缺省） < 环境变量（APP_ 前缀）
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if path == "" {
		path = defaultPath
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 兼容部署平台的常用变量名
	_ = v.BindEnv("session.secret", "APP_SESSION_SECRET", "SECRET_KEY", "SQL_ALCHEMY_KEY")
	_ = v.BindEnv("db.dsn", "APP_DB_DSN", "DATABASE_URL")
	_ = v.BindEnv("app.http.port", "APP_APP_HTTP_PORT", "PORT")

	if err := v.ReadInConfig(); err != nil {
		// 未指定路径且默认文件不存在时只用默认值 + 环境变量
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if strings.TrimSpace(c.Session.Secret) == "" {
		return nil, ErrMissingSecret
	}
	return &c, nil
}
