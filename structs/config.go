package structs

import "time"

type Config struct {
	Server   *ServerConfig
	Cors     *CorsConfig
	Database *DatabaseConfig
	Cache    *CacheConfig
	Catalog  *CatalogConfig
	Telegram *TelegramConfig
}

type ServerConfig struct {
	AppName        string        // Solemate
	Environment    string        // development, production
	Port           string        // :8082
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration // in seconds
	MaxIdleTime  time.Duration // in seconds
	ReadTimeout  time.Duration // in seconds
	WriteTimeout time.Duration // in seconds
}

type CacheConfig struct {
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	MaxIdleConns    int
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	ProductTTL      time.Duration
	SessionTTL      time.Duration
}

// StockPolicy decides how duplicate stock rows for the same
// (variant, size) pair are interpreted. The stock table carries no
// uniqueness constraint on the pair, so both readings are valid.
type StockPolicy string

const (
	StockPolicySum    StockPolicy = "sum"    // quantities of duplicate rows are added up
	StockPolicyLatest StockPolicy = "latest" // the most recently inserted row wins
)

type CatalogConfig struct {
	PageSize    int
	StockPolicy StockPolicy
}

type TelegramConfig struct {
	BotToken string
	ChatID   string
	APIBase  string
	Timeout  time.Duration
}
