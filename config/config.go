package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration tree.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	JWT         JWTConfig         `yaml:"jwt"`
	Log         LogConfig         `yaml:"log"`
	Redis       RedisConfig       `yaml:"redis"`
	WebSocket   WebSocketConfig   `yaml:"websocket"`
	Friendship  FriendshipConfig  `yaml:"friendship"`
	ObjectStore ObjectStoreConfig `yaml:"objectStore"`
	RateLimit   RateLimitConfig   `yaml:"rateLimit"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
}

// DatabaseConfig holds the MySQL connection settings.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Charset  string `yaml:"charset"`
	MaxIdle  int    `yaml:"maxIdle"`
	MaxOpen  int    `yaml:"maxOpen"`
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	ExpireTime time.Duration `yaml:"expireTime"`
	Issuer     string        `yaml:"issuer"`
}

// LogConfig holds the zap/lumberjack settings.
type LogConfig struct {
	Level      string `yaml:"level"`
	Filename   string `yaml:"filename"`
	MaxSize    int    `yaml:"maxSize"` // MB per file
	MaxBackups int    `yaml:"maxBackups"`
	MaxAge     int    `yaml:"maxAge"` // days
	Compress   bool   `yaml:"compress"`
}

// RedisConfig holds the redis connection settings.
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// WebSocketConfig holds heartbeat settings for live sessions.
type WebSocketConfig struct {
	PingInterval time.Duration `yaml:"pingInterval"`
	ReadTimeout  time.Duration `yaml:"readTimeout"` // disconnect after silence
}

// FriendshipConfig names the relationship-lifecycle policy choices.
type FriendshipConfig struct {
	// AllowRerequestAfterDecline permits a new pending request over a pair
	// whose previous request was declined. When false any existing row,
	// declined included, blocks a new request.
	AllowRerequestAfterDecline bool `yaml:"allowRerequestAfterDecline"`
}

// ObjectStoreConfig points at the S3-compatible bucket for profile images.
type ObjectStoreConfig struct {
	Region        string `yaml:"region"`
	Bucket        string `yaml:"bucket"`
	Endpoint      string `yaml:"endpoint"`
	PublicBaseURL string `yaml:"publicBaseURL"`
}

// RateLimitConfig throttles the unauthenticated auth endpoints per client IP.
type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
	Burst    int           `yaml:"burst"`
	TTL      time.Duration `yaml:"ttl"`
}

// LoadConfig loads config/config.yaml and then applies env overrides.
// Environment variables win over the file; defaults cover a missing file.
func LoadConfig() *Config {
	config := loadFromYAML("config/config.yaml")
	overrideWithEnvVars(config)
	return config
}

func loadFromYAML(filePath string) *Config {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return getDefaultConfig()
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return getDefaultConfig()
	}
	return &config
}

func overrideWithEnvVars(config *Config) {
	if port := getEnv("SERVER_PORT", ""); port != "" {
		config.Server.Port = port
	}
	if timeout := getEnvDuration("SERVER_READ_TIMEOUT", 0); timeout > 0 {
		config.Server.ReadTimeout = timeout
	}
	if timeout := getEnvDuration("SERVER_WRITE_TIMEOUT", 0); timeout > 0 {
		config.Server.WriteTimeout = timeout
	}
	if timeout := getEnvDuration("SERVER_IDLE_TIMEOUT", 0); timeout > 0 {
		config.Server.IdleTimeout = timeout
	}

	if host := getEnv("DB_HOST", ""); host != "" {
		config.Database.Host = host
	}
	if port := getEnvInt("DB_PORT", 0); port > 0 {
		config.Database.Port = port
	}
	if username := getEnv("DB_USERNAME", ""); username != "" {
		config.Database.Username = username
	}
	if password := getEnv("DB_PASSWORD", ""); password != "" {
		config.Database.Password = password
	}
	if database := getEnv("DB_DATABASE", ""); database != "" {
		config.Database.Database = database
	}
	if charset := getEnv("DB_CHARSET", ""); charset != "" {
		config.Database.Charset = charset
	}
	if maxIdle := getEnvInt("DB_MAX_IDLE", 0); maxIdle > 0 {
		config.Database.MaxIdle = maxIdle
	}
	if maxOpen := getEnvInt("DB_MAX_OPEN", 0); maxOpen > 0 {
		config.Database.MaxOpen = maxOpen
	}

	if secret := getEnv("JWT_SECRET", ""); secret != "" {
		config.JWT.Secret = secret
	}
	if expireTime := getEnvDuration("JWT_EXPIRE_TIME", 0); expireTime > 0 {
		config.JWT.ExpireTime = expireTime
	}
	if issuer := getEnv("JWT_ISSUER", ""); issuer != "" {
		config.JWT.Issuer = issuer
	}

	if level := getEnv("LOG_LEVEL", ""); level != "" {
		config.Log.Level = level
	}
	if filename := getEnv("LOG_FILENAME", ""); filename != "" {
		config.Log.Filename = filename
	}
	if maxSize := getEnvInt("LOG_MAX_SIZE", 0); maxSize > 0 {
		config.Log.MaxSize = maxSize
	}
	if maxBackups := getEnvInt("LOG_MAX_BACKUPS", 0); maxBackups > 0 {
		config.Log.MaxBackups = maxBackups
	}
	if maxAge := getEnvInt("LOG_MAX_AGE", 0); maxAge > 0 {
		config.Log.MaxAge = maxAge
	}

	if host := getEnv("REDIS_HOST", ""); host != "" {
		config.Redis.Host = host
	}
	if port := getEnvInt("REDIS_PORT", 0); port > 0 {
		config.Redis.Port = port
	}
	if password := getEnv("REDIS_PASSWORD", ""); password != "" {
		config.Redis.Password = password
	}
	if db := getEnvInt("REDIS_DB", -1); db >= 0 {
		config.Redis.DB = db
	}

	if d := getEnvDuration("WS_PING_INTERVAL", 0); d > 0 {
		config.WebSocket.PingInterval = d
	}
	if d := getEnvDuration("WS_READ_TIMEOUT", 0); d > 0 {
		config.WebSocket.ReadTimeout = d
	}

	if v := getEnv("FRIENDSHIP_ALLOW_REREQUEST", ""); v != "" {
		config.Friendship.AllowRerequestAfterDecline = getEnvBool("FRIENDSHIP_ALLOW_REREQUEST", false)
	}

	if region := getEnv("OBJECT_STORE_REGION", ""); region != "" {
		config.ObjectStore.Region = region
	}
	if bucket := getEnv("OBJECT_STORE_BUCKET", ""); bucket != "" {
		config.ObjectStore.Bucket = bucket
	}
	if endpoint := getEnv("OBJECT_STORE_ENDPOINT", ""); endpoint != "" {
		config.ObjectStore.Endpoint = endpoint
	}
	if baseURL := getEnv("OBJECT_STORE_PUBLIC_BASE_URL", ""); baseURL != "" {
		config.ObjectStore.PublicBaseURL = baseURL
	}

	if requests := getEnvInt("RATE_LIMIT_REQUESTS", 0); requests > 0 {
		config.RateLimit.Requests = requests
	}
	if window := getEnvDuration("RATE_LIMIT_WINDOW", 0); window > 0 {
		config.RateLimit.Window = window
	}
	if burst := getEnvInt("RATE_LIMIT_BURST", 0); burst > 0 {
		config.RateLimit.Burst = burst
	}
}

func getDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:   "mysql",
			Host:     "localhost",
			Port:     3306,
			Username: "social_user",
			Password: "",
			Database: "social_system",
			Charset:  "utf8mb4",
			MaxIdle:  10,
			MaxOpen:  100,
		},
		JWT: JWTConfig{
			Secret:     "change-me-in-production",
			ExpireTime: 24 * time.Hour,
			Issuer:     "social-system",
		},
		Log: LogConfig{
			Level:      "info",
			Filename:   "logs/app.log",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     6379,
			Password: "",
			DB:       0,
		},
		WebSocket: WebSocketConfig{
			PingInterval: 30 * time.Second,
			ReadTimeout:  90 * time.Second,
		},
		Friendship: FriendshipConfig{
			AllowRerequestAfterDecline: false,
		},
		ObjectStore: ObjectStoreConfig{
			Region: "us-east-1",
			Bucket: "social-system-media",
		},
		RateLimit: RateLimitConfig{
			Requests: 10,
			Window:   time.Minute,
			Burst:    5,
			TTL:      5 * time.Minute,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
