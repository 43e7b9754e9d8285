package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	OCR         OCRConfig       `mapstructure:"ocr"`
	Data        DataConfig      `mapstructure:"data"`
	Suggest     SuggestConfig   `mapstructure:"suggest"`
	Cache       CacheConfig     `mapstructure:"cache"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Image       ImageConfig     `mapstructure:"image"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// OCRConfig 遠端 OCR 引擎配置
type OCRConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// DataConfig 參考資料檔案路徑設定
type DataConfig struct {
	RecipesPath       string `mapstructure:"recipes_path"`
	NutritionPath     string `mapstructure:"nutrition_path"`
	SubstitutionsPath string `mapstructure:"substitutions_path"`
	LocalDishesPath   string `mapstructure:"local_dishes_path"`
	ProfilePath       string `mapstructure:"profile_path"`
	ShoppingListPath  string `mapstructure:"shopping_list_path"`
}

// SuggestConfig 食譜推薦設定
type SuggestConfig struct {
	TopN           int     `mapstructure:"top_n"`
	MatchThreshold float64 `mapstructure:"match_threshold"`
	FuzzyCutoff    float64 `mapstructure:"fuzzy_cutoff"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"` // memory 或 redis
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisDB         int           `mapstructure:"redis_db"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// ImageConfig 圖片配置
type ImageConfig struct {
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件
	if err := godotenv.Load(); err != nil {
		return nil, err
	}

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("ocr.enabled", "OCR_ENABLED")
	viper.BindEnv("ocr.endpoint", "OCR_ENDPOINT")
	viper.BindEnv("ocr.api_key", "OCR_API_KEY")
	viper.BindEnv("data.recipes_path", "DATA_RECIPES_PATH")
	viper.BindEnv("data.nutrition_path", "DATA_NUTRITION_PATH")
	viper.BindEnv("data.substitutions_path", "DATA_SUBSTITUTIONS_PATH")
	viper.BindEnv("data.local_dishes_path", "DATA_LOCAL_DISHES_PATH")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.backend", "CACHE_BACKEND")
	viper.BindEnv("cache.redis_addr", "REDIS_ADDR")
	viper.BindEnv("cache.redis_db", "REDIS_DB")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	fmt.Println("Loading configuration", "ocr_endpoint:", viper.GetString("ocr.endpoint"), "ocr_api_key:", maskAPIKey(viper.GetString("ocr.api_key")))

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "culinalens")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// OCR 引擎設定
	viper.SetDefault("ocr.enabled", false)
	viper.SetDefault("ocr.endpoint", "http://localhost:8884")
	viper.SetDefault("ocr.timeout", "60s")

	// 參考資料檔案設定
	viper.SetDefault("data.recipes_path", "data/recipes.json")
	viper.SetDefault("data.nutrition_path", "data/nutrition.csv")
	viper.SetDefault("data.substitutions_path", "data/substitutions.json")
	viper.SetDefault("data.local_dishes_path", "data/local_dishes.json")
	viper.SetDefault("data.profile_path", "data/user_preferences.json")
	viper.SetDefault("data.shopping_list_path", "data/shopping_list_cache.json")

	// 推薦設定
	viper.SetDefault("suggest.top_n", 10)
	viper.SetDefault("suggest.match_threshold", 0.6)
	viper.SetDefault("suggest.fuzzy_cutoff", 0.84)

	// 快取設定
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.redis_addr", "localhost:6379")
	viper.SetDefault("cache.redis_db", 0)
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 圖片設定
	viper.SetDefault("image.max_size_bytes", 10*1024*1024) // 10MB

	// dedup window 預設
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.Backend != "memory" && config.Cache.Backend != "redis" {
			return fmt.Errorf("invalid cache backend: %s", config.Cache.Backend)
		}
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	// 驗證推薦設定
	if config.Suggest.TopN <= 0 {
		return fmt.Errorf("invalid suggest top_n")
	}
	if config.Suggest.MatchThreshold < 0 || config.Suggest.MatchThreshold > 1 {
		return fmt.Errorf("invalid suggest match threshold")
	}
	if config.Suggest.FuzzyCutoff <= 0 || config.Suggest.FuzzyCutoff > 1 {
		return fmt.Errorf("invalid suggest fuzzy cutoff")
	}

	// 驗證 OCR 設定
	if config.OCR.Enabled && config.OCR.Endpoint == "" {
		return fmt.Errorf("ocr endpoint is required when ocr is enabled")
	}

	return nil
}
