package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret string

	// Telegram admin pipeline. When the token or chat ID is empty the
	// notification feature is disabled rather than retried.
	TelegramBotToken      string
	TelegramChatID        string
	TelegramWebhookSecret string

	// Pricing
	PriceRefreshInterval time.Duration
	CoinGeckoURL         string

	// Trading
	MinPurchaseUSD float64

	// Public chain endpoints. EVM RPC URLs come from the chain table;
	// these cover the non-EVM families.
	XRPLEndpoint    string
	SolanaEndpoint  string
	TronEndpoint    string
	BitcoinEndpoint string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "xrpvault"),
		DBPassword: getEnv("DB_PASSWORD", "xrpvault"),
		DBName:     getEnv("DB_NAME", "xrpvault"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		TelegramBotToken:      getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:        getEnv("TELEGRAM_CHAT_ID", ""),
		TelegramWebhookSecret: getEnv("TELEGRAM_WEBHOOK_SECRET", ""),

		CoinGeckoURL: getEnv("COINGECKO_URL", "https://api.coingecko.com/api/v3/simple/price"),

		XRPLEndpoint:    getEnv("XRPL_ENDPOINT", "https://xrplcluster.com"),
		SolanaEndpoint:  getEnv("SOLANA_ENDPOINT", "https://api.mainnet-beta.solana.com"),
		TronEndpoint:    getEnv("TRON_ENDPOINT", "https://api.trongrid.io"),
		BitcoinEndpoint: getEnv("BITCOIN_ENDPOINT", "https://blockchain.info"),
	}

	refreshStr := getEnv("PRICE_REFRESH_INTERVAL", "30s")
	refresh, err := time.ParseDuration(refreshStr)
	if err != nil {
		log.Printf("Warning: invalid PRICE_REFRESH_INTERVAL value '%s', falling back to 30s\n", refreshStr)
		refresh = 30 * time.Second
	}
	config.PriceRefreshInterval = refresh

	minStr := getEnv("MIN_PURCHASE_USD", "2500")
	minUSD, err := strconv.ParseFloat(minStr, 64)
	if err != nil {
		log.Printf("Warning: invalid MIN_PURCHASE_USD value '%s', falling back to 2500\n", minStr)
		minUSD = 2500
	}
	config.MinPurchaseUSD = minUSD

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
