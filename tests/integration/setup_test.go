package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"xrpvault/internal/events"
	"xrpvault/internal/handlers"
	"xrpvault/internal/logger"
	"xrpvault/internal/middleware"
	"xrpvault/internal/models"
	"xrpvault/internal/pricing"
	"xrpvault/internal/services"
	"xrpvault/internal/validator"
)

// webhookSecret authenticates Telegram webhook deliveries in tests.
const webhookSecret = "test-webhook-secret"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Hub    *events.Hub
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Wallet{},
		&models.Transaction{},
		&models.KYCVerification{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite. The price service is never started so quotes run against the
// hardcoded default snapshot, and the Telegram notifier is unconfigured so
// every send is a no-op.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	priceService := pricing.NewService("", time.Minute)
	hub := events.NewHub()

	// Services
	telegramService := services.NewTelegramService("", "")
	userService := services.NewUserService(db)
	walletService := services.NewWalletService(db, telegramService)
	transactionService := services.NewTransactionService(db, priceService, hub, 2500)
	kycService := services.NewKYCService(db, hub, telegramService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	walletHandler := handlers.NewWalletHandler(walletService)
	priceHandler := handlers.NewPriceHandler(priceService)
	tradeHandler := handlers.NewTradeHandler(transactionService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, hub)
	kycHandler := handlers.NewKYCHandler(kycService)
	telegramHandler := handlers.NewTelegramHandler(kycService, telegramService, webhookSecret)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	v1.GET("/prices", priceHandler.Get)
	v1.POST("/telegram/webhook", telegramHandler.Webhook)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	wallets := protected.Group("/wallets")
	wallets.POST("/generate", walletHandler.Generate)
	wallets.POST("/import", walletHandler.Import)
	wallets.GET("", walletHandler.List)
	wallets.GET("/:id", walletHandler.Get)
	wallets.DELETE("/:id", walletHandler.Delete)

	swap := protected.Group("/swap")
	swap.POST("/quote", tradeHandler.SwapQuote)
	swap.POST("/execute", tradeHandler.SwapExecute)

	buy := protected.Group("/buy")
	buy.POST("/quote", tradeHandler.BuyQuote)
	buy.POST("/execute", tradeHandler.BuyExecute)

	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.List)
	transactions.GET("/:id", transactionHandler.Get)

	kyc := protected.Group("/kyc")
	kyc.GET("", kycHandler.Get)
	kyc.PUT("/personal-info", kycHandler.SavePersonalInfo)
	kyc.PUT("/address", kycHandler.SaveAddress)
	kyc.PUT("/documents", kycHandler.SaveDocuments)
	kyc.POST("/submit", kycHandler.Submit)
	kyc.POST("/retry", kycHandler.Retry)

	return &testApp{DB: db, Hub: hub, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// webhook posts a Telegram update to the webhook route with the given secret header.
func (app *testApp) webhook(body, secret string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/v1/telegram/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Telegram-Bot-Api-Secret-Token", secret)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"full_name":"Test User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// completeKYC walks all verification steps, submits, and has the reviewer
// approve through the Telegram webhook, leaving the user able to trade.
func (app *testApp) completeKYC(t *testing.T, token, userID string) {
	t.Helper()

	steps := []struct {
		method, path, body string
	}{
		{"PUT", "/api/v1/kyc/personal-info", `{"first_name":"Test","last_name":"User","date_of_birth":"1990-01-15"}`},
		{"PUT", "/api/v1/kyc/address", `{"address_line1":"1 Main St","city":"Singapore","country":"SG"}`},
		{"PUT", "/api/v1/kyc/documents", `{"document_type":"passport","document_front_url":"https://files.test/front.jpg","selfie_url":"https://files.test/selfie.jpg"}`},
		{"POST", "/api/v1/kyc/submit", ""},
	}
	for _, step := range steps {
		rec := app.request(step.method, step.path, step.body, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s %s failed: %d %s", step.method, step.path, rec.Code, rec.Body.String())
		}
	}

	rec := app.webhook(callbackUpdate("kyc_approve", userID), webhookSecret)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve webhook failed: %d %s", rec.Code, rec.Body.String())
	}
}

// callbackUpdate builds a Telegram update carrying an inline button press.
func callbackUpdate(action, userID string) string {
	return fmt.Sprintf(`{
		"update_id": 1,
		"callback_query": {
			"id": "cb-1",
			"data": "%s:%s",
			"message": {"message_id": 10, "text": "KYC submission", "chat": {"id": 99}}
		}
	}`, action, userID)
}
