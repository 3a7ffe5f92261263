package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PaymentStatus represents the settlement status of a payment
type PaymentStatus string

const (
	StatusCompleted PaymentStatus = "Completed"
	StatusFailed    PaymentStatus = "Failed"
	StatusPending   PaymentStatus = "Pending"
)

// ChargeRequest represents a request to collect a payment
type ChargeRequest struct {
	TransactionID string  `json:"transaction_id" binding:"required"`
	InvoiceID     string  `json:"invoice_id" binding:"required"`
	PhoneNumber   string  `json:"phone_number" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	Type          string  `json:"transaction_type"` // "Pago Factura" or "Recarga"
}

// ChargeResponse represents the outcome of a charge attempt
type ChargeResponse struct {
	TransactionID string        `json:"transaction_id"`
	Status        PaymentStatus `json:"status"`
	SettledAt     *time.Time    `json:"settled_at,omitempty"`
	ErrorCode     string        `json:"error_code,omitempty"`
	ErrorMsg      string        `json:"error_message,omitempty"`
	PlatformID    string        `json:"platform_id"`
	ProcessedAt   time.Time     `json:"processed_at"`
}

// StatusCheckResponse represents a settlement status response
type StatusCheckResponse struct {
	TransactionID string        `json:"transaction_id"`
	Status        PaymentStatus `json:"status"`
	SettledAt     *time.Time    `json:"settled_at,omitempty"`
	ErrorCode     string        `json:"error_code,omitempty"`
	ErrorMsg      string        `json:"error_message,omitempty"`
	PlatformID    string        `json:"platform_id"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status      string    `json:"status"`
	PlatformID  string    `json:"platform_id"`
	Timestamp   time.Time `json:"timestamp"`
	SuccessRate float64   `json:"success_rate"`
}

// MockPlatform simulates a mobile money platform (Nequi, Daviplata)
type MockPlatform struct {
	successRate float64
	minDelay    time.Duration
	maxDelay    time.Duration
	platformID  string
	rng         *rand.Rand
}

// NewMockPlatform creates a new mock platform instance
func NewMockPlatform(name string, successRate float64, minDelay, maxDelay time.Duration) *MockPlatform {
	return &MockPlatform{
		successRate: successRate,
		minDelay:    minDelay,
		maxDelay:    maxDelay,
		platformID:  name + "_" + uuid.New().String()[:8],
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// simulateCharge simulates the payment collection process
func (m *MockPlatform) simulateCharge(req *ChargeRequest) *ChargeResponse {
	delay := m.randomDelay()

	// Bill payments settle faster than wallet top-ups
	if req.Type == "Pago Factura" {
		delay = delay / 2
	}

	// Simulate network delay
	time.Sleep(delay)

	response := &ChargeResponse{
		TransactionID: req.TransactionID,
		PlatformID:    m.platformID,
		ProcessedAt:   time.Now(),
	}

	if m.shouldSucceed() {
		now := time.Now()
		response.Status = StatusCompleted
		response.SettledAt = &now

		log.Info().
			Str("transaction_id", req.TransactionID).
			Str("invoice_id", req.InvoiceID).
			Float64("amount", req.Amount).
			Dur("delay", delay).
			Msg("Payment collected successfully")
	} else {
		response.Status = StatusFailed
		response.ErrorCode = m.randomErrorCode()
		response.ErrorMsg = m.errorMessage(response.ErrorCode)

		log.Warn().
			Str("transaction_id", req.TransactionID).
			Str("invoice_id", req.InvoiceID).
			Str("error_code", response.ErrorCode).
			Msg("Payment collection failed")
	}

	return response
}

func (m *MockPlatform) randomDelay() time.Duration {
	delta := m.maxDelay - m.minDelay
	randomDelta := time.Duration(m.rng.Int63n(int64(delta)))
	return m.minDelay + randomDelta
}

func (m *MockPlatform) shouldSucceed() bool {
	return m.rng.Float64() < m.successRate
}

func (m *MockPlatform) randomErrorCode() string {
	errorCodes := []string{
		"INSUFFICIENT_FUNDS",
		"ACCOUNT_NOT_FOUND",
		"NETWORK_ERROR",
		"TIMEOUT",
		"ACCOUNT_BLOCKED",
		"LIMIT_EXCEEDED",
	}
	return errorCodes[m.rng.Intn(len(errorCodes))]
}

func (m *MockPlatform) errorMessage(code string) string {
	messages := map[string]string{
		"INSUFFICIENT_FUNDS": "The wallet does not have enough balance",
		"ACCOUNT_NOT_FOUND":  "No wallet is registered for this phone number",
		"NETWORK_ERROR":      "Network connectivity issue with platform",
		"TIMEOUT":            "Payment collection timed out",
		"ACCOUNT_BLOCKED":    "The wallet is blocked for collections",
		"LIMIT_EXCEEDED":     "Daily transaction limit exceeded",
	}

	if msg, ok := messages[code]; ok {
		return msg
	}
	return "Unknown error occurred"
}

// Handler struct holds the mock platform and routes
type Handler struct {
	platform *MockPlatform
}

func NewHandler(platform *MockPlatform) *Handler {
	return &Handler{platform: platform}
}

// Charge handles single payment collection requests
func (h *Handler) Charge(c *gin.Context) {
	var req ChargeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	log.Info().
		Str("transaction_id", req.TransactionID).
		Str("invoice_id", req.InvoiceID).
		Float64("amount", req.Amount).
		Msg("Received charge request")

	response := h.platform.simulateCharge(&req)

	statusCode := http.StatusOK
	if response.Status == StatusFailed {
		statusCode = http.StatusAccepted // 202: accepted but failed collection
	}

	c.JSON(statusCode, response)
}

// GetStatus handles settlement status check requests
func (h *Handler) GetStatus(c *gin.Context) {
	transactionID := c.Param("transaction_id")

	if transactionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "transaction_id is required",
		})
		return
	}

	// Simulate API delay
	time.Sleep(100 * time.Millisecond)

	// For demo, return random status
	response := StatusCheckResponse{
		TransactionID: transactionID,
		PlatformID:    h.platform.platformID,
	}

	if h.platform.shouldSucceed() {
		now := time.Now()
		response.Status = StatusCompleted
		response.SettledAt = &now
	} else {
		response.Status = StatusFailed
		response.ErrorCode = "TIMEOUT"
		response.ErrorMsg = "Payment collection timed out"
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(c *gin.Context) {
	// Simulate 5% downtime
	if h.platform.rng.Float64() < 0.05 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "Platform temporarily unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		PlatformID:  h.platform.platformID,
		Timestamp:   time.Now(),
		SuccessRate: h.platform.successRate,
	})
}

// UpdateConfig allows changing platform configuration at runtime
func (h *Handler) UpdateConfig(c *gin.Context) {
	var config struct {
		SuccessRate *float64 `json:"success_rate"`
	}

	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if config.SuccessRate != nil {
		if *config.SuccessRate >= 0 && *config.SuccessRate <= 1.0 {
			h.platform.successRate = *config.SuccessRate
			log.Info().Float64("rate", *config.SuccessRate).Msg("Updated success rate")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Configuration updated",
		"success_rate": h.platform.successRate,
	})
}

// SetupRouter configures all routes
func SetupRouter(handler *Handler) *gin.Engine {
	router := gin.Default()

	// Add request logging middleware
	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Msg("Request processed")
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/payments/charge", handler.Charge)
		v1.GET("/payments/status/:transaction_id", handler.GetStatus)
		v1.GET("/health", handler.HealthCheck)
		v1.PUT("/config", handler.UpdateConfig)
	}

	// Root health check
	router.GET("/health", handler.HealthCheck)

	return router
}

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Get configuration from environment
	port := getEnv("PORT", "8082")
	name := getEnv("PLATFORM_NAME", "Nequi")
	successRate := getEnvFloat("SUCCESS_RATE", 1)
	minDelay := getEnvDuration("MIN_DELAY", 1*time.Second)
	maxDelay := getEnvDuration("MAX_DELAY", 5*time.Second)

	log.Info().
		Str("port", port).
		Str("platform", name).
		Float64("success_rate", successRate).
		Dur("min_delay", minDelay).
		Dur("max_delay", maxDelay).
		Msg("Starting Mock Payment Platform")

	// Create mock platform
	platform := NewMockPlatform(name, successRate, minDelay, maxDelay)
	handler := NewHandler(platform)
	router := SetupRouter(handler)

	// Setup HTTP server
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var f float64
		if _, err := fmt.Sscanf(value, "%f", &f); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
