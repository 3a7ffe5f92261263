package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/camilogv/billing-gateway/internal/config"
	"github.com/camilogv/billing-gateway/internal/handlers"
	"github.com/camilogv/billing-gateway/internal/repository"
	"github.com/camilogv/billing-gateway/internal/services"
	xhttp "github.com/camilogv/billing-gateway/pkg/http"
	"github.com/camilogv/billing-gateway/pkg/logger"
	"github.com/camilogv/billing-gateway/pkg/pg"
	"github.com/camilogv/billing-gateway/pkg/prom"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	// transport (tcp for now)
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:         config.Get().PostgresReadUser,
		Host:         config.Get().PostgresReadHost,
		Port:         config.Get().PostgresReadPort,
		Password:     config.Get().PostgresReadPassword,
		Database:     config.Get().PostgresReadDatabase,
		MaxOpenConns: config.Get().PostgresMaxOpenConns,
	}
	writeConf := pg.Config{
		User:         config.Get().PostgresWriteUser,
		Host:         config.Get().PostgresWriteHost,
		Port:         config.Get().PostgresWritePort,
		Password:     config.Get().PostgresWritePassword,
		Database:     config.Get().PostgresWriteDatabase,
		MaxOpenConns: config.Get().PostgresMaxOpenConns,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	if config.Get().AppDebugMetricsAddr != "" {
		var hostname string
		hostname, err = os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		err = prom.Create(hostname, config.Get().AppEnv, config.Get().PromNamespace)
		if err != nil {
			logger.Error("failed creating prometheus metrics", "error", err)
			return
		}
		metricsURI := config.Get().AppDebugMetricsURI
		if metricsURI == "" {
			metricsURI = "/metrics"
		}
		go func() {
			prom.ListenAndServer(config.Get().AppDebugMetricsAddr, metricsURI)
		}()
	}

	customerRepo := repository.NewCustomerRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// services
	customerService := services.NewCustomerService(customerRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, customerRepo)
	transactionService := services.NewTransactionService(transactionRepo, invoiceRepo)
	reportService := services.NewReportService(reportRepo)
	healthService := services.NewHealthService()

	// v1 handlers
	customerHandler := handlers.NewCustomerHandler(customerService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api/v1")
	handlers.RegisterCustomerRoutes(g, customerHandler)
	handlers.RegisterInvoiceRoutes(g, invoiceHandler)
	handlers.RegisterTransactionRoutes(g, transactionHandler)
	handlers.RegisterReportRoutes(g, reportHandler)
	handlers.RegisterHealthRoutes(g, healthHandler)

	// anything outside the API is served from the static UI directory
	s.Router.NotFound = xhttp.StaticHandler(config.Get().StaticDir)

	// Create new server
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	select {
	case <-c:
		s.Shutdown()
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
