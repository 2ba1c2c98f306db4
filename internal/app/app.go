// Package app wires configuration, storage, services and transports together.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"tienda/internal/config"
	"tienda/internal/database"
	"tienda/internal/handlers"
	"tienda/internal/middleware"
	"tienda/internal/repositories"
	"tienda/internal/services"
	"tienda/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

// App holds the long-lived dependencies of one tienda process.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Products *services.ProductService
	Sales    *services.SaleService
	Auth     *services.AuthService

	// AccessLog receives the HTTP access log; os.Stdout when nil.
	AccessLog io.Writer

	db *gorm.DB // nil for the memory driver
	mq *rabbitmq.Client
}

// New opens the configured store and builds the services. When RABBITMQ_URL
// is set but the broker is unreachable, events are disabled and a warning is logged.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{Config: cfg, Logger: logger}

	var (
		productRepo repositories.ProductRepository
		saleRepo    repositories.SaleRepository
		staffRepo   repositories.StaffRepository
		uow         repositories.UnitOfWork
	)
	if cfg.DBDriver == database.DriverMemory {
		products := repositories.NewMemoryProductRepository()
		sales := repositories.NewMemorySaleRepository()
		productRepo, saleRepo = products, sales
		uow = repositories.NewMemoryUnitOfWork(products, sales)
		staffRepo = repositories.NewMemoryStaffRepository()
		logger.Info("using in-memory store")
	} else {
		db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN, logger)
		if err != nil {
			return nil, err
		}
		a.db = db
		productRepo = repositories.NewGORMProductRepository(db, logger)
		saleRepo = repositories.NewGORMSaleRepository(db)
		staffRepo = repositories.NewGORMStaffRepository(db)
		uow = repositories.NewGORMUnitOfWork(db, logger)
	}

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger)
		if err != nil {
			logger.Warn("inventory events disabled", "error", err)
		} else {
			a.mq = mq
			publisher = mq
		}
	}

	a.Products = services.NewProductService(productRepo, publisher, logger)
	a.Sales = services.NewSaleService(saleRepo, uow, publisher, logger)
	a.Auth = services.NewAuthService(staffRepo, cfg.JWTSecret, logger)
	return a, nil
}

// CheckStorage reports whether the store can be reached.
func (a *App) CheckStorage() error {
	if a.db == nil {
		return nil
	}
	return database.Ping(a.db)
}

// StorageName describes the active store for humans.
func (a *App) StorageName() string {
	if a.db == nil {
		return database.DriverMemory
	}
	return a.Config.DBDriver
}

// EventsEnabled reports whether inventory events reach a broker.
func (a *App) EventsEnabled() bool {
	return a.mq != nil
}

// NewHTTP builds the Fiber application serving the REST API.
func (a *App) NewHTTP() *fiber.App {
	accessLog := a.AccessLog
	if accessLog == nil {
		accessLog = os.Stdout
	}

	httpApp := fiber.New(fiber.Config{AppName: "tienda"})
	httpApp.Use(fiberlogger.New(fiberlogger.Config{Output: accessLog}))

	httpApp.Get("/health", a.handleHealth)

	apiV1 := httpApp.Group("/api/v1")
	handlers.NewAuthHandler(a.Auth, a.Logger).RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(a.Auth))
	handlers.NewProductHandler(a.Products, a.Config.LowStockThreshold, a.Logger).RegisterRoutes(protected)
	handlers.NewSaleHandler(a.Sales, a.Logger).RegisterRoutes(protected)
	return httpApp
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	status := fiber.StatusOK
	body := fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Format(time.RFC3339),
		"storage": a.StorageName(),
		"events":  a.EventsEnabled(),
	}
	if err := a.CheckStorage(); err != nil {
		status = fiber.StatusServiceUnavailable
		body["status"] = "unhealthy"
		body["error"] = err.Error()
	}
	return c.Status(status).JSON(body)
}

// Close releases the broker connection and the database pool.
func (a *App) Close() error {
	var errs []error
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close rabbitmq client: %w", err))
		}
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
