// Package app assembles the shop service from its configuration.
package app

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"shop/internal/config"
	"shop/internal/database"
	"shop/internal/handlers"
	"shop/internal/repositories"
	"shop/internal/services"
	"shop/internal/storage"
	"shop/internal/views"
	"shop/pkg/rabbitmq"
)

// DriverMemory keeps the catalog in process memory instead of a database.
const DriverMemory = "memory"

// MediaURL is the route prefix under which stored files are served.
const MediaURL = "/media"

// Deps are the collaborators the HTTP app is built from.
type Deps struct {
	Categories repositories.CategoryRepository
	Products   repositories.ProductRepository
	Images     repositories.ProductImageRepository
	Media      *storage.MediaStorage
	// Publisher is optional; nil disables catalog events.
	Publisher services.EventPublisher
	// Clock is optional; it defaults to the current UTC time.
	Clock func() time.Time
}

// App is a running shop service and the resources it owns.
type App struct {
	Fiber *fiber.App
	db    *gorm.DB
	mq    *rabbitmq.Client
}

// New opens the configured storage and broker and builds the HTTP app.
func New(cfg config.Config) (*App, error) {
	a := &App{}
	deps := Deps{}

	switch cfg.DBDriver {
	case DriverMemory:
		store := repositories.NewMemoryStore()
		deps.Categories = store.Categories()
		deps.Products = store.Products()
		deps.Images = store.Images()
	default:
		db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		a.db = db
		deps.Categories = repositories.NewGORMCategoryRepository(db)
		deps.Products = repositories.NewGORMProductRepository(db)
		deps.Images = repositories.NewGORMProductImageRepository(db)
	}

	media, err := storage.NewOSMediaStorage(cfg.MediaRoot)
	if err != nil {
		a.Close()
		return nil, err
	}
	deps.Media = media

	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.mq = mq
		deps.Publisher = mq
	} else {
		log.Println("RABBITMQ_URL is not set. Catalog events are disabled.")
	}

	a.Fiber = NewFiberApp(deps, cfg)
	return a, nil
}

// NewFiberApp wires services and handlers onto a new Fiber app.
func NewFiberApp(deps Deps, cfg config.Config) *fiber.App {
	opts := []services.Option{}
	if deps.Publisher != nil {
		opts = append(opts, services.WithPublisher(deps.Publisher))
	}
	if deps.Clock != nil {
		opts = append(opts, services.WithClock(deps.Clock))
	}

	categoryService := services.NewCategoryService(deps.Categories, opts...)
	productService := services.NewProductService(deps.Products, deps.Images, deps.Media, opts...)
	imageService := services.NewProductImageService(deps.Images, deps.Media, opts...)

	fiberCfg := fiber.Config{
		Views: views.NewEngine(MediaURL),
	}
	if cfg.MaxUploadBytes > 0 {
		fiberCfg.BodyLimit = cfg.MaxUploadBytes
	}
	app := fiber.New(fiberCfg)

	app.Use(recover.New())
	app.Use(logger.New())

	app.Use(MediaURL, filesystem.New(filesystem.Config{
		Root: deps.Media.FileSystem(),
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": deps.Publisher != nil,
		})
	})

	handlers.NewListingHandler(productService).RegisterRoutes(app)

	apiV1 := app.Group("/api/v1")
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(apiV1)
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1)
	handlers.NewProductImageHandler(imageService).RegisterRoutes(apiV1)

	return app
}

// StartEventConsumer logs catalog events from the broker, if one is configured.
func (a *App) StartEventConsumer() error {
	if a.mq == nil {
		return nil
	}
	if err := a.mq.ConsumeCatalogEvents(rabbitmq.LogCatalogEvent); err != nil {
		return fmt.Errorf("failed to start catalog event consumer: %w", err)
	}
	return nil
}

// Close releases the broker connection and the database.
func (a *App) Close() error {
	var errs []error
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors while closing app: %v", errs)
	}
	return nil
}
