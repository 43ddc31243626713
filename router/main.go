package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/university-catalog/database"
	"github.com/sahilchouksey/university-catalog/handlers"
	university_handlers "github.com/sahilchouksey/university-catalog/handlers/university"
	"github.com/sahilchouksey/university-catalog/services"
	"github.com/sahilchouksey/university-catalog/utils"
	"github.com/sahilchouksey/university-catalog/utils/cache"
	"github.com/sahilchouksey/university-catalog/utils/middleware"
)

func SetupRoutes(app *fiber.App, store database.Storage, assets services.AssetStore) {
	// Initialize Redis cache for university reads
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	var catalogCache services.Cache
	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Read caching will be disabled.", err)
	} else {
		catalogCache = redisCache
	}

	reconciler := services.NewAssetReconciler(assets, store, utils.NewLogger())
	catalogService := services.NewCatalogService(store, reconciler, catalogCache)
	catalogHandler := university_handlers.NewCatalogHandler(catalogService)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	// API v1 group
	api := app.Group("/api/v1")

	// Universities routes
	universities := api.Group("/universities")
	universities.Get("/search", catalogHandler.SearchCatalog)
	universities.Get("/", catalogHandler.ListUniversities)
	universities.Get("/:id", catalogHandler.GetUniversity)
	universities.Post("/", catalogHandler.CreateUniversity)
	universities.Put("/:id", catalogHandler.UpdateUniversity)
	universities.Delete("/:id", catalogHandler.DeleteUniversity)

	// Categories routes (nested under universities)
	categories := universities.Group("/:id/categories")
	categories.Post("/", catalogHandler.AddCategory)
	categories.Put("/:categoryId", catalogHandler.UpdateCategory)
	categories.Delete("/:categoryId", catalogHandler.DeleteCategory)

	// Courses routes (nested under categories)
	courses := categories.Group("/:categoryId/courses")
	courses.Post("/", catalogHandler.AddCourse)
	courses.Put("/:courseId", catalogHandler.UpdateCourse)
	courses.Delete("/:courseId", catalogHandler.DeleteCourse)
}
