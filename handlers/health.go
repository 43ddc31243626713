package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/university-catalog/database"
)

func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	dbStatus := "connected"
	if err := store.HealthCheck(); err != nil {
		dbStatus = "disconnected"
	}

	return c.JSON(fiber.Map{
		"status":    "ok",
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
