package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows any origin without credentials.
func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodHead, fiber.MethodOptions}, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, " + RequestIDHeader,
		ExposeHeaders:    RequestIDHeader,
		AllowCredentials: false,
	})
}
