package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// LoggerMiddleware mencatat semua request; reqid diambil dari locals
// (di-set middleware request-ID di bootstrap) supaya baris log bisa
// dikorelasikan dengan log [REQ] dan [SIDE-EFFECT].
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Format:     "[${time}] reqid=${locals:reqid} ${ip} - ${method} ${path} - ${status} - ${latency}\n",
	})
}
