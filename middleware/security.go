package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders adds security headers to all responses
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevent clickjacking attacks
		c.Header("X-Frame-Options", "DENY")

		// Prevent MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// JSON API: nothing should ever render as a page
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Strict Transport Security (HSTS) - only if using HTTPS
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		}

		c.Next()
	}
}

// RemovePoweredBy removes or modifies the Server header
func RemovePoweredBy() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Server", "")
		c.Next()
	}
}
