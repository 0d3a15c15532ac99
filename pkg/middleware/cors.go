package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"library-api/pkg/config"
)

// CORS allows the configured web origins to call the API from a browser.
// Requests from unlisted origins pass through without CORS headers, so the
// browser blocks them. Preflight OPTIONS requests are answered with 204.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		for _, allowed := range cfg.AllowOrigins {
			if allowed == "*" || allowed == origin {
				c.Header("Access-Control-Allow-Origin", allowed)
				c.Header("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
				c.Header("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
				if cfg.AllowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				break
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
