package app

import (
	"net/url"
	"strings"
	"time"

	"github.com/cybaemtech/site-core/internal/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// corsMiddleware allows the configured origins plus localhost and Replit
// preview hosts. Requests without an Origin header (curl, health checks)
// always pass.
func corsMiddleware(cfg *config.AppConfig) gin.HandlerFunc {
	allowed := cfg.AllowedOrigins
	dev := cfg.IsDev()

	return cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		AllowOriginFunc: func(origin string) bool {
			if origin == "" || dev {
				return true
			}
			host := originHost(origin)
			for _, pattern := range allowed {
				if matchOrigin(pattern, origin, host) {
					return true
				}
			}
			return isLocalhost(host) || strings.HasSuffix(host, ".replit.dev")
		},
	})
}

// originHost returns the "host[:port]" portion of an origin URL.
func originHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

// matchOrigin reports whether the origin matches a configured pattern,
// either exactly or by "*." wildcard on the host.
func matchOrigin(pattern, origin, host string) bool {
	if pattern == origin || pattern == host {
		return true
	}
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(host, pattern[1:])
	}
	return false
}

func isLocalhost(host string) bool {
	bare := host
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		bare = host[:idx]
	}
	return bare == "localhost" || bare == "127.0.0.1" || bare == "0.0.0.0"
}
