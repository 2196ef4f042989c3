package router

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger registra método, rota, status e latência. Loga a rota declarada
// (ex: /api/products/:productId), não o path cru: ids de produto e de tenant
// ficam fora do log.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		log.Printf("%s %s -> %d (%s)", c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
