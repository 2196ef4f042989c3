package middleware

import "github.com/gin-gonic/gin"

// CORSMiddleware libera CORS amplo. Necessário aqui: o script do banner é
// buscado cross-origin pelos sites dos clientes; quem limita embed indevido é
// a checagem de referer do endpoint, não o CORS.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", "*")
		header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
