package router

import (
	"log"

	"paridade/controllers"
	"paridade/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares.
// Três superfícies: o endpoint público do banner (embedado em sites de
// terceiros), os webhooks dos provedores (billing/identidade) e a API do
// dashboard (token do provedor de identidade).
func Initialize(r *gin.Engine, env *controllers.Env) {
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(controllers.SetEnvToContext(env))

	api := r.Group("/api")

	// Público - o script do banner (sem auth, sem Logger: volume alto e o 404 é opaco)
	api.GET("/products/:productId/banner", controllers.GetProductBanner)

	// Webhooks dos colaboradores externos (assinatura HMAC, não token)
	api.POST("/webhooks/billing", Logger(), controllers.BillingWebhook)
	api.POST("/webhooks/identity", Logger(), controllers.IdentityWebhook)

	// Dashboard (token required)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())

	// Products CRUD
	auth.GET("/products", Logger(), controllers.GetProducts)
	auth.POST("/products", Logger(), controllers.CreateProduct)
	auth.GET("/products/:productId", Logger(), controllers.GetProductByID)
	auth.PUT("/products/:productId", Logger(), controllers.UpdateProduct)
	auth.DELETE("/products/:productId", Logger(), controllers.DeleteProduct)

	// Customization
	auth.GET("/products/:productId/customization", Logger(), controllers.GetProductCustomization)
	auth.PUT("/products/:productId/customization", Logger(), controllers.UpdateProductCustomization)

	// Country group discounts
	auth.GET("/products/:productId/discounts", Logger(), controllers.GetProductDiscounts)
	auth.PUT("/products/:productId/discounts", Logger(), controllers.UpdateProductDiscounts)

	// Analytics / assinatura
	auth.GET("/analytics/views-per-day", Logger(), controllers.GetViewsPerDay)
	auth.GET("/subscription", Logger(), controllers.GetSubscription)

	log.Printf("Routes initialized")
}
