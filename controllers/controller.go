package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

// RespondValidationError devolve 400 com mensagem por campo.
func RespondValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(200, payload)
}

// RespondOpaqueNotFound é o 404 do endpoint público do banner: sem corpo, sem
// distinguir "produto não existe" de "referer errado" de "quota estourada".
func RespondOpaqueNotFound(c *gin.Context) {
	c.Status(http.StatusNotFound)
}
