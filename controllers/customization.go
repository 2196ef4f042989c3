package controllers

import (
	"net/http"
	"strings"

	"paridade/store"

	"github.com/gin-gonic/gin"
)

// Campos com pointer pra distinguir "não enviado" de "enviado vazio".
type customizationInput struct {
	LocationMessage *string `json:"location_message"`
	BackgroundColor *string `json:"background_color"`
	TextColor       *string `json:"text_color"`
	FontSize        *string `json:"font_size"`
	BannerContainer *string `json:"banner_container"`
	IsSticky        *bool   `json:"is_sticky"`
	ClassPrefix     *string `json:"class_prefix"`
}

// GET /api/products/:productId/customization
func GetProductCustomization(c *gin.Context) {
	userID, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	env := EnvInstance(c)

	customization, err := env.Products.GetProductCustomization(c.Param("productId"), userID)
	if err == store.ErrNotFound {
		RespondError(c, "produto não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		RespondError(c, "erro ao buscar customização", http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, customization)
}

// PUT /api/products/:productId/customization
// Gated: customizar banner é feature de plano (CanCustomizeBanner).
func UpdateProductCustomization(c *gin.Context) {
	userID, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	env := EnvInstance(c)

	if !env.Perms.CanCustomizeBanner(userID) {
		RespondError(c, "seu plano não permite customizar o banner", http.StatusForbidden)
		return
	}

	var in customizationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, "payload inválido", http.StatusBadRequest)
		return
	}

	fields := map[string]any{}
	if in.LocationMessage != nil {
		if strings.TrimSpace(*in.LocationMessage) == "" {
			RespondValidationError(c, map[string]string{"location_message": "obrigatório"})
			return
		}
		fields["location_message"] = *in.LocationMessage
	}
	if in.BackgroundColor != nil {
		fields["background_color"] = *in.BackgroundColor
	}
	if in.TextColor != nil {
		fields["text_color"] = *in.TextColor
	}
	if in.FontSize != nil {
		fields["font_size"] = *in.FontSize
	}
	if in.BannerContainer != nil {
		if strings.TrimSpace(*in.BannerContainer) == "" {
			RespondValidationError(c, map[string]string{"banner_container": "obrigatório"})
			return
		}
		fields["banner_container"] = *in.BannerContainer
	}
	if in.IsSticky != nil {
		fields["is_sticky"] = *in.IsSticky
	}
	if in.ClassPrefix != nil {
		fields["class_prefix"] = *in.ClassPrefix
	}
	if len(fields) == 0 {
		RespondSuccess(c, gin.H{"updated": false})
		return
	}

	updated, err := env.Products.UpdateProductCustomization(c.Param("productId"), userID, fields)
	if err != nil {
		RespondError(c, "erro ao atualizar customização", http.StatusInternalServerError)
		return
	}
	if !updated {
		RespondError(c, "produto não encontrado", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"updated": true})
}
