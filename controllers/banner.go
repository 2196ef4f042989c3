package controllers

import (
	"log"
	"net/http"
	"strings"

	"paridade/banner"
	"paridade/store"
	"paridade/workers"

	"github.com/gin-gonic/gin"
)

// Headers de país preenchidos por CDN/edge na frente do serviço.
// A gente não implementa base de geolocalização — só consome o que a borda dá.
var countryHeaders = []string{
	"CF-IPCountry",
	"X-Vercel-IP-Country",
	"X-Country-Code",
}

// GET /api/products/:productId/banner
//
// Endpoint público (embedado em páginas de terceiros, sem auth). A máquina de
// estados: geografia -> produto+referer -> desconto -> gate de plano -> view ->
// script. Qualquer falha vira o MESMO 404 opaco: quem chama não descobre se o
// produto existe.
func GetProductBanner(c *gin.Context) {
	env := EnvInstance(c)
	if env == nil {
		RespondOpaqueNotFound(c)
		return
	}

	productID := strings.TrimSpace(c.Param("productId"))
	if productID == "" {
		RespondOpaqueNotFound(c)
		return
	}

	refererURL := c.GetHeader("Referer")
	if refererURL == "" {
		refererURL = c.GetHeader("Origin")
	}
	if refererURL == "" {
		RespondOpaqueNotFound(c)
		return
	}

	countryCode := countryCodeFromRequest(c, env.Config.Banner.TestCountryCode)
	if countryCode == "" {
		RespondOpaqueNotFound(c)
		return
	}

	data, err := env.Products.GetProductForBanner(productID, countryCode, refererURL)
	if err != nil {
		if err != store.ErrNotFound {
			log.Printf("banner: resolve error product=%s: %v", productID, err)
		}
		RespondOpaqueNotFound(c)
		return
	}

	// plano sem direito a banner para de servir em silêncio, sem erro
	if !env.Perms.CanShowDiscountBanner(data.Product.UserID) {
		RespondOpaqueNotFound(c)
		return
	}

	// best-effort, fora do caminho de resposta
	if env.Recorder != nil {
		countryID := data.Country.ID
		env.Recorder.Record(workers.PendingView{
			ProductID: data.Product.ID,
			CountryID: &countryID,
			UserID:    data.Product.UserID,
		})
	}

	js := banner.Script(banner.Data{
		Customization:     data.Customization,
		CountryName:       data.Country.Name,
		Coupon:            data.Coupon,
		Percentage:        data.DiscountPercentage,
		CanRemoveBranding: env.Perms.CanRemoveBranding(data.Product.UserID),
		BrandingURL:       env.Config.Banner.BrandingURL,
	})

	c.Data(http.StatusOK, "text/javascript; charset=utf-8", []byte(js))
}

func countryCodeFromRequest(c *gin.Context, fallback string) string {
	for _, h := range countryHeaders {
		v := strings.ToUpper(strings.TrimSpace(c.GetHeader(h)))
		// "XX" é o valor da Cloudflare pra país desconhecido
		if v != "" && v != "XX" {
			return v
		}
	}
	return strings.ToUpper(strings.TrimSpace(fallback))
}
