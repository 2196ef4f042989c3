package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"paridade/plans"
	"paridade/store"

	"github.com/gin-gonic/gin"
)

// GET /api/analytics/views-per-day
// Query params:
// - days=N (optional, default: 30, max: 90)
// - tz=IANA timezone (optional, default: UTC)
// Retorna uma série diária com exatamente N buckets (inclui dias com 0),
// do mais antigo pro mais novo, no timezone do caller.
func GetViewsPerDay(c *gin.Context) {
	userID, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	env := EnvInstance(c)

	if !env.Perms.CanAccessAnalytics(userID) {
		RespondError(c, "seu plano não inclui analytics", http.StatusForbidden)
		return
	}

	days := clampInt(queryInt(c, "days", 30), 1, 90)

	tz := time.UTC
	if name := strings.TrimSpace(c.Query("tz")); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			RespondError(c, "tz inválido (use nome IANA, ex: America/Sao_Paulo)", http.StatusBadRequest)
			return
		}
		tz = loc
	}

	series, err := env.Views.ViewsPerDay(userID, days, tz)
	if err != nil {
		RespondError(c, "erro ao agregar views", http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{
		"days":   days,
		"tz":     tz.String(),
		"series": series,
	})
}

// GET /api/subscription
// Tier atual, limites, uso do mês (views + produtos) e a escada de planos
// disponíveis (pra página de upgrade).
func GetSubscription(c *gin.Context) {
	userID, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	env := EnvInstance(c)

	tier, err := env.Subscriptions.GetUserTier(userID)
	if err == store.ErrNotFound {
		RespondError(c, "assinatura não encontrada", http.StatusNotFound)
		return
	}
	if err != nil {
		RespondError(c, "erro ao buscar assinatura", http.StatusInternalServerError)
		return
	}

	used, err := env.Views.CountViews(userID, store.MonthStart(time.Now()))
	if err != nil {
		RespondError(c, "erro ao contar views", http.StatusInternalServerError)
		return
	}
	productCount, err := env.Products.GetProductCount(userID)
	if err != nil {
		RespondError(c, "erro ao contar produtos", http.StatusInternalServerError)
		return
	}

	available := make([]gin.H, 0, len(plans.All()))
	for _, t := range plans.All() {
		available = append(available, gin.H{
			"name":                   t.Name,
			"price_cents":            t.PriceCents,
			"max_number_of_products": t.MaxNumberOfProducts,
			"max_number_of_visits":   t.MaxNumberOfVisits,
			"can_access_analytics":   t.CanAccessAnalytics,
			"can_customize_banner":   t.CanCustomizeBanner,
			"can_remove_branding":    t.CanRemoveBranding,
			"current":                t.Name == tier.Name,
		})
	}

	RespondSuccess(c, gin.H{
		"tier": tier.Name,
		"limits": gin.H{
			"max_number_of_products": tier.MaxNumberOfProducts,
			"max_number_of_visits":   tier.MaxNumberOfVisits,
			"can_access_analytics":   tier.CanAccessAnalytics,
			"can_customize_banner":   tier.CanCustomizeBanner,
			"can_remove_branding":    tier.CanRemoveBranding,
		},
		"usage": gin.H{
			"views_this_month": used,
			"products":         productCount,
		},
		"tiers": available,
	})
}

// ------------------------------
// Helpers
// ------------------------------

func queryInt(c *gin.Context, key string, def int) int {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return def
	}
	var n int
	_, err := fmt.Sscanf(v, "%d", &n)
	if err != nil {
		return def
	}
	return n
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
