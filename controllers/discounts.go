package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"paridade/store"

	"github.com/gin-gonic/gin"
)

// A UI edita percentual em 0–100; o store guarda fração em [0,1].
// A conversão mora AQUI (camada de formulário), nunca no store.

type discountGroupOut struct {
	ID                            string   `json:"id"`
	Name                          string   `json:"name"`
	RecommendedDiscountPercentage *float64 `json:"recommended_discount_percentage"`
	Countries                     []string `json:"countries"`
	Coupon                        *string  `json:"coupon"`
	DiscountPercentage            *float64 `json:"discount_percentage"`
}

type discountUpsertInput struct {
	CountryGroupID     string   `json:"country_group_id"`
	Coupon             string   `json:"coupon"`
	DiscountPercentage *float64 `json:"discount_percentage"` // 0–100
}

type discountEditInput struct {
	Upserts   []discountUpsertInput `json:"upserts"`
	Deletions []string              `json:"deletions"` // country_group_ids
}

// GET /api/products/:productId/discounts
// Visão da tela de edição: todo grupo, com países e override existente (0–100).
func GetProductDiscounts(c *gin.Context) {
	userID, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	env := EnvInstance(c)

	groups, err := env.Products.GetProductCountryGroups(c.Param("productId"), userID)
	if err == store.ErrNotFound {
		RespondError(c, "produto não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		RespondError(c, "erro ao listar descontos", http.StatusInternalServerError)
		return
	}

	out := make([]discountGroupOut, 0, len(groups))
	for _, g := range groups {
		item := discountGroupOut{
			ID:   g.ID,
			Name: g.Name,
		}
		if g.RecommendedDiscountPercentage != nil {
			v := *g.RecommendedDiscountPercentage * 100
			item.RecommendedDiscountPercentage = &v
		}
		for _, country := range g.Countries {
			item.Countries = append(item.Countries, country.Name)
		}
		if g.Discount != nil {
			coupon := g.Discount.Coupon
			pct := g.Discount.DiscountPercentage * 100
			item.Coupon = &coupon
			item.DiscountPercentage = &pct
		}
		out = append(out, item)
	}
	RespondSuccess(c, gin.H{"groups": out})
}

// PUT /api/products/:productId/discounts
// Batch atômico: deletions primeiro, depois upserts (last write wins).
// Produto de outro tenant é tratado como não encontrado.
func UpdateProductDiscounts(c *gin.Context) {
	userID, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	env := EnvInstance(c)

	var in discountEditInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, "payload inválido", http.StatusBadRequest)
		return
	}

	fields := map[string]string{}
	upserts := make([]store.DiscountUpsert, 0, len(in.Upserts))
	for i, up := range in.Upserts {
		if strings.TrimSpace(up.CountryGroupID) == "" {
			fields[fmt.Sprintf("upserts[%d].country_group_id", i)] = "obrigatório"
			continue
		}
		// zero é desconto explícito válido; ausente é que não vale
		if up.DiscountPercentage == nil {
			fields[fmt.Sprintf("upserts[%d].discount_percentage", i)] = "obrigatório"
			continue
		}
		pct := *up.DiscountPercentage
		if pct < 0 || pct > 100 {
			fields[fmt.Sprintf("upserts[%d].discount_percentage", i)] = "deve estar entre 0 e 100"
			continue
		}
		upserts = append(upserts, store.DiscountUpsert{
			CountryGroupID:     up.CountryGroupID,
			Coupon:             strings.TrimSpace(up.Coupon),
			DiscountPercentage: pct / 100,
		})
	}
	if len(fields) > 0 {
		RespondValidationError(c, fields)
		return
	}

	applied, err := env.Products.UpdateCountryDiscounts(c.Param("productId"), userID, in.Deletions, upserts)
	if err != nil {
		RespondError(c, "erro ao salvar descontos", http.StatusInternalServerError)
		return
	}
	// not-found/sem ownership é no-op por contrato, mas a UI merece saber
	if !applied {
		RespondError(c, "produto não encontrado", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"saved": true})
}
