package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"paridade/plans"
)

func TestCreateProductEnforcesPlanLimit(t *testing.T) {
	env := newTestEnv(t)
	r := newTestRouter(env)
	seedTenant(t, env, "u1") // Free: 1 produto
	auth := map[string]string{"Authorization": bearerToken(t, env, "u1")}

	body := []byte(`{"name":"Loja","url":"https://loja.example.com"}`)
	if w := doRequest(r, http.MethodPost, "/api/products", body, auth); w.Code != http.StatusCreated {
		t.Fatalf("primeiro produto: status %d corpo %s", w.Code, w.Body.String())
	}

	body = []byte(`{"name":"Outra","url":"https://outra.example.com"}`)
	if w := doRequest(r, http.MethodPost, "/api/products", body, auth); w.Code != http.StatusForbidden {
		t.Errorf("acima do limite do Free: status %d, esperado 403", w.Code)
	}
}

func TestCreateProductValidatesFields(t *testing.T) {
	env := newTestEnv(t)
	r := newTestRouter(env)
	seedTenant(t, env, "u1")
	auth := map[string]string{"Authorization": bearerToken(t, env, "u1")}

	w := doRequest(r, http.MethodPost, "/api/products", []byte(`{"name":"","url":"semponto"}`), auth)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, esperado 400", w.Code)
	}
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("resposta de validação ilegível: %v", err)
	}
	if resp.Fields["name"] == "" || resp.Fields["url"] == "" {
		t.Errorf("mensagens por campo faltando: %+v", resp.Fields)
	}
}

func TestProductsAreTenantScoped(t *testing.T) {
	env := newTestEnv(t)
	r := newTestRouter(env)
	seedTenant(t, env, "u1")
	seedTenant(t, env, "u2")

	product, err := env.Products.CreateProduct("u1", "Loja", "https://loja.example.com", "")
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	// o dono vê, o outro tenant recebe 404
	owner := map[string]string{"Authorization": bearerToken(t, env, "u1")}
	if w := doRequest(r, http.MethodGet, "/api/products/"+product.ID, nil, owner); w.Code != http.StatusOK {
		t.Errorf("dono: status %d", w.Code)
	}
	intruder := map[string]string{"Authorization": bearerToken(t, env, "u2")}
	if w := doRequest(r, http.MethodGet, "/api/products/"+product.ID, nil, intruder); w.Code != http.StatusNotFound {
		t.Errorf("outro tenant: status %d, esperado 404", w.Code)
	}
	if w := doRequest(r, http.MethodDelete, "/api/products/"+product.ID, nil, intruder); w.Code != http.StatusNotFound {
		t.Errorf("delete de outro tenant: status %d, esperado 404", w.Code)
	}
}

func TestCustomizationGatedByPlan(t *testing.T) {
	env := newTestEnv(t)
	r := newTestRouter(env)
	seedTenant(t, env, "u1") // Free: sem customização
	auth := map[string]string{"Authorization": bearerToken(t, env, "u1")}

	product, err := env.Products.CreateProduct("u1", "Loja", "https://loja.example.com", "")
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	path := "/api/products/" + product.ID + "/customization"

	// ler pode em qualquer plano
	if w := doRequest(r, http.MethodGet, path, nil, auth); w.Code != http.StatusOK {
		t.Errorf("GET customização: status %d", w.Code)
	}

	body := []byte(`{"background_color":"#000"}`)
	if w := doRequest(r, http.MethodPut, path, body, auth); w.Code != http.StatusForbidden {
		t.Errorf("PUT no Free: status %d, esperado 403", w.Code)
	}

	// no Standard passa
	if err := env.Subscriptions.UpdateByUserID("u1", map[string]any{"tier": string(plans.TierStandard)}); err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	if w := doRequest(r, http.MethodPut, path, body, auth); w.Code != http.StatusOK {
		t.Errorf("PUT no Standard: status %d corpo %s", w.Code, w.Body.String())
	}
}

func TestDiscountsRoundTripInPercentScale(t *testing.T) {
	env := newTestEnv(t)
	r := newTestRouter(env)
	seedTenant(t, env, "u1")
	groupID := seedGeo(t, env, 0.5)
	auth := map[string]string{"Authorization": bearerToken(t, env, "u1")}

	product, err := env.Products.CreateProduct("u1", "Loja", "https://loja.example.com", "")
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	path := "/api/products/" + product.ID + "/discounts"

	// a API fala em 0–100; o armazenamento interno é fração
	body := []byte(`{"upserts":[{"country_group_id":"` + groupID + `","coupon":"BR37","discount_percentage":37}]}`)
	if w := doRequest(r, http.MethodPut, path, body, auth); w.Code != http.StatusOK {
		t.Fatalf("PUT descontos: status %d corpo %s", w.Code, w.Body.String())
	}

	w := doRequest(r, http.MethodGet, path, nil, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("GET descontos: status %d", w.Code)
	}
	var resp struct {
		Groups []struct {
			Name                          string   `json:"name"`
			RecommendedDiscountPercentage *float64 `json:"recommended_discount_percentage"`
			Coupon                        *string  `json:"coupon"`
			DiscountPercentage            *float64 `json:"discount_percentage"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("resposta ilegível: %v", err)
	}
	if len(resp.Groups) != 1 {
		t.Fatalf("esperado 1 grupo, vieram %d", len(resp.Groups))
	}
	g := resp.Groups[0]
	if g.DiscountPercentage == nil || *g.DiscountPercentage != 37 {
		t.Errorf("override na escala errada: %v", g.DiscountPercentage)
	}
	if g.RecommendedDiscountPercentage == nil || *g.RecommendedDiscountPercentage != 50 {
		t.Errorf("recomendação na escala errada: %v", g.RecommendedDiscountPercentage)
	}
	if g.Coupon == nil || *g.Coupon != "BR37" {
		t.Errorf("cupom: %v", g.Coupon)
	}
}

func TestDiscountsValidationPerIndex(t *testing.T) {
	env := newTestEnv(t)
	r := newTestRouter(env)
	seedTenant(t, env, "u1")
	seedGeo(t, env, 0.5)
	auth := map[string]string{"Authorization": bearerToken(t, env, "u1")}

	product, err := env.Products.CreateProduct("u1", "Loja", "https://loja.example.com", "")
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	// percentual ausente e fora da faixa, cada um apontado pelo índice
	body := []byte(`{"upserts":[{"country_group_id":"g1","coupon":"A"},{"country_group_id":"g2","coupon":"B","discount_percentage":150}]}`)
	w := doRequest(r, http.MethodPut, "/api/products/"+product.ID+"/discounts", body, auth)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, esperado 400", w.Code)
	}
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("resposta ilegível: %v", err)
	}
	if resp.Fields["upserts[0].discount_percentage"] == "" || resp.Fields["upserts[1].discount_percentage"] == "" {
		t.Errorf("erros por índice faltando: %+v", resp.Fields)
	}
}

func TestAnalyticsGatedByPlan(t *testing.T) {
	env := newTestEnv(t)
	r := newTestRouter(env)
	seedTenant(t, env, "u1") // Free: sem analytics
	auth := map[string]string{"Authorization": bearerToken(t, env, "u1")}

	if w := doRequest(r, http.MethodGet, "/api/analytics/views-per-day", nil, auth); w.Code != http.StatusForbidden {
		t.Errorf("analytics no Free: status %d, esperado 403", w.Code)
	}

	if err := env.Subscriptions.UpdateByUserID("u1", map[string]any{"tier": string(plans.TierBasic)}); err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	w := doRequest(r, http.MethodGet, "/api/analytics/views-per-day?days=7", nil, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("analytics no Basic: status %d", w.Code)
	}
	var resp struct {
		Days   int `json:"days"`
		Series []struct {
			Day   string `json:"day"`
			Count int64  `json:"count"`
		} `json:"series"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("resposta ilegível: %v", err)
	}
	if resp.Days != 7 || len(resp.Series) != 7 {
		t.Errorf("série de %d dias com %d buckets", resp.Days, len(resp.Series))
	}

	// tz que não é nome IANA é 400, não fallback silencioso
	if w := doRequest(r, http.MethodGet, "/api/analytics/views-per-day?tz=nowhere", nil, auth); w.Code != http.StatusBadRequest {
		t.Errorf("tz inválido: status %d, esperado 400", w.Code)
	}
}

func TestGetSubscriptionReportsUsage(t *testing.T) {
	env := newTestEnv(t)
	r := newTestRouter(env)
	seedTenant(t, env, "u1")
	auth := map[string]string{"Authorization": bearerToken(t, env, "u1")}

	product, err := env.Products.CreateProduct("u1", "Loja", "https://loja.example.com", "")
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if err := env.Views.CreateProductView(product.ID, nil, "u1"); err != nil {
		t.Fatalf("CreateProductView: %v", err)
	}

	w := doRequest(r, http.MethodGet, "/api/subscription", nil, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var resp struct {
		Tier  string `json:"tier"`
		Usage struct {
			ViewsThisMonth int64 `json:"views_this_month"`
			Products       int   `json:"products"`
		} `json:"usage"`
		Tiers []struct {
			Name       string `json:"name"`
			PriceCents int64  `json:"price_cents"`
			Current    bool   `json:"current"`
		} `json:"tiers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("resposta ilegível: %v", err)
	}
	if resp.Tier != "Free" || resp.Usage.Products != 1 || resp.Usage.ViewsThisMonth != 1 {
		t.Errorf("resumo errado: %+v", resp)
	}

	// a escada de planos vem junto, em ordem de preço, com o atual marcado
	if len(resp.Tiers) != 4 {
		t.Fatalf("esperados 4 planos, vieram %d", len(resp.Tiers))
	}
	for i := 1; i < len(resp.Tiers); i++ {
		if resp.Tiers[i].PriceCents <= resp.Tiers[i-1].PriceCents {
			t.Errorf("planos fora de ordem de preço: %s depois de %s",
				resp.Tiers[i].Name, resp.Tiers[i-1].Name)
		}
	}
	if !resp.Tiers[0].Current || resp.Tiers[0].Name != "Free" {
		t.Errorf("plano atual não marcado: %+v", resp.Tiers[0])
	}
}
