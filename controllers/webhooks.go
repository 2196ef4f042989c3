package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"paridade/plans"
	"paridade/store"

	"github.com/gin-gonic/gin"
)

// verifyWebhookSignature valida o corpo contra o header de assinatura.
//
// Formato: X-Hub-Signature-256: sha256=<hex do HMAC-SHA256 do corpo>.
// Nada muda de estado antes dessa checagem passar.
func verifyWebhookSignature(c *gin.Context, rawBody []byte, secret string) (bool, string) {
	if strings.TrimSpace(secret) == "" {
		return false, "webhook secret não configurado"
	}

	sig := strings.TrimSpace(c.GetHeader("X-Hub-Signature-256"))
	if sig == "" {
		return false, "missing X-Hub-Signature-256"
	}
	if !strings.HasPrefix(sig, "sha256=") {
		return false, "invalid X-Hub-Signature-256 format"
	}

	provided, err := hex.DecodeString(strings.TrimPrefix(sig, "sha256="))
	if err != nil {
		return false, "invalid signature hex"
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	if !hmac.Equal(provided, mac.Sum(nil)) {
		return false, "signature mismatch"
	}
	return true, ""
}

// ------------------------------
// Billing (assinaturas)
// ------------------------------

type billingSubscription struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Metadata struct {
		UserID string `json:"user_id"`
	} `json:"metadata"`
	Items []struct {
		ID      string `json:"id"`
		PriceID string `json:"price_id"`
	} `json:"items"`
}

type billingEvent struct {
	Type string `json:"type"`
	Data struct {
		Object billingSubscription `json:"object"`
	} `json:"data"`
}

// POST /api/webhooks/billing
// Eventos de ciclo de vida da assinatura no provedor de billing. Cada tipo de
// evento dispara exatamente um handler.
func BillingWebhook(c *gin.Context) {
	env := EnvInstance(c)

	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, "failed to read body", http.StatusBadRequest)
		return
	}
	if ok, reason := verifyWebhookSignature(c, rawBody, env.Config.Security.BillingWebhookSecret); !ok {
		log.Printf("webhook billing: assinatura rejeitada: %s", reason)
		RespondError(c, "invalid signature", http.StatusUnauthorized)
		return
	}

	var event billingEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		RespondError(c, "invalid json", http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "customer.subscription.created":
		err = handleSubscriptionCreated(env, event.Data.Object)
	case "customer.subscription.updated":
		err = handleSubscriptionUpdated(env, event.Data.Object)
	case "customer.subscription.deleted":
		err = handleSubscriptionDeleted(env, event.Data.Object)
	default:
		// tipo desconhecido é aceito e ignorado: o provedor manda mais do que a gente consome
		c.Status(http.StatusOK)
		return
	}

	if err == errBadEventPayload {
		RespondError(c, "invalid event payload", http.StatusBadRequest)
		return
	}
	if err != nil && err != store.ErrNotFound {
		log.Printf("webhook billing: %s: %v", event.Type, err)
		RespondError(c, "erro ao processar evento", http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

var errBadEventPayload = &badEventError{}

type badEventError struct{}

func (*badEventError) Error() string { return "bad event payload" }

func handleSubscriptionCreated(env *Env, sub billingSubscription) error {
	if sub.Metadata.UserID == "" || len(sub.Items) == 0 {
		return errBadEventPayload
	}
	tier, ok := plans.ByPriceID(sub.Items[0].PriceID)
	if !ok {
		return errBadEventPayload
	}
	return env.Subscriptions.UpdateByUserID(sub.Metadata.UserID, map[string]any{
		"tier":                        string(tier.Name),
		"stripe_customer_id":          sub.Customer,
		"stripe_subscription_id":      sub.ID,
		"stripe_subscription_item_id": sub.Items[0].ID,
	})
}

func handleSubscriptionUpdated(env *Env, sub billingSubscription) error {
	if sub.Customer == "" || len(sub.Items) == 0 {
		return errBadEventPayload
	}
	tier, ok := plans.ByPriceID(sub.Items[0].PriceID)
	if !ok {
		return errBadEventPayload
	}
	return env.Subscriptions.UpdateByCustomerID(sub.Customer, map[string]any{
		"tier": string(tier.Name),
	})
}

func handleSubscriptionDeleted(env *Env, sub billingSubscription) error {
	if sub.Customer == "" {
		return errBadEventPayload
	}
	return env.Subscriptions.UpdateByCustomerID(sub.Customer, map[string]any{
		"tier":                        string(plans.TierFree),
		"stripe_subscription_id":      nil,
		"stripe_subscription_item_id": nil,
	})
}

// ------------------------------
// Identidade (tenants)
// ------------------------------

type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// POST /api/webhooks/identity
// user.created provisiona a assinatura Free; user.deleted apaga em cascata
// assinatura + produtos do tenant (e invalida as tags dele).
func IdentityWebhook(c *gin.Context) {
	env := EnvInstance(c)

	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, "failed to read body", http.StatusBadRequest)
		return
	}
	if ok, reason := verifyWebhookSignature(c, rawBody, env.Config.Security.IdentityWebhookSecret); !ok {
		log.Printf("webhook identity: assinatura rejeitada: %s", reason)
		RespondError(c, "invalid signature", http.StatusUnauthorized)
		return
	}

	var event identityEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		RespondError(c, "invalid json", http.StatusBadRequest)
		return
	}
	if event.Data.ID == "" {
		RespondError(c, "invalid event payload", http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "user.created":
		// duplicado é aceito em silêncio (idempotente)
		if err := env.Subscriptions.CreateUserSubscription(event.Data.ID, plans.TierFree); err != nil {
			log.Printf("webhook identity: user.created: %v", err)
			RespondError(c, "erro ao processar evento", http.StatusInternalServerError)
			return
		}
	case "user.deleted":
		if err := env.Users.DeleteUser(event.Data.ID); err != nil {
			log.Printf("webhook identity: user.deleted: %v", err)
			RespondError(c, "erro ao processar evento", http.StatusInternalServerError)
			return
		}
	}

	c.Status(http.StatusOK)
}
