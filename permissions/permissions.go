// Package permissions avalia capacidades do tenant contra o plano de assinatura.
// Tudo aqui é função pura de (assinatura cacheada + contagem de uso cacheada):
// nenhuma checagem tem efeito colateral.
package permissions

import (
	"time"

	"paridade/plans"
	"paridade/store"
)

type SubscriptionSource interface {
	GetUserTier(userID string) (plans.TierLimits, error)
}

type UsageSource interface {
	CountViews(userID string, since time.Time) (int64, error)
}

type ProductCounter interface {
	GetProductCount(userID string) (int, error)
}

// Service responde "pode?" pra cada capability. Tenant sem assinatura resolvível
// (ou qualquer erro no caminho) é inelegível pra tudo — fail closed.
type Service struct {
	subs     SubscriptionSource
	views    UsageSource
	products ProductCounter

	// injetável nos testes
	now func() time.Time
}

func NewService(subs SubscriptionSource, views UsageSource, products ProductCounter) *Service {
	return &Service{subs: subs, views: views, products: products, now: time.Now}
}

func (s *Service) CanAccessAnalytics(userID string) bool {
	tier, err := s.subs.GetUserTier(userID)
	return err == nil && tier.CanAccessAnalytics
}

func (s *Service) CanCustomizeBanner(userID string) bool {
	tier, err := s.subs.GetUserTier(userID)
	return err == nil && tier.CanCustomizeBanner
}

func (s *Service) CanRemoveBranding(userID string) bool {
	tier, err := s.subs.GetUserTier(userID)
	return err == nil && tier.CanRemoveBranding
}

// CanCreateProduct limita a quantidade de produtos pelo plano.
func (s *Service) CanCreateProduct(userID string) bool {
	tier, err := s.subs.GetUserTier(userID)
	if err != nil {
		return false
	}
	count, err := s.products.GetProductCount(userID)
	if err != nil {
		return false
	}
	return count < tier.MaxNumberOfProducts
}

// CanShowDiscountBanner é a checagem de quota: true só enquanto a contagem de
// views do mês corrente está abaixo de MaxNumberOfVisits. No limite, o banner
// para de servir até o mês de billing virar.
func (s *Service) CanShowDiscountBanner(userID string) bool {
	tier, err := s.subs.GetUserTier(userID)
	if err != nil {
		return false
	}
	used, err := s.views.CountViews(userID, store.MonthStart(s.now()))
	if err != nil {
		return false
	}
	return used < tier.MaxNumberOfVisits
}
