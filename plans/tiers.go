package plans

// Tier é o nome do plano de assinatura. Enumeração fechada: todo lookup passa
// pela tabela de limites abaixo, nada de condicional espalhado por tier.
type Tier string

const (
	TierFree     Tier = "Free"
	TierBasic    Tier = "Basic"
	TierStandard Tier = "Standard"
	TierPremium  Tier = "Premium"
)

// TierLimits concentra limites e feature flags derivados do plano.
type TierLimits struct {
	Name                Tier
	PriceCents          int64
	MaxNumberOfProducts int
	MaxNumberOfVisits   int64
	CanAccessAnalytics  bool
	CanCustomizeBanner  bool
	CanRemoveBranding   bool

	// StripePriceID liga o plano ao preço no provedor de billing (vazio no Free).
	StripePriceID string
}

var tiers = map[Tier]TierLimits{
	TierFree: {
		Name:                TierFree,
		PriceCents:          0,
		MaxNumberOfProducts: 1,
		MaxNumberOfVisits:   5000,
	},
	TierBasic: {
		Name:                TierBasic,
		PriceCents:          1900,
		MaxNumberOfProducts: 5,
		MaxNumberOfVisits:   10000,
		CanAccessAnalytics:  true,
		StripePriceID:       "price_basic",
	},
	TierStandard: {
		Name:                TierStandard,
		PriceCents:          4900,
		MaxNumberOfProducts: 30,
		MaxNumberOfVisits:   100000,
		CanAccessAnalytics:  true,
		CanCustomizeBanner:  true,
		StripePriceID:       "price_standard",
	},
	TierPremium: {
		Name:                TierPremium,
		PriceCents:          9900,
		MaxNumberOfProducts: 50,
		MaxNumberOfVisits:   1000000,
		CanAccessAnalytics:  true,
		CanCustomizeBanner:  true,
		CanRemoveBranding:   true,
		StripePriceID:       "price_premium",
	},
}

// Get devolve os limites do tier. Nome desconhecido cai no Free (fail closed:
// Free é o plano mais restrito).
func Get(name string) TierLimits {
	if t, ok := tiers[Tier(name)]; ok {
		return t
	}
	return tiers[TierFree]
}

// ByPriceID resolve o tier a partir do price id do provedor de billing.
func ByPriceID(priceID string) (TierLimits, bool) {
	if priceID == "" {
		return TierLimits{}, false
	}
	for _, t := range tiers {
		if t.StripePriceID == priceID {
			return t, true
		}
	}
	return TierLimits{}, false
}

// All lista os tiers em ordem de preço (útil pra página de assinatura).
func All() []TierLimits {
	return []TierLimits{tiers[TierFree], tiers[TierBasic], tiers[TierStandard], tiers[TierPremium]}
}
