package permissions

import (
	"errors"
	"testing"
	"time"

	"paridade/plans"
)

type fakeSubs struct {
	tier plans.TierLimits
	err  error
}

func (f *fakeSubs) GetUserTier(string) (plans.TierLimits, error) { return f.tier, f.err }

type fakeViews struct {
	count int64
	err   error
	since time.Time
}

func (f *fakeViews) CountViews(_ string, since time.Time) (int64, error) {
	f.since = since
	return f.count, f.err
}

type fakeProducts struct {
	count int
	err   error
}

func (f *fakeProducts) GetProductCount(string) (int, error) { return f.count, f.err }

func newTestService(subs *fakeSubs, views *fakeViews, products *fakeProducts) *Service {
	s := NewService(subs, views, products)
	s.now = func() time.Time { return time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestQuotaGateAtLimit(t *testing.T) {
	free := plans.Get(string(plans.TierFree)) // MaxNumberOfVisits = 5000
	views := &fakeViews{count: free.MaxNumberOfVisits}
	s := newTestService(&fakeSubs{tier: free}, views, &fakeProducts{})

	// no limite exato o banner para de servir
	if s.CanShowDiscountBanner("u1") {
		t.Error("no limite da quota deveria ser false")
	}

	views.count = free.MaxNumberOfVisits - 1
	if !s.CanShowDiscountBanner("u1") {
		t.Error("abaixo da quota deveria ser true")
	}

	// a contagem tem que ser a partir do início do mês de billing
	wantSince := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !views.since.Equal(wantSince) {
		t.Errorf("since = %v, esperado %v", views.since, wantSince)
	}
}

func TestNoSubscriptionFailsClosed(t *testing.T) {
	s := newTestService(&fakeSubs{err: errors.New("not found")}, &fakeViews{}, &fakeProducts{})

	if s.CanShowDiscountBanner("u1") || s.CanAccessAnalytics("u1") ||
		s.CanCustomizeBanner("u1") || s.CanRemoveBranding("u1") || s.CanCreateProduct("u1") {
		t.Error("tenant sem assinatura resolvível tem que falhar fechado em tudo")
	}
}

func TestUsageErrorFailsClosed(t *testing.T) {
	premium := plans.Get(string(plans.TierPremium))
	s := newTestService(&fakeSubs{tier: premium}, &fakeViews{err: errors.New("db down")}, &fakeProducts{})
	if s.CanShowDiscountBanner("u1") {
		t.Error("erro na contagem de uso não pode liberar o banner")
	}
}

func TestTierFlags(t *testing.T) {
	cases := []struct {
		tier      plans.Tier
		analytics bool
		customize bool
		branding  bool
	}{
		{plans.TierFree, false, false, false},
		{plans.TierBasic, true, false, false},
		{plans.TierStandard, true, true, false},
		{plans.TierPremium, true, true, true},
	}
	for _, tc := range cases {
		s := newTestService(&fakeSubs{tier: plans.Get(string(tc.tier))}, &fakeViews{}, &fakeProducts{})
		if got := s.CanAccessAnalytics("u"); got != tc.analytics {
			t.Errorf("%s analytics = %v", tc.tier, got)
		}
		if got := s.CanCustomizeBanner("u"); got != tc.customize {
			t.Errorf("%s customize = %v", tc.tier, got)
		}
		if got := s.CanRemoveBranding("u"); got != tc.branding {
			t.Errorf("%s branding = %v", tc.tier, got)
		}
	}
}

func TestCanCreateProduct(t *testing.T) {
	free := plans.Get(string(plans.TierFree)) // MaxNumberOfProducts = 1
	products := &fakeProducts{count: 0}
	s := newTestService(&fakeSubs{tier: free}, &fakeViews{}, products)

	if !s.CanCreateProduct("u1") {
		t.Error("abaixo do limite deveria poder criar")
	}
	products.count = free.MaxNumberOfProducts
	if s.CanCreateProduct("u1") {
		t.Error("no limite não deveria poder criar")
	}
}
