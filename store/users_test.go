package store

import (
	"testing"

	"paridade/cache"
	"paridade/models"
	"paridade/plans"
)

func TestDeleteUserCascadesEverything(t *testing.T) {
	db := openTestDB(t)
	c := cache.New()
	products := NewProductStore(db, c)
	views := NewViewStore(db, c)
	subs := NewSubscriptionStore(db, c)
	users := NewUserStore(db, c)
	groupID := seedGroup(t, db, "Grupo 1", floatPtr(0.5), map[string]string{"BR": "Brazil"})

	if err := subs.CreateUserSubscription("u1", plans.TierFree); err != nil {
		t.Fatalf("CreateUserSubscription: %v", err)
	}
	product, err := products.CreateProduct("u1", "Loja", "https://loja.example.com", "")
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if _, err := products.UpdateCountryDiscounts(product.ID, "u1", nil, []DiscountUpsert{
		{CountryGroupID: groupID, Coupon: "BR40", DiscountPercentage: 0.4},
	}); err != nil {
		t.Fatalf("UpdateCountryDiscounts: %v", err)
	}
	if err := views.CreateProductView(product.ID, nil, "u1"); err != nil {
		t.Fatalf("CreateProductView: %v", err)
	}

	// outro tenant pra garantir que o cascade não vaza
	keep, err := products.CreateProduct("u2", "Outra", "https://outra.example.com", "")
	if err != nil {
		t.Fatalf("CreateProduct u2: %v", err)
	}

	// aquece caches que o delete precisa invalidar
	if _, err := products.GetProducts("u1", 0); err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if _, err := subs.GetUserSubscription("u1"); err != nil {
		t.Fatalf("GetUserSubscription: %v", err)
	}

	if err := users.DeleteUser("u1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	for table, model := range map[string]any{
		"product_customizations":  &models.ProductCustomization{},
		"country_group_discounts": &models.CountryGroupDiscount{},
		"product_views":           &models.ProductView{},
		"user_subscriptions":      &models.UserSubscription{},
	} {
		var count int
		db.Model(model).Count(&count)
		// só sobra o que é do u2 (customização do produto dele)
		allowed := 0
		if table == "product_customizations" {
			allowed = 1
		}
		if count > allowed {
			t.Errorf("%s: %d linha(s) sobraram após o delete do tenant", table, count)
		}
	}

	// leituras pós-delete não podem vir do cache aquecido
	remaining, err := products.GetProducts("u1", 0)
	if err != nil {
		t.Fatalf("GetProducts pós-delete: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("cache devolveu produtos de tenant apagado: %d", len(remaining))
	}
	if _, err := subs.GetUserSubscription("u1"); err != ErrNotFound {
		t.Errorf("assinatura apagada: err = %v, esperado ErrNotFound", err)
	}

	// o outro tenant segue intacto
	if _, err := products.GetProduct(keep.ID, "u2"); err != nil {
		t.Errorf("produto do u2 sumiu no cascade: %v", err)
	}
}

func TestDeleteUserWithoutDataIsNoop(t *testing.T) {
	db := openTestDB(t)
	users := NewUserStore(db, cache.New())

	if err := users.DeleteUser("ghost"); err != nil {
		t.Errorf("delete de tenant inexistente tem que ser silencioso: %v", err)
	}
}
