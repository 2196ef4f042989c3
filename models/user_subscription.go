package models

import "time"

// UserSubscription: exatamente 1 por tenant (user_id único). Criada no evento
// user.created do provedor de identidade e nunca apagada fora do cascade do tenant;
// só tier e os ids de billing mudam.
type UserSubscription struct {
	ID                       string     `gorm:"primary_key;type:varchar(36)" json:"id"`
	UserID                   string     `gorm:"not null;unique_index" json:"user_id"`
	Tier                     string     `gorm:"not null;default:'Free'" json:"tier"`
	StripeCustomerID         *string    `gorm:"index" json:"stripe_customer_id"`
	StripeSubscriptionID     *string    `json:"stripe_subscription_id"`
	StripeSubscriptionItemID *string    `json:"stripe_subscription_item_id"`
	CreatedAt                *time.Time `json:"created_at"`
	UpdatedAt                *time.Time `json:"updated_at"`
}
