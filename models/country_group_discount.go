package models

import "time"

// CountryGroupDiscount é o override de desconto por (produto, grupo de países).
// Ausência de linha significa "usa a recomendação do grupo, sem cupom".
// DiscountPercentage é fração em [0,1]; zero explícito é um valor válido.
type CountryGroupDiscount struct {
	ID                 string     `gorm:"primary_key;type:varchar(36)" json:"id"`
	ProductID          string     `gorm:"not null;unique_index:idx_product_country_group" json:"product_id"`
	CountryGroupID     string     `gorm:"not null;unique_index:idx_product_country_group" json:"country_group_id"`
	Coupon             string     `gorm:"not null" json:"coupon"`
	DiscountPercentage float64    `gorm:"not null" json:"discount_percentage"`
	CreatedAt          *time.Time `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
}
