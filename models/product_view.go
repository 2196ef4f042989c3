package models

import "time"

// ProductView é um evento append-only de impressão do banner.
// Nunca é atualizado; serve só para agregação e contagem de quota.
type ProductView struct {
	ID        string    `gorm:"primary_key;type:varchar(36)" json:"id"`
	ProductID string    `gorm:"not null;index" json:"product_id"`
	CountryID *string   `gorm:"index" json:"country_id"`
	VisitedAt time.Time `gorm:"not null;index" json:"visited_at"`
}
