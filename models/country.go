package models

import "time"

// CountryGroup agrupa países com poder de compra parecido (cohorts de PPP).
// Dado de referência global, não pertence a nenhum tenant.
type CountryGroup struct {
	ID   string `gorm:"primary_key;type:varchar(36)" json:"id"`
	Name string `gorm:"not null;unique" json:"name"`

	// RecommendedDiscountPercentage é uma fração em [0,1]. nil = sem recomendação.
	RecommendedDiscountPercentage *float64   `json:"recommended_discount_percentage"`
	CreatedAt                     *time.Time `json:"created_at"`
	UpdatedAt                     *time.Time `json:"updated_at"`
}

// Country pertence a exatamente um CountryGroup. Code é o ISO 3166-1 alpha-2
// usado como chave de lookup do resultado de geolocalização.
type Country struct {
	ID             string     `gorm:"primary_key;type:varchar(36)" json:"id"`
	Name           string     `gorm:"not null;unique" json:"name"`
	Code           string     `gorm:"not null;unique" json:"code"`
	CountryGroupID string     `gorm:"not null;index" json:"country_group_id"`
	CreatedAt      *time.Time `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}
