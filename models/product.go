package models

import "time"

// Product representa um site/produto de um tenant que embeda o banner.
// URL é a origem registrada: o endpoint público do banner só responde quando o
// referer da requisição bate com ela.
type Product struct {
	ID          string     `gorm:"primary_key;type:varchar(36)" json:"id"`
	UserID      string     `gorm:"not null;index" json:"user_id"`
	Name        string     `gorm:"not null" json:"name" form:"name"`
	URL         string     `gorm:"not null" json:"url" form:"url"`
	Description string     `gorm:"type:text" json:"description" form:"description"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
