package models

import "time"

// Placeholders aceitos em LocationMessage.
const (
	PLACEHOLDER_COUNTRY  = "{country}"
	PLACEHOLDER_COUPON   = "{coupon}"
	PLACEHOLDER_DISCOUNT = "{discount}"
)

// ProductCustomization guarda a configuração visual/textual do banner.
// Regra: exatamente 1 por produto, criada junto com o Product e apagada em cascata.
type ProductCustomization struct {
	ID              string     `gorm:"primary_key;type:varchar(36)" json:"id"`
	ProductID       string     `gorm:"not null;unique_index" json:"product_id"`
	LocationMessage string     `gorm:"type:text;not null" json:"location_message" form:"location_message"`
	BackgroundColor string     `gorm:"not null" json:"background_color" form:"background_color"`
	TextColor       string     `gorm:"not null" json:"text_color" form:"text_color"`
	FontSize        string     `gorm:"not null" json:"font_size" form:"font_size"`
	BannerContainer string     `gorm:"not null" json:"banner_container" form:"banner_container"`
	IsSticky        bool       `gorm:"not null;default:true" json:"is_sticky" form:"is_sticky"`
	ClassPrefix     *string    `json:"class_prefix" form:"class_prefix"`
	CreatedAt       *time.Time `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// DefaultCustomization devolve a customização inicial de um produto recém-criado.
func DefaultCustomization(productID string) ProductCustomization {
	return ProductCustomization{
		ProductID:       productID,
		LocationMessage: "Hey! It looks like you are from <b>{country}</b>! We support Parity Purchasing Power, so if you need it, use code <b>\"{coupon}\"</b> to get <b>{discount}%</b> off.",
		BackgroundColor: "hsl(193, 82%, 31%)",
		TextColor:       "hsl(0, 0%, 100%)",
		FontSize:        "1rem",
		BannerContainer: "body",
		IsSticky:        true,
	}
}
