package store

import (
	"fmt"
	"time"

	"paridade/cache"
	"paridade/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// ProductStore resolve produtos, customizações e descontos por grupo de países.
type ProductStore struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewProductStore(db *gorm.DB, c *cache.Cache) *ProductStore {
	return &ProductStore{db: db, cache: c}
}

// DiscountOverride é o override (produto, grupo) como aparece na tela de edição.
type DiscountOverride struct {
	Coupon             string  `json:"coupon"`
	DiscountPercentage float64 `json:"discount_percentage"`
}

// DiscountUpsert é uma linha do batch de edição de descontos (escala já em fração).
type DiscountUpsert struct {
	CountryGroupID     string
	Coupon             string
	DiscountPercentage float64
}

// CountryGroupWithDiscount junta o grupo, seus países e o override do produto (se houver).
type CountryGroupWithDiscount struct {
	ID                            string            `json:"id"`
	Name                          string            `json:"name"`
	RecommendedDiscountPercentage *float64          `json:"recommended_discount_percentage"`
	Countries                     []models.Country  `json:"countries"`
	Discount                      *DiscountOverride `json:"discount"`
}

// BannerData é tudo que o banner precisa pra renderizar.
type BannerData struct {
	Product            models.Product
	Customization      models.ProductCustomization
	Country            models.Country
	Coupon             string
	DiscountPercentage float64
}

func (s *ProductStore) GetProducts(userID string, limit int) ([]models.Product, error) {
	key := fmt.Sprintf("products:%s:%d", userID, limit)
	tags := []cache.Tag{cache.UserTag(userID, cache.KindProducts)}

	return cache.Read(s.cache, key, tags, func() ([]models.Product, error) {
		var products []models.Product
		err := retryRead(func() error {
			q := s.db.Where("user_id = ?", userID).Order("created_at desc")
			if limit > 0 {
				q = q.Limit(limit)
			}
			return q.Find(&products).Error
		})
		return products, err
	})
}

func (s *ProductStore) GetProduct(id, userID string) (models.Product, error) {
	key := fmt.Sprintf("product:%s:%s", id, userID)
	tags := []cache.Tag{cache.IDTag(id, cache.KindProducts)}

	return cache.Read(s.cache, key, tags, func() (models.Product, error) {
		var product models.Product
		err := retryRead(func() error {
			return s.db.Where("id = ? AND user_id = ?", id, userID).First(&product).Error
		})
		if gorm.IsRecordNotFoundError(err) {
			return product, ErrNotFound
		}
		return product, err
	})
}

func (s *ProductStore) GetProductCount(userID string) (int, error) {
	key := "productCount:" + userID
	tags := []cache.Tag{cache.UserTag(userID, cache.KindProducts)}

	return cache.Read(s.cache, key, tags, func() (int, error) {
		var count int
		err := retryRead(func() error {
			return s.db.Model(&models.Product{}).Where("user_id = ?", userID).Count(&count).Error
		})
		return count, err
	})
}

// CreateProduct cria o produto e sua customização numa transação só.
// Se a customização falhar, o produto não persiste (all-or-nothing).
func (s *ProductStore) CreateProduct(userID, name, rawURL, description string) (models.Product, error) {
	product := models.Product{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		URL:         rawURL,
		Description: description,
	}

	tx := s.db.Begin()
	if err := tx.Error; err != nil {
		return models.Product{}, err
	}
	if err := tx.Create(&product).Error; err != nil {
		tx.Rollback()
		return models.Product{}, err
	}
	customization := models.DefaultCustomization(product.ID)
	customization.ID = uuid.NewString()
	if err := tx.Create(&customization).Error; err != nil {
		tx.Rollback()
		return models.Product{}, err
	}
	if err := tx.Commit().Error; err != nil {
		return models.Product{}, err
	}

	s.invalidateProduct(userID, product.ID)
	return product, nil
}

func (s *ProductStore) UpdateProduct(id, userID, name, rawURL, description string) (bool, error) {
	res := s.db.Model(&models.Product{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"name": name, "url": rawURL, "description": description})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	s.invalidateProduct(userID, id)
	return true, nil
}

// DeleteProduct apaga o produto e, em cascata, customização, overrides de
// desconto e views.
func (s *ProductStore) DeleteProduct(id, userID string) (bool, error) {
	tx := s.db.Begin()
	if err := tx.Error; err != nil {
		return false, err
	}

	res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Product{})
	if res.Error != nil {
		tx.Rollback()
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return false, nil
	}
	for _, del := range []error{
		tx.Where("product_id = ?", id).Delete(&models.ProductCustomization{}).Error,
		tx.Where("product_id = ?", id).Delete(&models.CountryGroupDiscount{}).Error,
		tx.Where("product_id = ?", id).Delete(&models.ProductView{}).Error,
	} {
		if del != nil {
			tx.Rollback()
			return false, del
		}
	}
	if err := tx.Commit().Error; err != nil {
		return false, err
	}

	s.invalidateProduct(userID, id)
	s.cache.Invalidate(cache.UserTag(userID, cache.KindProductViews))
	return true, nil
}

func (s *ProductStore) GetProductCustomization(productID, userID string) (models.ProductCustomization, error) {
	key := fmt.Sprintf("customization:%s:%s", productID, userID)
	tags := []cache.Tag{cache.IDTag(productID, cache.KindProducts)}

	return cache.Read(s.cache, key, tags, func() (models.ProductCustomization, error) {
		if _, err := s.getProductUncached(productID, userID); err != nil {
			return models.ProductCustomization{}, err
		}
		var customization models.ProductCustomization
		err := retryRead(func() error {
			return s.db.Where("product_id = ?", productID).First(&customization).Error
		})
		if gorm.IsRecordNotFoundError(err) {
			return customization, ErrNotFound
		}
		return customization, err
	})
}

func (s *ProductStore) UpdateProductCustomization(productID, userID string, fields map[string]any) (bool, error) {
	if _, err := s.getProductUncached(productID, userID); err != nil {
		if err == ErrNotFound {
			return false, nil
		}
		return false, err
	}

	err := s.db.Model(&models.ProductCustomization{}).
		Where("product_id = ?", productID).
		Updates(fields).Error
	if err != nil {
		return false, err
	}
	s.invalidateProduct(userID, productID)
	return true, nil
}

// GetProductCountryGroups monta a visão da tela de edição de descontos:
// cada grupo com seus países e o override existente (se houver), em ordem estável.
func (s *ProductStore) GetProductCountryGroups(productID, userID string) ([]CountryGroupWithDiscount, error) {
	key := fmt.Sprintf("productCountryGroups:%s:%s", productID, userID)
	tags := []cache.Tag{
		cache.IDTag(productID, cache.KindProducts),
		cache.GlobalTag(cache.KindCountries),
		cache.GlobalTag(cache.KindCountryGroups),
	}

	return cache.Read(s.cache, key, tags, func() ([]CountryGroupWithDiscount, error) {
		if _, err := s.getProductUncached(productID, userID); err != nil {
			return nil, err
		}

		var groups []models.CountryGroup
		if err := retryRead(func() error {
			return s.db.Order("name asc").Find(&groups).Error
		}); err != nil {
			return nil, err
		}

		var discounts []models.CountryGroupDiscount
		if err := retryRead(func() error {
			return s.db.Where("product_id = ?", productID).Find(&discounts).Error
		}); err != nil {
			return nil, err
		}
		byGroup := make(map[string]models.CountryGroupDiscount, len(discounts))
		for _, d := range discounts {
			byGroup[d.CountryGroupID] = d
		}

		out := make([]CountryGroupWithDiscount, 0, len(groups))
		for _, g := range groups {
			var countries []models.Country
			if err := retryRead(func() error {
				return s.db.Where("country_group_id = ?", g.ID).Order("name asc").Find(&countries).Error
			}); err != nil {
				return nil, err
			}

			item := CountryGroupWithDiscount{
				ID:                            g.ID,
				Name:                          g.Name,
				RecommendedDiscountPercentage: g.RecommendedDiscountPercentage,
				Countries:                     countries,
			}
			if d, ok := byGroup[g.ID]; ok {
				item.Discount = &DiscountOverride{Coupon: d.Coupon, DiscountPercentage: d.DiscountPercentage}
			}
			out = append(out, item)
		}
		return out, nil
	})
}

// UpdateCountryDiscounts aplica o batch de edição: deletes primeiro, depois
// upserts com last-write-wins em (coupon, discount_percentage). Tudo numa
// transação. Produto de outro tenant (ou inexistente) é no-op, não erro.
func (s *ProductStore) UpdateCountryDiscounts(productID, userID string, deletions []string, upserts []DiscountUpsert) (bool, error) {
	if _, err := s.getProductUncached(productID, userID); err != nil {
		if err == ErrNotFound {
			return false, nil
		}
		return false, err
	}

	tx := s.db.Begin()
	if err := tx.Error; err != nil {
		return false, err
	}

	if len(deletions) > 0 {
		if err := tx.Where("product_id = ? AND country_group_id IN (?)", productID, deletions).
			Delete(&models.CountryGroupDiscount{}).Error; err != nil {
			tx.Rollback()
			return false, err
		}
	}

	now := time.Now()
	for _, up := range upserts {
		// ON CONFLICT funciona igual nos dois dialetos suportados (postgres e sqlite3)
		err := tx.Exec(`
			INSERT INTO country_group_discounts
				(id, product_id, country_group_id, coupon, discount_percentage, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (product_id, country_group_id) DO UPDATE SET
				coupon = excluded.coupon,
				discount_percentage = excluded.discount_percentage,
				updated_at = excluded.updated_at`,
			uuid.NewString(), productID, up.CountryGroupID, up.Coupon, up.DiscountPercentage, now, now,
		).Error
		if err != nil {
			tx.Rollback()
			return false, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return false, err
	}

	// descontos são lidos dentro do bundle cacheado do produto
	s.invalidateProduct(userID, productID)
	return true, nil
}

// GetProductForBanner resolve a tupla (produto, país, desconto) de uma requisição
// pública do banner. Qualquer degrau que falhe vira ErrNotFound — inclusive
// referer de origem não registrada, pra impedir embed em domínio alheio.
func (s *ProductStore) GetProductForBanner(productID, countryCode, refererURL string) (BannerData, error) {
	origin := normalizeOrigin(refererURL)
	key := fmt.Sprintf("banner:%s:%s:%s", productID, countryCode, origin)
	tags := []cache.Tag{
		cache.IDTag(productID, cache.KindProducts),
		cache.GlobalTag(cache.KindCountries),
		cache.GlobalTag(cache.KindCountryGroups),
	}

	return cache.Read(s.cache, key, tags, func() (BannerData, error) {
		var data BannerData

		err := retryRead(func() error {
			return s.db.Where("id = ?", productID).First(&data.Product).Error
		})
		if gorm.IsRecordNotFoundError(err) {
			return data, ErrNotFound
		}
		if err != nil {
			return data, err
		}
		if !OriginsMatch(data.Product.URL, refererURL) {
			return data, ErrNotFound
		}

		if err := retryRead(func() error {
			return s.db.Where("product_id = ?", productID).First(&data.Customization).Error
		}); err != nil {
			if gorm.IsRecordNotFoundError(err) {
				return data, ErrNotFound
			}
			return data, err
		}

		err = retryRead(func() error {
			return s.db.Where("code = ?", countryCode).First(&data.Country).Error
		})
		if gorm.IsRecordNotFoundError(err) {
			return data, ErrNotFound
		}
		if err != nil {
			return data, err
		}

		var group models.CountryGroup
		err = retryRead(func() error {
			return s.db.Where("id = ?", data.Country.CountryGroupID).First(&group).Error
		})
		if gorm.IsRecordNotFoundError(err) {
			return data, ErrNotFound
		}
		if err != nil {
			return data, err
		}

		var discount models.CountryGroupDiscount
		err = retryRead(func() error {
			return s.db.Where("product_id = ? AND country_group_id = ?", productID, group.ID).
				First(&discount).Error
		})
		switch {
		case err == nil:
			data.Coupon = discount.Coupon
			data.DiscountPercentage = discount.DiscountPercentage
		case gorm.IsRecordNotFoundError(err):
			// sem override: cai na recomendação do grupo, sem cupom
			if group.RecommendedDiscountPercentage == nil {
				return data, ErrNotFound
			}
			data.DiscountPercentage = *group.RecommendedDiscountPercentage
		default:
			return data, err
		}

		return data, nil
	})
}

// getProductUncached é a checagem de ownership usada pelos writes (e por leituras
// que já têm sua própria entrada no cache).
func (s *ProductStore) getProductUncached(id, userID string) (models.Product, error) {
	var product models.Product
	err := retryRead(func() error {
		return s.db.Where("id = ? AND user_id = ?", id, userID).First(&product).Error
	})
	if gorm.IsRecordNotFoundError(err) {
		return product, ErrNotFound
	}
	return product, err
}

func (s *ProductStore) invalidateProduct(userID, productID string) {
	s.cache.Invalidate(
		cache.GlobalTag(cache.KindProducts),
		cache.UserTag(userID, cache.KindProducts),
		cache.IDTag(productID, cache.KindProducts),
	)
}
