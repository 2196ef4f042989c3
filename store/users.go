package store

import (
	"paridade/cache"
	"paridade/models"

	"github.com/jinzhu/gorm"
)

// UserStore só existe pra um caso: o cascade do evento user.deleted do provedor
// de identidade.
type UserStore struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewUserStore(db *gorm.DB, c *cache.Cache) *UserStore {
	return &UserStore{db: db, cache: c}
}

// DeleteUser apaga assinatura e produtos do tenant (com customizações, overrides
// e views) numa transação só, e invalida todas as tags do tenant.
func (s *UserStore) DeleteUser(userID string) error {
	var products []models.Product
	if err := s.db.Where("user_id = ?", userID).Find(&products).Error; err != nil {
		return err
	}
	var sub models.UserSubscription
	hasSub := s.db.Where("user_id = ?", userID).First(&sub).Error == nil

	tx := s.db.Begin()
	if err := tx.Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.UserSubscription{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	for _, p := range products {
		for _, del := range []error{
			tx.Where("product_id = ?", p.ID).Delete(&models.ProductCustomization{}).Error,
			tx.Where("product_id = ?", p.ID).Delete(&models.CountryGroupDiscount{}).Error,
			tx.Where("product_id = ?", p.ID).Delete(&models.ProductView{}).Error,
		} {
			if del != nil {
				tx.Rollback()
				return del
			}
		}
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.Product{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	invalidations := []cache.Tag{
		cache.GlobalTag(cache.KindSubscription),
		cache.UserTag(userID, cache.KindSubscription),
		cache.GlobalTag(cache.KindProducts),
		cache.UserTag(userID, cache.KindProducts),
		cache.GlobalTag(cache.KindProductViews),
		cache.UserTag(userID, cache.KindProductViews),
	}
	if hasSub {
		invalidations = append(invalidations, cache.IDTag(sub.ID, cache.KindSubscription))
	}
	for _, p := range products {
		invalidations = append(invalidations, cache.IDTag(p.ID, cache.KindProducts))
	}
	s.cache.Invalidate(invalidations...)

	return nil
}
