package store

import (
	"paridade/cache"
	"paridade/models"
	"paridade/plans"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// SubscriptionStore mantém a assinatura (1 por tenant) em dia com o provedor
// de billing.
type SubscriptionStore struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewSubscriptionStore(db *gorm.DB, c *cache.Cache) *SubscriptionStore {
	return &SubscriptionStore{db: db, cache: c}
}

// CreateUserSubscription provisiona a assinatura Free do tenant recém-criado.
// Idempotente: assinatura já existente é aceita em silêncio, não é erro.
func (s *SubscriptionStore) CreateUserSubscription(userID string, tier plans.Tier) error {
	var existing models.UserSubscription
	if err := s.db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		return nil
	}

	sub := models.UserSubscription{
		ID:     uuid.NewString(),
		UserID: userID,
		Tier:   string(tier),
	}
	if err := s.db.Create(&sub).Error; err != nil {
		// corrida com outro create: se a linha apareceu, o unique index fez o papel dele
		var again models.UserSubscription
		if e := s.db.Where("user_id = ?", userID).First(&again).Error; e == nil {
			return nil
		}
		return err
	}

	s.invalidate(userID, sub.ID)
	return nil
}

func (s *SubscriptionStore) GetUserSubscription(userID string) (models.UserSubscription, error) {
	key := "subscription:" + userID
	tags := []cache.Tag{cache.UserTag(userID, cache.KindSubscription)}

	return cache.Read(s.cache, key, tags, func() (models.UserSubscription, error) {
		var sub models.UserSubscription
		err := retryRead(func() error {
			return s.db.Where("user_id = ?", userID).First(&sub).Error
		})
		if gorm.IsRecordNotFoundError(err) {
			return sub, ErrNotFound
		}
		return sub, err
	})
}

// GetUserTier resolve os limites do plano atual do tenant.
func (s *SubscriptionStore) GetUserTier(userID string) (plans.TierLimits, error) {
	sub, err := s.GetUserSubscription(userID)
	if err != nil {
		return plans.TierLimits{}, err
	}
	return plans.Get(sub.Tier), nil
}

// UpdateByUserID aplica mudanças vindas do evento subscription.created.
func (s *SubscriptionStore) UpdateByUserID(userID string, fields map[string]any) error {
	var sub models.UserSubscription
	err := s.db.Where("user_id = ?", userID).First(&sub).Error
	if gorm.IsRecordNotFoundError(err) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := s.db.Model(&models.UserSubscription{}).
		Where("user_id = ?", userID).Updates(fields).Error; err != nil {
		return err
	}
	s.invalidate(userID, sub.ID)
	return nil
}

// UpdateByCustomerID aplica mudanças vindas dos eventos updated/deleted, que só
// carregam o customer id do provedor de billing.
func (s *SubscriptionStore) UpdateByCustomerID(customerID string, fields map[string]any) error {
	var sub models.UserSubscription
	err := s.db.Where("stripe_customer_id = ?", customerID).First(&sub).Error
	if gorm.IsRecordNotFoundError(err) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := s.db.Model(&models.UserSubscription{}).
		Where("stripe_customer_id = ?", customerID).Updates(fields).Error; err != nil {
		return err
	}
	s.invalidate(sub.UserID, sub.ID)
	return nil
}

func (s *SubscriptionStore) invalidate(userID, subscriptionID string) {
	s.cache.Invalidate(
		cache.GlobalTag(cache.KindSubscription),
		cache.UserTag(userID, cache.KindSubscription),
		cache.IDTag(subscriptionID, cache.KindSubscription),
	)
}
