package store

import (
	"fmt"
	"time"

	"paridade/cache"
	"paridade/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// ViewStore grava impressões do banner (append-only) e agrega pra quota/analytics.
type ViewStore struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewViewStore(db *gorm.DB, c *cache.Cache) *ViewStore {
	return &ViewStore{db: db, cache: c}
}

// DayCount é um bucket diário da série de views.
type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// CreateProductView grava uma impressão. userID é o dono do produto: entra só
// pra invalidar as tags de quota/analytics do tenant.
func (s *ViewStore) CreateProductView(productID string, countryID *string, userID string) error {
	view := models.ProductView{
		ID:        uuid.NewString(),
		ProductID: productID,
		CountryID: countryID,
		VisitedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&view).Error; err != nil {
		return err
	}
	s.cache.Invalidate(
		cache.GlobalTag(cache.KindProductViews),
		cache.UserTag(userID, cache.KindProductViews),
	)
	return nil
}

// CountViews conta as views de todos os produtos do tenant desde um instante.
// É a leitura que alimenta a checagem de quota mensal.
func (s *ViewStore) CountViews(userID string, since time.Time) (int64, error) {
	key := fmt.Sprintf("viewCount:%s:%d", userID, since.Unix())
	tags := []cache.Tag{cache.UserTag(userID, cache.KindProductViews)}

	return cache.Read(s.cache, key, tags, func() (int64, error) {
		var count int64
		err := retryRead(func() error {
			return s.db.Table("product_views").
				Joins("JOIN products ON products.id = product_views.product_id").
				Where("products.user_id = ? AND product_views.visited_at >= ?", userID, since).
				Count(&count).Error
		})
		return count, err
	})
}

// MonthStart devolve o início do mês corrente de billing (UTC).
func MonthStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// ViewsPerDay bucketiza as views em dias-calendário do timezone do caller.
// Sempre devolve exatamente days entradas, mais antiga primeiro, dias sem view
// preenchidos com zero.
func (s *ViewStore) ViewsPerDay(userID string, days int, tz *time.Location) ([]DayCount, error) {
	return s.viewsPerDayAt(userID, days, tz, time.Now())
}

func (s *ViewStore) viewsPerDayAt(userID string, days int, tz *time.Location, now time.Time) ([]DayCount, error) {
	if days <= 0 {
		days = 30
	}
	if tz == nil {
		tz = time.UTC
	}

	now = now.In(tz)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, tz)
	start := today.AddDate(0, 0, -(days - 1))

	// o dia corrente entra na key: na virada da meia-noite a janela muda mesmo
	// sem nenhuma view nova, então a série de ontem não pode continuar servindo
	key := fmt.Sprintf("viewsPerDay:%s:%d:%s:%s", userID, days, tz.String(), today.Format("2006-01-02"))
	tags := []cache.Tag{cache.UserTag(userID, cache.KindProductViews)}

	return cache.Read(s.cache, key, tags, func() ([]DayCount, error) {
		var views []models.ProductView
		if err := retryRead(func() error {
			return s.db.Table("product_views").
				Select("product_views.*").
				Joins("JOIN products ON products.id = product_views.product_id").
				Where("products.user_id = ? AND product_views.visited_at >= ?", userID, start.UTC()).
				Find(&views).Error
		}); err != nil {
			return nil, err
		}

		counts := make(map[string]int64, days)
		for _, v := range views {
			counts[v.VisitedAt.In(tz).Format("2006-01-02")]++
		}

		// preenche dias faltantes com 0
		out := make([]DayCount, 0, days)
		for cur := start; !cur.After(today); cur = cur.AddDate(0, 0, 1) {
			day := cur.Format("2006-01-02")
			out = append(out, DayCount{Day: day, Count: counts[day]})
		}
		return out, nil
	})
}
