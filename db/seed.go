package db

import (
	"log"

	"paridade/cache"
	"paridade/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

type seedCountry struct {
	code string
	name string
}

type seedGroup struct {
	name     string
	discount float64 // recomendação, fração em [0,1]
	members  []seedCountry
}

// Dado de referência global: cohorts de paridade de poder de compra, do maior
// desconto recomendado pro menor. Lista enxuta de propósito — cobre os mercados
// mais comuns; o resto entra por migração de dados, não por código.
var seedGroups = []seedGroup{
	{
		name: "PPP Group 1", discount: 0.6,
		members: []seedCountry{
			{"PK", "Pakistan"}, {"EG", "Egypt"}, {"NG", "Nigeria"}, {"BD", "Bangladesh"},
			{"ET", "Ethiopia"}, {"UA", "Ukraine"}, {"LK", "Sri Lanka"}, {"NP", "Nepal"},
		},
	},
	{
		name: "PPP Group 2", discount: 0.5,
		members: []seedCountry{
			{"IN", "India"}, {"ID", "Indonesia"}, {"VN", "Vietnam"}, {"PH", "Philippines"},
			{"KE", "Kenya"}, {"MA", "Morocco"}, {"BO", "Bolivia"}, {"TN", "Tunisia"},
		},
	},
	{
		name: "PPP Group 3", discount: 0.4,
		members: []seedCountry{
			{"BR", "Brazil"}, {"TR", "Turkey"}, {"CO", "Colombia"}, {"PE", "Peru"},
			{"ZA", "South Africa"}, {"TH", "Thailand"}, {"AR", "Argentina"}, {"MX", "Mexico"},
		},
	},
	{
		name: "PPP Group 4", discount: 0.3,
		members: []seedCountry{
			{"CN", "China"}, {"MY", "Malaysia"}, {"RU", "Russia"}, {"BG", "Bulgaria"},
			{"RO", "Romania"}, {"CL", "Chile"}, {"HU", "Hungary"}, {"PL", "Poland"},
		},
	},
	{
		name: "PPP Group 5", discount: 0.2,
		members: []seedCountry{
			{"PT", "Portugal"}, {"GR", "Greece"}, {"CZ", "Czechia"}, {"SK", "Slovakia"},
			{"ES", "Spain"}, {"KR", "South Korea"}, {"JP", "Japan"}, {"IT", "Italy"},
		},
	},
	{
		name: "PPP Group 6", discount: 0.1,
		members: []seedCountry{
			{"US", "United States"}, {"GB", "United Kingdom"}, {"DE", "Germany"},
			{"FR", "France"}, {"CA", "Canada"}, {"AU", "Australia"}, {"NL", "Netherlands"},
			{"SE", "Sweden"}, {"CH", "Switzerland"}, {"NO", "Norway"},
		},
	},
}

// SeedCountryGroups garante os grupos/países de referência. Idempotente: só
// insere o que falta (match por nome de grupo e código de país).
func SeedCountryGroups(db *gorm.DB, c *cache.Cache) error {
	inserted := false

	for _, g := range seedGroups {
		var group models.CountryGroup
		err := db.Where("name = ?", g.name).First(&group).Error
		if gorm.IsRecordNotFoundError(err) {
			discount := g.discount
			group = models.CountryGroup{
				ID:                            uuid.NewString(),
				Name:                          g.name,
				RecommendedDiscountPercentage: &discount,
			}
			if err := db.Create(&group).Error; err != nil {
				return err
			}
			inserted = true
		} else if err != nil {
			return err
		}

		for _, m := range g.members {
			var country models.Country
			err := db.Where("code = ?", m.code).First(&country).Error
			if gorm.IsRecordNotFoundError(err) {
				country = models.Country{
					ID:             uuid.NewString(),
					Name:           m.name,
					Code:           m.code,
					CountryGroupID: group.ID,
				}
				if err := db.Create(&country).Error; err != nil {
					return err
				}
				inserted = true
			} else if err != nil {
				return err
			}
		}
	}

	if inserted {
		c.Invalidate(
			cache.GlobalTag(cache.KindCountries),
			cache.GlobalTag(cache.KindCountryGroups),
		)
		log.Printf("seed: country groups/countries atualizados")
	}
	return nil
}
