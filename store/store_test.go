package store

import (
	"testing"
	"time"

	dbpkg "paridade/db"
	"paridade/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// openTestDB sobe um sqlite em memória já migrado. MaxOpenConns(1) é obrigatório:
// cada conexão do pool enxergaria um banco em memória diferente.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("sqlite em memória: %v", err)
	}
	db.DB().SetMaxOpenConns(1)
	dbpkg.AutoMigrate(db)
	t.Cleanup(func() { db.Close() })
	return db
}

// seedGroup cria um grupo de países com os códigos dados e devolve o id do grupo.
func seedGroup(t *testing.T, db *gorm.DB, name string, recommended *float64, codes map[string]string) string {
	t.Helper()
	group := models.CountryGroup{
		ID:                            uuid.NewString(),
		Name:                          name,
		RecommendedDiscountPercentage: recommended,
	}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("seed group %s: %v", name, err)
	}
	for code, cname := range codes {
		c := models.Country{
			ID:             uuid.NewString(),
			Name:           cname,
			Code:           code,
			CountryGroupID: group.ID,
		}
		if err := db.Create(&c).Error; err != nil {
			t.Fatalf("seed country %s: %v", code, err)
		}
	}
	return group.ID
}

func floatPtr(f float64) *float64 { return &f }

func TestNormalizeOrigin(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://Example.com/pricing?x=1", "https://example.com"},
		{"https://example.com:443/", "https://example.com"},
		{"http://example.com:80/home", "http://example.com"},
		{"example.com/path", "https://example.com"}, // sem scheme assume https
		{"http://example.com:8080", "http://example.com:8080"},
		{"", ""},
		{"   ", ""},
		{"://", ""},
	}
	for _, tc := range cases {
		if got := normalizeOrigin(tc.in); got != tc.want {
			t.Errorf("normalizeOrigin(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestOriginsMatch(t *testing.T) {
	if !OriginsMatch("https://example.com", "https://EXAMPLE.com/pricing") {
		t.Error("mesma origem com case e path diferentes deveria bater")
	}
	if OriginsMatch("https://example.com", "https://evil.com/pricing") {
		t.Error("host diferente não pode bater")
	}
	if OriginsMatch("https://example.com", "http://example.com") {
		t.Error("scheme diferente não pode bater")
	}
	if OriginsMatch("", "") {
		t.Error("origem vazia nunca bate")
	}
}

func TestMonthStart(t *testing.T) {
	now := time.Date(2026, 9, 15, 18, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	got := MonthStart(now)
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("MonthStart = %v, want %v", got, want)
	}
}
