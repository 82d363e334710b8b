package countries

import (
	"strings"
	"time"

	"github.com/ethanbaker/analyzer/pkg/countries"
)

// CountryModel represents the database model for a cached country
type CountryModel struct {
	ID              uint      `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name            string    `json:"name" gorm:"column:name;size:255;not null"`
	NameKey         string    `json:"-" gorm:"column:name_key;size:255;uniqueIndex;not null"`
	Capital         string    `json:"capital" gorm:"column:capital;size:255"`
	Region          string    `json:"region" gorm:"column:region;size:255;index"`
	Population      int64     `json:"population" gorm:"column:population;not null"`
	CurrencyCode    *string   `json:"currency_code" gorm:"column:currency_code;size:10;index"`
	ExchangeRate    *float64  `json:"exchange_rate" gorm:"column:exchange_rate"`
	EstimatedGDP    float64   `json:"estimated_gdp" gorm:"column:estimated_gdp;index"`
	FlagURL         string    `json:"flag_url" gorm:"column:flag_url;size:512"`
	LastRefreshedAt time.Time `json:"last_refreshed_at" gorm:"column:last_refreshed_at;index"`
}

// TableName sets the table name for GORM
func (CountryModel) TableName() string {
	return "countries"
}

// nameKey normalizes a country name for case-insensitive lookups
func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// toModel converts a domain country to its database model
func toModel(c *countries.Country) *CountryModel {
	return &CountryModel{
		ID:              c.ID,
		Name:            c.Name,
		NameKey:         nameKey(c.Name),
		Capital:         c.Capital,
		Region:          c.Region,
		Population:      c.Population,
		CurrencyCode:    c.CurrencyCode,
		ExchangeRate:    c.ExchangeRate,
		EstimatedGDP:    c.EstimatedGDP,
		FlagURL:         c.FlagURL,
		LastRefreshedAt: c.LastRefreshedAt,
	}
}

// toCountry converts a database model back to a domain country
func (m *CountryModel) toCountry() *countries.Country {
	return &countries.Country{
		ID:              m.ID,
		Name:            m.Name,
		Capital:         m.Capital,
		Region:          m.Region,
		Population:      m.Population,
		CurrencyCode:    m.CurrencyCode,
		ExchangeRate:    m.ExchangeRate,
		EstimatedGDP:    m.EstimatedGDP,
		FlagURL:         m.FlagURL,
		LastRefreshedAt: m.LastRefreshedAt.UTC(),
	}
}
