package countries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethanbaker/analyzer/pkg/countries"
	"gorm.io/gorm"
)

// Store handles storage and retrieval of cached countries using GORM
type Store struct {
	db *gorm.DB
}

// NewStore creates a new country store on an open database connection
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("a valid database connection must be provided")
	}

	store := &Store{db: db}

	// Auto-migrate tables
	if err := store.db.AutoMigrate(&CountryModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return store, nil
}

// Upsert inserts a country or updates the row with the same case-insensitive name
func (s *Store) Upsert(ctx context.Context, country *countries.Country) error {
	model := toModel(country)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing CountryModel
		err := tx.Where("name_key = ?", model.NameKey).First(&existing).Error

		switch {
		case err == nil:
			model.ID = existing.ID
			return tx.Save(model).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			model.ID = 0
			return tx.Create(model).Error
		default:
			return err
		}
	})
	if err != nil {
		return fmt.Errorf("failed to upsert country: %w", err)
	}

	country.ID = model.ID
	return nil
}

// Get retrieves a country by case-insensitive name
func (s *Store) Get(ctx context.Context, name string) (*countries.Country, error) {
	var model CountryModel
	result := s.db.WithContext(ctx).Where("name_key = ?", nameKey(name)).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, countries.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get country: %w", result.Error)
	}

	return model.toCountry(), nil
}

// Delete removes a country by case-insensitive name
func (s *Store) Delete(ctx context.Context, name string) error {
	result := s.db.WithContext(ctx).Where("name_key = ?", nameKey(name)).Delete(&CountryModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete country: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return countries.ErrNotFound
	}

	return nil
}

// List returns the countries matching the options
func (s *Store) List(ctx context.Context, opts countries.ListOptions) ([]*countries.Country, error) {
	query := s.db.WithContext(ctx).Model(&CountryModel{})

	if opts.Region != "" {
		query = query.Where("LOWER(region) = ?", strings.ToLower(opts.Region))
	}
	if opts.Currency != "" {
		query = query.Where("LOWER(currency_code) = ?", strings.ToLower(opts.Currency))
	}
	if opts.SortByGDP {
		query = query.Order("estimated_gdp DESC")
	}
	query = query.Order("id")
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var models []CountryModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}

	out := make([]*countries.Country, 0, len(models))
	for i := range models {
		out = append(out, models[i].toCountry())
	}

	return out, nil
}

// Status returns the number of cached countries and the latest refresh time
func (s *Store) Status(ctx context.Context) (countries.Status, error) {
	var status countries.Status

	if err := s.db.WithContext(ctx).Model(&CountryModel{}).Count(&status.TotalCountries).Error; err != nil {
		return status, fmt.Errorf("failed to count countries: %w", err)
	}
	if status.TotalCountries == 0 {
		return status, nil
	}

	var latest CountryModel
	if err := s.db.WithContext(ctx).Order("last_refreshed_at DESC").First(&latest).Error; err != nil {
		return status, fmt.Errorf("failed to get last refresh: %w", err)
	}
	refreshed := latest.LastRefreshedAt.UTC()
	status.LastRefreshedAt = &refreshed

	return status, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}
