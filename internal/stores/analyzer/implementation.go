package analyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethanbaker/analyzer/pkg/analyzer"
	"gorm.io/gorm"
)

// Store handles storage and retrieval of analyzed strings using GORM
type Store struct {
	db *gorm.DB
}

// NewStore creates a new analyzer store on an open database connection
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("a valid database connection must be provided")
	}

	store := &Store{db: db}

	// Auto-migrate tables
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return store, nil
}

// migrate creates or updates the required database tables
func (s *Store) migrate() error {
	return s.db.AutoMigrate(&RecordModel{})
}

// Insert stores a new record, relying on the primary key to reject duplicates
func (s *Store) Insert(ctx context.Context, record *analyzer.Record) error {
	err := s.db.WithContext(ctx).Create(toModel(record)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return analyzer.ErrConflict
		}
		return fmt.Errorf("failed to create record: %w", err)
	}

	return nil
}

// Get retrieves a record by id
func (s *Store) Get(ctx context.Context, id string) (*analyzer.Record, error) {
	var model RecordModel
	result := s.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, analyzer.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", result.Error)
	}

	return model.toRecord(), nil
}

// Delete removes a record by id
func (s *Store) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&RecordModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete record: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return analyzer.ErrNotFound
	}

	return nil
}

// List returns the records matching the filters, newest first. The character filter is
// applied after the query so it stays case-sensitive regardless of the column collation.
func (s *Store) List(ctx context.Context, filters analyzer.Filters) ([]*analyzer.Record, error) {
	query := s.db.WithContext(ctx).Model(&RecordModel{})

	if filters.IsPalindrome != nil {
		query = query.Where("is_palindrome = ?", *filters.IsPalindrome)
	}
	if filters.MinLength != nil {
		query = query.Where("length >= ?", *filters.MinLength)
	}
	if filters.MaxLength != nil {
		query = query.Where("length <= ?", *filters.MaxLength)
	}
	if filters.WordCount != nil {
		query = query.Where("word_count = ?", *filters.WordCount)
	}

	var models []RecordModel
	if err := query.Order("created_at DESC").Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	records := make([]*analyzer.Record, 0, len(models))
	for i := range models {
		record := models[i].toRecord()
		if filters.Match(record) {
			records = append(records, record)
		}
	}

	return records, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}
