package analyzer

import (
	"time"

	"github.com/ethanbaker/analyzer/pkg/analyzer"
	"gorm.io/datatypes"
)

// RecordModel represents the database model for analyzed strings
type RecordModel struct {
	ID        string    `json:"id" gorm:"column:id;primaryKey;size:64"`
	Value     string    `json:"value" gorm:"column:value;type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;index;not null"`

	Length                int                                `json:"length" gorm:"column:length;index"`
	IsPalindrome          bool                               `json:"is_palindrome" gorm:"column:is_palindrome;index"`
	UniqueCharacters      int                                `json:"unique_characters" gorm:"column:unique_characters"`
	WordCount             int                                `json:"word_count" gorm:"column:word_count;index"`
	SHA256Hash            string                             `json:"sha256_hash" gorm:"column:sha256_hash;size:64;not null"`
	CharacterFrequencyMap datatypes.JSONType[map[string]int] `json:"character_frequency_map" gorm:"column:character_frequency_map"`
}

// TableName sets the table name for GORM
func (RecordModel) TableName() string {
	return "analyzed_strings"
}

// toModel converts a domain record to its database model
func toModel(r *analyzer.Record) *RecordModel {
	return &RecordModel{
		ID:                    r.ID,
		Value:                 r.Value,
		CreatedAt:             r.CreatedAt,
		Length:                r.Properties.Length,
		IsPalindrome:          r.Properties.IsPalindrome,
		UniqueCharacters:      r.Properties.UniqueCharacters,
		WordCount:             r.Properties.WordCount,
		SHA256Hash:            r.Properties.SHA256Hash,
		CharacterFrequencyMap: datatypes.NewJSONType(r.Properties.CharacterFrequencyMap),
	}
}

// toRecord converts a database model back to a domain record
func (m *RecordModel) toRecord() *analyzer.Record {
	frequency := m.CharacterFrequencyMap.Data()
	if frequency == nil {
		frequency = map[string]int{}
	}

	return &analyzer.Record{
		ID:    m.ID,
		Value: m.Value,
		Properties: analyzer.Properties{
			Length:                m.Length,
			IsPalindrome:          m.IsPalindrome,
			UniqueCharacters:      m.UniqueCharacters,
			WordCount:             m.WordCount,
			SHA256Hash:            m.SHA256Hash,
			CharacterFrequencyMap: frequency,
		},
		CreatedAt: m.CreatedAt.UTC(),
	}
}
