package stringsapi

import (
	"github.com/ethanbaker/analyzer/pkg/analyzer"
	"github.com/ethanbaker/analyzer/pkg/sdk"
)

// toSDKRecord converts a record to its response form
func toSDKRecord(r *analyzer.Record) sdk.StringRecord {
	return sdk.StringRecord{
		ID:    r.ID,
		Value: r.Value,
		Properties: sdk.StringProperties{
			Length:                r.Properties.Length,
			IsPalindrome:          r.Properties.IsPalindrome,
			UniqueCharacters:      r.Properties.UniqueCharacters,
			WordCount:             r.Properties.WordCount,
			SHA256Hash:            r.Properties.SHA256Hash,
			CharacterFrequencyMap: r.Properties.CharacterFrequencyMap,
		},
		CreatedAt: analyzer.FormatTimestamp(r.CreatedAt),
	}
}

func toSDKRecords(records []*analyzer.Record) []sdk.StringRecord {
	out := make([]sdk.StringRecord, 0, len(records))
	for _, r := range records {
		out = append(out, toSDKRecord(r))
	}
	return out
}

// toSDKFilters echoes only the filters that were supplied
func toSDKFilters(f analyzer.Filters) sdk.StringFilters {
	return sdk.StringFilters{
		IsPalindrome:      f.IsPalindrome,
		MinLength:         f.MinLength,
		MaxLength:         f.MaxLength,
		WordCount:         f.WordCount,
		ContainsCharacter: f.ContainsCharacter,
	}
}
