package sdk

/** Errors */

// ErrorResponse is the body of every failed request. The string API fills Detail,
// the country API fills Error and optionally Details.
type ErrorResponse struct {
	Detail  string `json:"detail,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

/** Strings */

// CreateStringRequest represents the request body for analyzing a new string
type CreateStringRequest struct {
	Value string `json:"value"`
}

// StringProperties are the properties derived from a string
type StringProperties struct {
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters"`
	WordCount             int            `json:"word_count"`
	SHA256Hash            string         `json:"sha256_hash"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

// StringRecord is an analyzed string
type StringRecord struct {
	ID         string           `json:"id"`
	Value      string           `json:"value"`
	Properties StringProperties `json:"properties"`
	CreatedAt  string           `json:"created_at"`
}

// StringFilters are the filters accepted by the list endpoint. Nil fields are not applied.
type StringFilters struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// StringListResponse represents the response body of a filtered listing
type StringListResponse struct {
	Data           []StringRecord `json:"data"`
	Count          int            `json:"count"`
	FiltersApplied StringFilters  `json:"filters_applied"`
}

// InterpretedQuery echoes a natural language query and the filters it produced
type InterpretedQuery struct {
	Original      string        `json:"original"`
	ParsedFilters StringFilters `json:"parsed_filters"`
}

// NaturalLanguageResponse represents the response body of a natural language query
type NaturalLanguageResponse struct {
	Data             []StringRecord   `json:"data"`
	Count            int              `json:"count"`
	InterpretedQuery InterpretedQuery `json:"interpreted_query"`
}

/** Countries */

// Country is a cached country
type Country struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	Capital         *string  `json:"capital"`
	Region          string   `json:"region"`
	Population      int64    `json:"population"`
	CurrencyCode    *string  `json:"currency_code"`
	ExchangeRate    *float64 `json:"exchange_rate"`
	EstimatedGDP    float64  `json:"estimated_gdp"`
	FlagURL         string   `json:"flag_url"`
	LastRefreshedAt string   `json:"last_refreshed_at"`
}

// CountryQuery holds the optional parameters of a country listing
type CountryQuery struct {
	Region    string
	Currency  string
	SortByGDP bool
}

// RefreshResponse represents the response body of a country refresh
type RefreshResponse struct {
	Message         string `json:"message"`
	Updated         int    `json:"updated"`
	Skipped         int    `json:"skipped"`
	LastRefreshedAt string `json:"last_refreshed_at"`
}

// StatusResponse summarizes the country cache
type StatusResponse struct {
	TotalCountries  int64   `json:"total_countries"`
	LastRefreshedAt *string `json:"last_refreshed_at"`
}

/** Profile */

// ProfileUser is the identity part of the profile
type ProfileUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Stack string `json:"stack"`
}

// ProfileResponse represents the response body of the profile endpoint
type ProfileResponse struct {
	Status    string      `json:"status"`
	User      ProfileUser `json:"user"`
	Timestamp string      `json:"timestamp"`
	Fact      string      `json:"fact"`
}
