package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	analyzer_store "github.com/ethanbaker/analyzer/internal/stores/analyzer"
	countries_store "github.com/ethanbaker/analyzer/internal/stores/countries"
	"github.com/ethanbaker/analyzer/pkg/analyzer"
	"github.com/ethanbaker/analyzer/pkg/countries"
	"github.com/ethanbaker/analyzer/pkg/profile"
	"github.com/ethanbaker/analyzer/pkg/sdk"
	"github.com/ethanbaker/analyzer/pkg/upstream"
	"github.com/ethanbaker/analyzer/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const countriesJSON = `[
	{"name":"Nigeria","capital":"Abuja","region":"Africa","population":206139589,"flag":"https://flagcdn.com/ng.svg","currencies":[{"code":"NGN"}]},
	{"name":"Ghana","capital":"Accra","region":"Africa","population":31072940,"flag":"https://flagcdn.com/gh.svg","currencies":[{"code":"GHS"}]},
	{"name":"France","capital":"Paris","region":"Europe","population":67391582,"flag":"https://flagcdn.com/fr.svg","currencies":[{"code":"EUR"}]},
	{"name":"Bouvet Island","region":"Antarctic","population":0,"currencies":[{"code":"NOK"}]}
]`

const ratesJSON = `{"result":"success","rates":{"USD":1,"NGN":1600.23,"GHS":15.34,"EUR":0.92}}`

// fakeUpstream serves countries, rates and facts, and can be switched into failure
type fakeUpstream struct {
	*httptest.Server
	failing atomic.Bool
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	f := &fakeUpstream{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.failing.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/countries":
			w.Write([]byte(countriesJSON))
		case "/rates":
			w.Write([]byte(ratesJSON))
		case "/fact":
			w.Write([]byte(`{"fact":"Cats have five toes on their front paws.","length":40}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(f.Close)
	return f
}

type testServer struct {
	engine   *gin.Engine
	upstream *fakeUpstream
	now      time.Time
}

func newTestServer(t *testing.T, mutate func(*utils.Settings)) *testServer {
	t.Helper()

	up := newFakeUpstream(t)

	settings, err := utils.LoadSettings(utils.NewConfig(map[string]string{
		"RATE_LIMIT_RPS":     "0",
		"CACHE_DIR":          t.TempDir(),
		"COUNTRIES_URL":      up.URL + "/countries",
		"EXCHANGE_RATES_URL": up.URL + "/rates",
		"CATFACT_URL":        up.URL + "/fact",
	}))
	require.NoError(t, err)
	if mutate != nil {
		mutate(settings)
	}

	now := time.Date(2025, 10, 21, 9, 0, 0, 0, time.UTC)
	tick := int64(0)
	clock := func() time.Time {
		return now.Add(time.Duration(atomic.AddInt64(&tick, 1)) * time.Second)
	}

	a, err := analyzer.NewAnalyzer(analyzer_store.NewInMemoryStore(), analyzer.WithClock(clock))
	require.NoError(t, err)

	countryStore := countries_store.NewInMemoryStore()
	refresher, err := countries.NewRefresher(&countries.RefresherOptions{
		Store:         countryStore,
		Source:        countries.NewHTTPSource(settings.Countries.CountriesURL, settings.Countries.RatesURL, upstream.Options{Timeout: time.Second, ConsecutiveFailures: 100}),
		CacheDir:      settings.Countries.CacheDir,
		MinMultiplier: settings.Countries.MinMultiplier,
		MaxMultiplier: settings.Countries.MaxMultiplier,
		Now:           func() time.Time { return now },
	})
	require.NoError(t, err)
	t.Cleanup(refresher.Stop)

	engine, cleanup, err := NewEngine(&Dependencies{
		Settings:     settings,
		Analyzer:     a,
		CountryStore: countryStore,
		Refresher:    refresher,
		Profile: profile.NewService(profile.Options{
			Identity: profile.Identity{Email: settings.Profile.Email, Name: settings.Profile.Name, Stack: settings.Profile.Stack},
			FactURL:  settings.Profile.FactURL,
			Timeout:  settings.Profile.FactTimeout,
		}),
	})
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return &testServer{engine: engine, upstream: up, now: now}
}

// do performs a request against the engine
func (s *testServer) do(t *testing.T, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestNewEngineRequiresDependencies(t *testing.T) {
	_, _, err := NewEngine(nil)
	assert.Error(t, err)

	_, _, err = NewEngine(&Dependencies{Settings: &utils.Settings{}})
	assert.Error(t, err)
}

func TestHealthAndNoRoute(t *testing.T) {
	s := newTestServer(t, nil)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/does-not-exist", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, http.MethodGet, "/health", "")

	w := s.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "analyzer_http_requests_total")
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodGet, "/health", "", "X-Request-ID", "req-1")
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
}

func TestCreateString(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/strings", `{"value":"A man, a plan, a canal: Panama"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	record := decode[sdk.StringRecord](t, w)
	assert.Equal(t, analyzer.Hash("A man, a plan, a canal: Panama"), record.ID)
	assert.Equal(t, record.ID, record.Properties.SHA256Hash)
	assert.Equal(t, "A man, a plan, a canal: Panama", record.Value)
	assert.Equal(t, 30, record.Properties.Length)
	assert.True(t, record.Properties.IsPalindrome)
	assert.Equal(t, 7, record.Properties.WordCount)
	assert.Equal(t, 11, record.Properties.UniqueCharacters)
	assert.Equal(t, 9, record.Properties.CharacterFrequencyMap["a"])
	assert.Equal(t, "2025-10-21T09:00:01.000Z", record.CreatedAt)
}

func TestCreateStringErrors(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name   string
		body   string
		code   int
		detail string
	}{
		{name: "empty body", body: "", code: http.StatusBadRequest, detail: "Invalid request body or missing 'value' field"},
		{name: "invalid json", body: `{"value":`, code: http.StatusBadRequest, detail: "Invalid request body or missing 'value' field"},
		{name: "missing value", body: `{"other":"x"}`, code: http.StatusBadRequest, detail: "Invalid request body or missing 'value' field"},
		{name: "null value", body: `{"value":null}`, code: http.StatusBadRequest, detail: "Invalid request body or missing 'value' field"},
		{name: "blank value", body: `{"value":"   "}`, code: http.StatusBadRequest, detail: "Invalid request body or missing 'value' field"},
		{name: "array body", body: `["x"]`, code: http.StatusBadRequest, detail: "Invalid request body or missing 'value' field"},
		{name: "number value", body: `{"value":42}`, code: http.StatusUnprocessableEntity, detail: "Invalid data type for 'value' (must be string)"},
		{name: "object value", body: `{"value":{"a":1}}`, code: http.StatusUnprocessableEntity, detail: "Invalid data type for 'value' (must be string)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/strings", tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.detail, decode[sdk.ErrorResponse](t, w).Detail)
		})
	}
}

func TestCreateStringConflict(t *testing.T) {
	s := newTestServer(t, nil)

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/strings", `{"value":"racecar"}`).Code)

	w := s.do(t, http.MethodPost, "/strings", `{"value":"racecar"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "String already exists in the system", decode[sdk.ErrorResponse](t, w).Detail)

	// The stored record keeps its original timestamp
	got := decode[sdk.StringRecord](t, s.do(t, http.MethodGet, "/strings/racecar", ""))
	assert.Equal(t, "2025-10-21T09:00:01.000Z", got.CreatedAt)
}

func TestGetAndDeleteString(t *testing.T) {
	s := newTestServer(t, nil)

	for _, value := range []string{"hello world", "a/b c", "héllo"} {
		body, err := json.Marshal(map[string]string{"value": value})
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/strings", string(body)).Code)

		path := "/strings/" + url.PathEscape(value)

		w := s.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code, "%s: %s", value, w.Body.String())
		assert.Equal(t, value, decode[sdk.StringRecord](t, w).Value)

		w = s.do(t, http.MethodDelete, path, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())

		w = s.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "String does not exist in the system", decode[sdk.ErrorResponse](t, w).Detail)

		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, path, "").Code)
	}
}

func TestStringRoundTripThroughClient(t *testing.T) {
	s := newTestServer(t, nil)
	srv := httptest.NewServer(s.engine)
	defer srv.Close()

	client := sdk.NewClient(srv.URL, "")
	ctx := context.Background()

	for _, value := range []string{"a+b", "a+b/c", "1+1=2 / math", "100% sure"} {
		created, err := client.CreateString(ctx, value)
		require.NoError(t, err, value)

		got, err := client.GetString(ctx, value)
		require.NoError(t, err, value)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, value, got.Value)

		require.NoError(t, client.DeleteString(ctx, value), value)

		_, err = client.GetString(ctx, value)
		assert.ErrorIs(t, err, sdk.ErrNotFound)
		assert.ErrorIs(t, client.DeleteString(ctx, value), sdk.ErrNotFound)
	}
}

// seedStrings stores values in order, so the last one is the newest
func seedStrings(t *testing.T, s *testServer, values ...string) {
	t.Helper()

	for _, value := range values {
		body, err := json.Marshal(map[string]string{"value": value})
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/strings", string(body)).Code)
	}
}

func values(records []sdk.StringRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Value)
	}
	return out
}

func TestListStrings(t *testing.T) {
	s := newTestServer(t, nil)
	seedStrings(t, s, "racecar", "hello world", "Level", "zebra crossing ahead", "noon")

	tests := []struct {
		name    string
		query   string
		want    []string
		applied string
	}{
		{name: "no filters", query: "", want: []string{"noon", "zebra crossing ahead", "Level", "hello world", "racecar"}, applied: `{}`},
		{name: "palindromes", query: "?is_palindrome=true", want: []string{"noon", "Level", "racecar"}, applied: `{"is_palindrome":true}`},
		{name: "palindrome is case-insensitive", query: "?is_palindrome=FALSE", want: []string{"zebra crossing ahead", "hello world"}, applied: `{"is_palindrome":false}`},
		{name: "min length", query: "?min_length=7", want: []string{"zebra crossing ahead", "hello world", "racecar"}, applied: `{"min_length":7}`},
		{name: "max length", query: "?max_length=5", want: []string{"noon", "Level"}, applied: `{"max_length":5}`},
		{name: "word count", query: "?word_count=1", want: []string{"noon", "Level", "racecar"}, applied: `{"word_count":1}`},
		{name: "contains character is case-sensitive", query: "?contains_character=L", want: []string{"Level"}, applied: `{"contains_character":"L"}`},
		{name: "combined", query: "?is_palindrome=true&min_length=5&contains_character=e", want: []string{"Level", "racecar"}, applied: `{"is_palindrome":true,"min_length":5,"contains_character":"e"}`},
		{name: "last value wins", query: "?word_count=2&word_count=3", want: []string{"zebra crossing ahead"}, applied: `{"word_count":3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/strings"+tt.query, "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var raw struct {
				Data           []sdk.StringRecord `json:"data"`
				Count          int                `json:"count"`
				FiltersApplied json.RawMessage    `json:"filters_applied"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))

			assert.Equal(t, tt.want, values(raw.Data))
			assert.Equal(t, len(tt.want), raw.Count)
			assert.JSONEq(t, tt.applied, string(raw.FiltersApplied))
		})
	}
}

func TestListStringsInvalidFilters(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		query  string
		detail string
	}{
		{query: "?is_palindrome=yes", detail: "Invalid is_palindrome value"},
		{query: "?min_length=abc", detail: "Invalid min_length"},
		{query: "?max_length=1.5", detail: "Invalid max_length"},
		{query: "?word_count=", detail: "Invalid word_count"},
		{query: "?contains_character=ab", detail: "contains_character must be a single character"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/strings"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.detail, decode[sdk.ErrorResponse](t, w).Detail)
		})
	}
}

func TestFilterByNaturalLanguage(t *testing.T) {
	s := newTestServer(t, nil)
	seedStrings(t, s, "racecar", "hello world", "Level", "zebra crossing ahead", "noon")

	t.Run("single word palindromes", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/strings/filter-by-natural-language?query=all%20single%20word%20palindromic%20strings", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[sdk.NaturalLanguageResponse](t, w)
		assert.Equal(t, []string{"noon", "Level", "racecar"}, values(resp.Data))
		assert.Equal(t, 3, resp.Count)
		assert.Equal(t, "all single word palindromic strings", resp.InterpretedQuery.Original)
		require.NotNil(t, resp.InterpretedQuery.ParsedFilters.WordCount)
		assert.Equal(t, 1, *resp.InterpretedQuery.ParsedFilters.WordCount)
		require.NotNil(t, resp.InterpretedQuery.ParsedFilters.IsPalindrome)
		assert.True(t, *resp.InterpretedQuery.ParsedFilters.IsPalindrome)
	})

	t.Run("same set as word_count filter", func(t *testing.T) {
		nl := decode[sdk.NaturalLanguageResponse](t, s.do(t, http.MethodGet, "/strings/filter-by-natural-language?query=Find%20all%20single%20word%20strings", ""))
		list := decode[sdk.StringListResponse](t, s.do(t, http.MethodGet, "/strings?word_count=1", ""))
		assert.Equal(t, values(list.Data), values(nl.Data))
	})

	t.Run("longer than", func(t *testing.T) {
		resp := decode[sdk.NaturalLanguageResponse](t, s.do(t, http.MethodGet, "/strings/filter-by-natural-language?query=strings%20longer%20than%2010%20characters", ""))
		require.NotNil(t, resp.InterpretedQuery.ParsedFilters.MinLength)
		assert.Equal(t, 11, *resp.InterpretedQuery.ParsedFilters.MinLength)
		assert.Equal(t, []string{"zebra crossing ahead", "hello world"}, values(resp.Data))
	})

	t.Run("letter", func(t *testing.T) {
		resp := decode[sdk.NaturalLanguageResponse](t, s.do(t, http.MethodGet, "/strings/filter-by-natural-language?query=strings%20containing%20the%20letter%20z", ""))
		assert.Equal(t, []string{"zebra crossing ahead"}, values(resp.Data))
	})

	for _, query := range []string{"", "?query=", "?query=tell%20me%20a%20story"} {
		t.Run("rejects "+query, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/strings/filter-by-natural-language"+query, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decode[sdk.ErrorResponse](t, w).Detail)
		})
	}
}

func TestCountries(t *testing.T) {
	s := newTestServer(t, nil)

	// Nothing cached yet
	w := s.do(t, http.MethodGet, "/countries/image", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Summary image not found", decode[sdk.ErrorResponse](t, w).Error)

	status := decode[sdk.StatusResponse](t, s.do(t, http.MethodGet, "/status", ""))
	assert.Zero(t, status.TotalCountries)
	assert.Nil(t, status.LastRefreshedAt)

	// Refresh
	w = s.do(t, http.MethodPost, "/countries/refresh", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	refresh := decode[sdk.RefreshResponse](t, w)
	assert.Equal(t, "Countries refreshed successfully", refresh.Message)
	assert.Equal(t, 3, refresh.Updated)
	assert.Equal(t, 1, refresh.Skipped)

	status = decode[sdk.StatusResponse](t, s.do(t, http.MethodGet, "/status", ""))
	assert.Equal(t, int64(3), status.TotalCountries)
	require.NotNil(t, status.LastRefreshedAt)
	assert.Equal(t, "2025-10-21T09:00:00.000Z", *status.LastRefreshedAt)

	// Listing
	list := decode[[]sdk.Country](t, s.do(t, http.MethodGet, "/countries?region=africa", ""))
	require.Len(t, list, 2)
	assert.Equal(t, "Nigeria", list[0].Name)
	assert.Equal(t, "Ghana", list[1].Name)

	list = decode[[]sdk.Country](t, s.do(t, http.MethodGet, "/countries?currency=eur", ""))
	require.Len(t, list, 1)
	assert.Equal(t, "France", list[0].Name)

	list = decode[[]sdk.Country](t, s.do(t, http.MethodGet, "/countries?sort=gdp_desc", ""))
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.GreaterOrEqual(t, list[i-1].EstimatedGDP, list[i].EstimatedGDP)
	}

	// Single country, case-insensitive
	w = s.do(t, http.MethodGet, "/countries/nigeria", "")
	require.Equal(t, http.StatusOK, w.Code)
	nigeria := decode[sdk.Country](t, w)
	require.NotNil(t, nigeria.Capital)
	assert.Equal(t, "Abuja", *nigeria.Capital)
	require.NotNil(t, nigeria.CurrencyCode)
	assert.Equal(t, "NGN", *nigeria.CurrencyCode)
	require.NotNil(t, nigeria.ExchangeRate)
	assert.InDelta(t, 1600.23, *nigeria.ExchangeRate, 1e-9)
	low := float64(206139589) * 1000 / 1600.23
	high := float64(206139589) * 2000 / 1600.23
	assert.GreaterOrEqual(t, nigeria.EstimatedGDP, low-1)
	assert.LessOrEqual(t, nigeria.EstimatedGDP, high+1)

	// Image
	w = s.do(t, http.MethodGet, "/countries/image", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	// Delete
	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/countries/GHANA", "").Code)
	w = s.do(t, http.MethodGet, "/countries/ghana", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Country not found", decode[sdk.ErrorResponse](t, w).Error)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/countries/Ghana/delete", "").Code)
	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodPost, "/countries/France/delete", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/countries/france", "").Code)
}

func TestCountriesRefreshUpstreamUnavailable(t *testing.T) {
	s := newTestServer(t, nil)
	s.upstream.failing.Store(true)

	w := s.do(t, http.MethodPost, "/countries/refresh", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	resp := decode[sdk.ErrorResponse](t, w)
	assert.Equal(t, "External data source unavailable", resp.Error)
	assert.NotEmpty(t, resp.Details)

	status := decode[sdk.StatusResponse](t, s.do(t, http.MethodGet, "/status", ""))
	assert.Zero(t, status.TotalCountries)
}

func TestCountriesRefreshRequiresAdminKey(t *testing.T) {
	s := newTestServer(t, func(settings *utils.Settings) {
		settings.Server.AdminAPIKey = "secret"
	})

	w := s.do(t, http.MethodPost, "/countries/refresh", "")
	assert.NotEqual(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/countries/refresh", "", "X-API-KEY", "secret")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestProfile(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodGet, "/me", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[sdk.ProfileResponse](t, w)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "developer@example.com", resp.User.Email)
	assert.Equal(t, "Analyzer Developer", resp.User.Name)
	assert.Equal(t, "Go/Gin", resp.User.Stack)
	assert.Equal(t, "Cats have five toes on their front paws.", resp.Fact)
	_, err := time.Parse(analyzer.TimestampLayout, resp.Timestamp)
	assert.NoError(t, err)

	s.upstream.failing.Store(true)
	resp = decode[sdk.ProfileResponse](t, s.do(t, http.MethodGet, "/me", ""))
	assert.Equal(t, profile.FallbackFact, resp.Fact)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(settings *utils.Settings) {
		settings.Server.RateLimitRPS = 0.001
		settings.Server.RateLimitBurst = 2
	})

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(t, http.MethodGet, "/health", "").Code)
}

func TestStartShutsDown(t *testing.T) {
	settings, err := utils.LoadSettings(utils.NewConfig(map[string]string{"API_PORT": "0", "RATE_LIMIT_RPS": "0", "CACHE_DIR": t.TempDir()}))
	require.NoError(t, err)

	a, err := analyzer.NewAnalyzer(analyzer_store.NewInMemoryStore())
	require.NoError(t, err)
	store := countries_store.NewInMemoryStore()
	refresher, err := countries.NewRefresher(&countries.RefresherOptions{Store: store, Source: countries.NewHTTPSource("http://127.0.0.1:1", "http://127.0.0.1:1", upstream.Options{}), CacheDir: t.TempDir(), MinMultiplier: 1, MaxMultiplier: 1})
	require.NoError(t, err)
	defer refresher.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Start(ctx, &Dependencies{
			Settings:     settings,
			Analyzer:     a,
			CountryStore: store,
			Refresher:    refresher,
			Profile:      profile.NewService(profile.Options{FactURL: "http://127.0.0.1:1"}),
		})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
