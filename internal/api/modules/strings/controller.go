package stringsapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ethanbaker/analyzer/internal/logging"
	"github.com/ethanbaker/analyzer/internal/metrics"
	"github.com/ethanbaker/analyzer/pkg/analyzer"
	"github.com/ethanbaker/analyzer/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// Controller serves the string analysis endpoints
type Controller struct {
	analyzer *analyzer.Analyzer
}

// CreateString handles POST requests to analyze and store a new string
func (ctrl *Controller) CreateString(c *gin.Context) {
	// Parse request body, keeping 'value' raw so its type can be checked
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, sdk.ErrorResponse{Detail: "Invalid request body or missing 'value' field"})
		return
	}

	raw, ok := body["value"]
	if !ok || string(raw) == "null" {
		c.JSON(http.StatusBadRequest, sdk.ErrorResponse{Detail: "Invalid request body or missing 'value' field"})
		return
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		c.JSON(http.StatusUnprocessableEntity, sdk.ErrorResponse{Detail: "Invalid data type for 'value' (must be string)"})
		return
	}
	if strings.TrimSpace(value) == "" {
		c.JSON(http.StatusBadRequest, sdk.ErrorResponse{Detail: "Invalid request body or missing 'value' field"})
		return
	}

	record, err := ctrl.analyzer.Create(c.Request.Context(), value)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.StringsCreated.Inc()
	c.JSON(http.StatusCreated, toSDKRecord(record))
}

// ListStrings handles GET requests listing strings that match the query filters
func (ctrl *Controller) ListStrings(c *gin.Context) {
	filters, err := analyzer.ParseFilters(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}

	records, err := ctrl.analyzer.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	data := toSDKRecords(records)
	c.JSON(http.StatusOK, sdk.StringListResponse{
		Data:           data,
		Count:          len(data),
		FiltersApplied: toSDKFilters(filters),
	})
}

// FilterByNaturalLanguage handles GET requests listing strings that match a natural language query
func (ctrl *Controller) FilterByNaturalLanguage(c *gin.Context) {
	query := c.Query("query")

	filters, records, err := ctrl.analyzer.Interpret(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	data := toSDKRecords(records)
	c.JSON(http.StatusOK, sdk.NaturalLanguageResponse{
		Data:  data,
		Count: len(data),
		InterpretedQuery: sdk.InterpretedQuery{
			Original:      query,
			ParsedFilters: toSDKFilters(filters),
		},
	})
}

// GetString handles GET requests for a single stored string
func (ctrl *Controller) GetString(c *gin.Context) {
	record, err := ctrl.analyzer.Get(c.Request.Context(), c.Param("value"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSDKRecord(record))
}

// DeleteString handles DELETE requests for a single stored string
func (ctrl *Controller) DeleteString(c *gin.Context) {
	if err := ctrl.analyzer.Delete(c.Request.Context(), c.Param("value")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondError maps domain errors to HTTP responses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, analyzer.ErrValidation):
		c.JSON(http.StatusBadRequest, sdk.ErrorResponse{Detail: validationDetail(err)})
	case errors.Is(err, analyzer.ErrConflict):
		c.JSON(http.StatusConflict, sdk.ErrorResponse{Detail: capitalize(analyzer.ErrConflict.Error())})
	case errors.Is(err, analyzer.ErrNotFound):
		c.JSON(http.StatusNotFound, sdk.ErrorResponse{Detail: capitalize(analyzer.ErrNotFound.Error())})
	default:
		logging.Error().Err(err).Str("path", c.Request.URL.Path).Msg("[STRINGS]: request failed")
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Detail: "Internal server error"})
	}
}

// validationDetail strips the sentinel prefix from a validation error
func validationDetail(err error) string {
	msg := strings.TrimPrefix(err.Error(), analyzer.ErrValidation.Error()+": ")

	// Parameter names keep their case
	if first, _, _ := strings.Cut(msg, " "); strings.Contains(first, "_") {
		return msg
	}
	return capitalize(msg)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
