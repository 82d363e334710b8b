package countriesapi

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/ethanbaker/analyzer/internal/logging"
	"github.com/ethanbaker/analyzer/pkg/analyzer"
	"github.com/ethanbaker/analyzer/pkg/countries"
	"github.com/ethanbaker/analyzer/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// Controller serves the country cache endpoints
type Controller struct {
	store     countries.StoreInterface
	refresher *countries.Refresher
}

// RefreshCountries handles POST requests that refresh the cache from the upstream APIs
func (ctrl *Controller) RefreshCountries(c *gin.Context) {
	result, err := ctrl.refresher.Refresh(c.Request.Context())
	if err != nil {
		if errors.Is(err, countries.ErrUpstreamUnavailable) {
			logging.Warn().Err(err).Msg("[COUNTRIES]: upstream unavailable during refresh")
			c.JSON(http.StatusServiceUnavailable, sdk.ErrorResponse{
				Error:   "External data source unavailable",
				Details: "Could not fetch data from restcountries.com or open.er-api.com",
			})
			return
		}

		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, sdk.RefreshResponse{
		Message:         "Countries refreshed successfully",
		Updated:         result.Updated,
		Skipped:         result.Skipped,
		LastRefreshedAt: analyzer.FormatTimestamp(result.RefreshedAt),
	})
}

// ListCountries handles GET requests listing cached countries
func (ctrl *Controller) ListCountries(c *gin.Context) {
	opts := countries.ListOptions{
		Region:    strings.TrimSpace(c.Query("region")),
		Currency:  strings.TrimSpace(c.Query("currency")),
		SortByGDP: c.Query("sort") == "gdp_desc",
	}

	list, err := ctrl.store.List(c.Request.Context(), opts)
	if err != nil {
		internalError(c, err)
		return
	}

	out := make([]sdk.Country, 0, len(list))
	for _, country := range list {
		out = append(out, toSDKCountry(country))
	}

	c.JSON(http.StatusOK, out)
}

// GetCountry handles GET requests for a single country
func (ctrl *Controller) GetCountry(c *gin.Context) {
	country, err := ctrl.store.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, countries.ErrNotFound) {
			c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Country not found"})
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSDKCountry(country))
}

// DeleteCountry handles DELETE requests for a single country
func (ctrl *Controller) DeleteCountry(c *gin.Context) {
	if err := ctrl.store.Delete(c.Request.Context(), c.Param("name")); err != nil {
		if errors.Is(err, countries.ErrNotFound) {
			c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Country not found"})
			return
		}
		internalError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetStatus handles GET requests summarizing the cache
func (ctrl *Controller) GetStatus(c *gin.Context) {
	status, err := ctrl.store.Status(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	resp := sdk.StatusResponse{TotalCountries: status.TotalCountries}
	if status.LastRefreshedAt != nil {
		ts := analyzer.FormatTimestamp(*status.LastRefreshedAt)
		resp.LastRefreshedAt = &ts
	}

	c.JSON(http.StatusOK, resp)
}

// GetSummaryImage handles GET requests for the rendered summary
func (ctrl *Controller) GetSummaryImage(c *gin.Context) {
	path := ctrl.refresher.ImagePath()
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Summary image not found"})
		return
	}

	c.Header("Content-Type", "image/png")
	c.File(path)
}

// internalError logs an unexpected error and hides it from the caller
func internalError(c *gin.Context, err error) {
	logging.Error().Err(err).Str("path", c.Request.URL.Path).Msg("[COUNTRIES]: request failed")
	c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Internal server error"})
}

// toSDKCountry converts a country to its response form
func toSDKCountry(c *countries.Country) sdk.Country {
	var capital *string
	if c.Capital != "" {
		capital = &c.Capital
	}

	return sdk.Country{
		ID:              c.ID,
		Name:            c.Name,
		Capital:         capital,
		Region:          c.Region,
		Population:      c.Population,
		CurrencyCode:    c.CurrencyCode,
		ExchangeRate:    c.ExchangeRate,
		EstimatedGDP:    c.EstimatedGDP,
		FlagURL:         c.FlagURL,
		LastRefreshedAt: analyzer.FormatTimestamp(c.LastRefreshedAt),
	}
}
