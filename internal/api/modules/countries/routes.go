package countriesapi

import (
	"crypto/subtle"

	"github.com/ethanbaker/analyzer/pkg/countries"
	"github.com/ethanbaker/api/pkg/api_key"
	"github.com/gin-gonic/gin"
)

// Register routes for the countries module. When adminKey is set the refresh route
// requires it in the X-API-KEY header.
func RegisterRoutes(g *gin.RouterGroup, store countries.StoreInterface, refresher *countries.Refresher, adminKey string) {
	ctrl := &Controller{store: store, refresher: refresher}

	// Create base group for country routes
	group := g.Group("/countries")

	refreshHandlers := []gin.HandlerFunc{}
	if adminKey != "" {
		refreshHandlers = append(refreshHandlers, api_key.APIKeyHeaderHandler(makeApiKeyValidator(adminKey)))
	}
	refreshHandlers = append(refreshHandlers, ctrl.RefreshCountries)

	group.POST("/refresh", refreshHandlers...)     // Pull fresh data from the upstream APIs
	group.GET("", ctrl.ListCountries)              // List cached countries
	group.GET("/image", ctrl.GetSummaryImage)      // Serve the summary image
	group.GET("/:name", ctrl.GetCountry)           // Get a country by name
	group.DELETE("/:name", ctrl.DeleteCountry)     // Delete a country by name
	group.Any("/:name/delete", ctrl.DeleteCountry) // Legacy delete route, any method

	g.GET("/status", ctrl.GetStatus)
}

// makeApiKeyValidator checks if the provided API key is valid
func makeApiKeyValidator(adminKey string) func(key string) bool {
	return func(key string) bool {
		return subtle.ConstantTimeCompare([]byte(adminKey), []byte(key)) == 1
	}
}
