package stringsapi

import (
	"github.com/ethanbaker/analyzer/pkg/analyzer"
	"github.com/gin-gonic/gin"
)

// Register routes for the strings module
func RegisterRoutes(g *gin.RouterGroup, a *analyzer.Analyzer) {
	ctrl := &Controller{analyzer: a}

	// Create base group for string routes
	group := g.Group("/strings")

	group.POST("", ctrl.CreateString)                                      // Analyze and store a string
	group.GET("", ctrl.ListStrings)                                        // List strings matching query filters
	group.GET("/filter-by-natural-language", ctrl.FilterByNaturalLanguage) // List strings matching a natural language query
	group.GET("/:value", ctrl.GetString)                                   // Get a stored string
	group.DELETE("/:value", ctrl.DeleteString)                             // Delete a stored string
}
