package profileapi

import (
	"github.com/ethanbaker/analyzer/pkg/profile"
	"github.com/gin-gonic/gin"
)

// Register routes for the profile module
func RegisterRoutes(g *gin.RouterGroup, service *profile.Service) {
	ctrl := &Controller{service: service}

	g.GET("/me", ctrl.GetProfile)
}
