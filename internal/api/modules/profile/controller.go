package profileapi

import (
	"net/http"

	"github.com/ethanbaker/analyzer/pkg/profile"
	"github.com/ethanbaker/analyzer/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// Controller serves the profile endpoint
type Controller struct {
	service *profile.Service
}

// GetProfile handles GET requests for the profile, always answering 200
func (ctrl *Controller) GetProfile(c *gin.Context) {
	p := ctrl.service.Get(c.Request.Context())

	c.JSON(http.StatusOK, sdk.ProfileResponse{
		Status: p.Status,
		User: sdk.ProfileUser{
			Email: p.User.Email,
			Name:  p.User.Name,
			Stack: p.User.Stack,
		},
		Timestamp: p.Timestamp,
		Fact:      p.Fact,
	})
}
