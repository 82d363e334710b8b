package health

import (
	"github.com/ethanbaker/api/pkg/api_types"
	"github.com/gin-gonic/gin"
)

// getStatus reports that the server is up
func getStatus(c *gin.Context) {
	c.JSON(api_types.NewSuccessResponse("OK", nil).AsGinResponse())
}
