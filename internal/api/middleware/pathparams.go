package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// PathParams decodes path parameters that were matched against the raw (escaped)
// path. The engine must run with UseRawPath set and UnescapePathValues cleared,
// since gin unescapes with query rules and turns '+' into a space.
func PathParams() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Without a raw path gin matched on the decoded path already
		if c.Request.URL.RawPath == "" {
			c.Next()
			return
		}

		for i, param := range c.Params {
			value, err := url.PathUnescape(param.Value)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid path parameter"})
				return
			}
			c.Params[i].Value = value
		}

		c.Next()
	}
}
