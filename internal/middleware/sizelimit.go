package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/pawcare-api/pkg/httputil"
)

type SizeLimitConfig struct {
	MaxBodyBytes int64
	SkipPaths    []string
}

func DefaultSizeLimitConfig() SizeLimitConfig {
	return SizeLimitConfig{
		MaxBodyBytes: 1 << 20,
	}
}

// SizeLimit rejects requests whose declared body exceeds the limit and caps
// the reader for bodies sent without a Content-Length. Header size is left to
// the server's MaxHeaderBytes.
func SizeLimit(config SizeLimitConfig) gin.HandlerFunc {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultSizeLimitConfig().MaxBodyBytes
	}
	skip := make(map[string]struct{}, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok || c.Request.Body == nil {
			c.Next()
			return
		}

		if c.Request.ContentLength > config.MaxBodyBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, httputil.Response{
				Code:    httputil.CodeInvalidRequest,
				Message: fmt.Sprintf("request body exceeds %d bytes", config.MaxBodyBytes),
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxBodyBytes)
		c.Next()
	}
}
