package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mrmateussiilva/petstory/config"
	"github.com/sirupsen/logrus"
)

// CORS lets the separately hosted frontend call the API. It must be installed
// on the engine, not on a group, so preflight requests reach it.
func CORS(cfg config.CORS) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsConfig.MaxAge = 12 * time.Hour

	if cfg.AllowAll {
		corsConfig.AllowAllOrigins = true
		return cors.New(corsConfig)
	}

	origins := cfg.AllowedOrigins()
	if len(origins) == 0 {
		logrus.Warn("no CORS origins configured, cross-origin requests will not be allowed")
		return func(c *gin.Context) { c.Next() }
	}
	corsConfig.AllowOrigins = origins
	return cors.New(corsConfig)
}
