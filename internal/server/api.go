package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/karthikurao/portfolio/internal/scrollspy"
	"github.com/karthikurao/portfolio/internal/utils"
)

type activeRequest struct {
	Section string `json:"section" binding:"required"`
}

func (s *Server) setupAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/sections", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"sections": s.reg.All(),
			"scrollspy": gin.H{
				"top_threshold": s.cfg.ScrollSpy.TopThreshold,
				"tie_epsilon":   s.cfg.ScrollSpy.TieEpsilon,
			},
		})
	})

	// Resolves a geometry snapshot for clients without the wasm module.
	api.POST("/scrollspy/resolve", func(c *gin.Context) {
		var q scrollspy.Query
		if err := c.ShouldBindJSON(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, scrollspy.Evaluate(s.reg, s.cfg.ScrollSpy, q))
	})

	// The browser reports each change of active section.
	api.POST("/nav/active", func(c *gin.Context) {
		var req activeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !s.reg.Has(req.Section) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown section"})
			return
		}
		if c.GetHeader("DNT") != "1" {
			if err := s.store.RecordSectionView(c.Request.Context(), c.ClientIP(), req.Section); err != nil {
				utils.Log.WithError(err).Error("Error recording section view")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record"})
				return
			}
		}
		c.Status(http.StatusNoContent)
	})
}
