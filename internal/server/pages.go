package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/karthikurao/portfolio/internal/contact"
	"github.com/karthikurao/portfolio/internal/sections"
	"github.com/karthikurao/portfolio/internal/utils"
)

func (s *Server) setupPageRoutes(r *gin.Engine) {
	r.GET(sections.ScrollRoute, func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", s.pageData(sections.ScrollRoute, ""))
	})

	// Every section with its own route also gets a standalone page.
	for _, sec := range s.reg.All() {
		if sec.Route == sections.ScrollRoute {
			continue
		}
		id := sec.ID
		r.GET(sec.Route, func(c *gin.Context) {
			c.HTML(http.StatusOK, "page.html", s.pageData(c.Request.URL.Path, id))
		})
	}

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", s.pageData(c.Request.URL.Path, "privacy"))
	})

	r.POST("/contact", s.handleContact)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "page.html", s.pageData(c.Request.URL.Path, "not-found"))
	})
}

// handleContact answers the HTMX form post with a toast fragment.
func (s *Server) handleContact(c *gin.Context) {
	var form contact.Form
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error":  "Please fix the highlighted fields.",
			"fields": contact.FieldErrorsFrom(err),
		})
		return
	}
	form.Normalize()
	if errs := contact.Validate(form); len(errs) > 0 {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error":  "Please fix the highlighted fields.",
			"fields": errs,
		})
		return
	}

	sub, err := s.contact.Submit(c.Request.Context(), form)
	if err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "There was a problem sending your message. Please try again.",
		})
		return
	}

	utils.Log.WithField("submission", sub.ID).Debug("Contact form accepted")
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for reaching out. I'll get back to you soon.",
	})
}
