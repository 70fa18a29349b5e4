package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/karthikurao/portfolio/internal/store"
	"github.com/karthikurao/portfolio/internal/utils"
)

const adminCookie = "admin_token"

// adminAuth is a single-admin session: one random token per process, handed
// out as a cookie on login.
type adminAuth struct {
	username string
	password string
	token    string
}

func newAdminAuth(username, password string) (*adminAuth, error) {
	token, err := store.RandomToken()
	if err != nil {
		return nil, err
	}
	return &adminAuth{username: username, password: password, token: token}, nil
}

func (a *adminAuth) check(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	return u&p == 1
}

func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		who := s.store.HashIP(c.ClientIP())
		if !s.admin.check(c.PostForm("username"), c.PostForm("password")) {
			utils.Log.WithField("client", who).Warn("Failed admin login attempt")
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"error": "Invalid credentials"})
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, s.admin.token, 3600*24, "/admin", "", gin.Mode() == gin.ReleaseMode, true)
		utils.Log.WithField("client", who).Info("Admin login successful")
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.admin.middleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			s.adminError(c, err, "Failed to load statistics")
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"stats": stats, "sections": s.reg.All()})
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.store.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			s.adminError(c, err, "Failed to load visitors")
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visitors})
	})

	admin.GET("/messages", func(c *gin.Context) {
		msgs, err := s.store.Messages(c.Request.Context(), 200)
		if err != nil {
			s.adminError(c, err, "Failed to load messages")
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{"messages": msgs})
	})

	admin.DELETE("/messages/:id", func(c *gin.Context) {
		id := c.Param("id")
		ok, err := s.store.DeleteMessage(c.Request.Context(), id)
		if err != nil {
			utils.Log.WithError(err).WithField("message", id).Error("Error deleting message")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		c.JSON(http.StatusOK, stats)
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := s.store.CleanupVisitors(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": n})
	})
}

func (s *Server) adminError(c *gin.Context, err error, msg string) {
	utils.Log.WithError(err).Error(msg)
	c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": msg})
}
