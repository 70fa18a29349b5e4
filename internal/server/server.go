// Package server is the portfolio's HTTP surface: the single page, the
// standalone section pages, the contact form, the scroll-spy APIs and the
// admin dashboard.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/karthikurao/portfolio/internal/config"
	"github.com/karthikurao/portfolio/internal/contact"
	"github.com/karthikurao/portfolio/internal/content"
	"github.com/karthikurao/portfolio/internal/scrollspy"
	"github.com/karthikurao/portfolio/internal/sections"
	"github.com/karthikurao/portfolio/internal/store"
	"github.com/karthikurao/portfolio/internal/utils"
)

const (
	shutdownTimeout = 5 * time.Second
	cleanupInterval = 24 * time.Hour
	trackTimeout    = 5 * time.Second
)

type Deps struct {
	Config   config.Config
	Registry *sections.Registry
	Content  *content.Content
	Store    *store.Store
	Contact  *contact.Service
}

type Server struct {
	cfg      config.Config
	reg      *sections.Registry
	content  *content.Content
	store    *store.Store
	contact  *contact.Service
	engine   *gin.Engine
	admin    *adminAuth
	tracking sync.WaitGroup
}

func New(d Deps) (*Server, error) {
	if d.Registry == nil || d.Content == nil || d.Store == nil || d.Contact == nil {
		return nil, errors.New("server: missing dependency")
	}
	gin.SetMode(d.Config.Mode)

	s := &Server{
		cfg:     d.Config,
		reg:     d.Registry,
		content: d.Content,
		store:   d.Store,
		contact: d.Contact,
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", staticFS())
	r.Use(s.visitorTracking())

	s.setupPageRoutes(r)
	s.setupAPIRoutes(r)
	if d.Config.AdminEnabled() {
		if s.admin, err = newAdminAuth(d.Config.AdminUsername, d.Config.AdminPassword); err != nil {
			return nil, err
		}
		s.setupAdminRoutes(r)
	}
	s.engine = r
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.engine }

// Wait blocks until background visitor tracking has finished.
func (s *Server) Wait() { s.tracking.Wait() }

// Run serves until ctx is cancelled, then shuts down gracefully. A daily
// loop drops visitor data past its retention.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		utils.Log.WithField("addr", srv.Addr).Info("Portfolio listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		s.Wait()
		return err
	})
	g.Go(func() error {
		s.cleanup(ctx)
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				s.cleanup(ctx)
			}
		}
	})
	return g.Wait()
}

func (s *Server) cleanup(ctx context.Context) {
	n, err := s.store.CleanupVisitors(ctx)
	if err != nil {
		utils.Log.WithError(err).Error("Error cleaning up old visitor data")
		return
	}
	if n > 0 {
		utils.Log.WithField("rows", n).Info("Privacy cleanup removed old visitor records")
	}
}

// pageData is what every full page template receives.
func (s *Server) pageData(path, page string) gin.H {
	return gin.H{
		"Path":      path,
		"Page":      page,
		"Nav":       scrollspy.Nav(s.reg, path, ""),
		"Content":   s.content,
		"ScrollSpy": s.cfg.ScrollSpy,
		"Year":      time.Now().Year(),
	}
}
