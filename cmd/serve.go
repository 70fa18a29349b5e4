package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/karthikurao/portfolio/internal/contact"
	"github.com/karthikurao/portfolio/internal/content"
	"github.com/karthikurao/portfolio/internal/server"
	"github.com/karthikurao/portfolio/internal/store"
	"github.com/karthikurao/portfolio/internal/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, reg, err := loadConfig()
		if err != nil {
			return err
		}
		c, err := content.Load(cfg.ContentFile)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := store.Open(ctx, cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		if !cfg.AdminEnabled() {
			utils.Log.Warn("Admin dashboard disabled: set ADMIN_USERNAME and ADMIN_PASSWORD to enable it")
		}
		if cfg.RelayURL == "" {
			utils.Log.Info("No form relay configured, contact messages go out over SMTP")
		}

		srv, err := server.New(server.Deps{
			Config:   cfg,
			Registry: reg,
			Content:  c,
			Store:    st,
			Contact:  contact.NewService(cfg.Sender(), st),
		})
		if err != nil {
			return err
		}
		if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "HTTP port")
	serveCmd.Flags().String("db", "portfolio.db", "sqlite database path")
	serveCmd.Flags().String("mode", "release", "gin mode: debug, release or test")
	serveCmd.Flags().String("content", "", "YAML file with site content (default: built-in)")
	for key, flag := range map[string]string{"port": "port", "db_path": "db", "mode": "mode", "content_file": "content"} {
		if err := v.BindPFlag(key, serveCmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}
