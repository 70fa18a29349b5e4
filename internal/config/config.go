// Package config turns viper settings (flags, environment, optional YAML
// file) into a typed Config.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/karthikurao/portfolio/internal/contact"
	"github.com/karthikurao/portfolio/internal/scrollspy"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Port         string
	Mode         string
	DBPath       string
	SectionsFile string
	ContentFile  string
	LogLevel     string

	RelayURL string
	SMTP     contact.SMTPConfig

	AdminUsername string
	AdminPassword string

	ScrollSpy scrollspy.Options
}

// SetDefaults registers every key with its default so AutomaticEnv can
// find it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("mode", "release")
	v.SetDefault("db_path", "portfolio.db")
	v.SetDefault("sections_file", "")
	v.SetDefault("content_file", "")
	v.SetDefault("loglevel", "info")
	v.SetDefault("contact.relay_url", "")
	v.SetDefault("contact.smtp.host", "smtp.gmail.com")
	v.SetDefault("contact.smtp.port", "587")
	v.SetDefault("contact.smtp.user", "")
	v.SetDefault("contact.smtp.pass", "")
	v.SetDefault("contact.smtp.to", "")
	v.SetDefault("admin.username", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("scrollspy.top_threshold", scrollspy.DefaultTopThreshold)
	v.SetDefault("scrollspy.tie_epsilon", scrollspy.DefaultTieEpsilon)
}

// smtpEnv lists the environment names read for each SMTP key. The short
// names are the ones older deployments set in .env.
var smtpEnv = map[string][]string{
	"contact.smtp.host": {"CONTACT_SMTP_HOST", "SMTP_HOST"},
	"contact.smtp.port": {"CONTACT_SMTP_PORT", "SMTP_PORT"},
	"contact.smtp.user": {"CONTACT_SMTP_USER", "SMTP_USER"},
	"contact.smtp.pass": {"CONTACT_SMTP_PASS", "SMTP_PASS"},
	"contact.smtp.to":   {"CONTACT_SMTP_TO", "TO_EMAIL"},
}

// New returns a viper instance reading environment variables, with nested
// keys mapped as CONTACT_SMTP_HOST and so on. SMTP settings also accept
// SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS and TO_EMAIL.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range smtpEnv {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			panic(err)
		}
	}
	SetDefaults(v)
	return v
}

func Load(v *viper.Viper) (Config, error) {
	c := Config{
		Port:          v.GetString("port"),
		Mode:          v.GetString("mode"),
		DBPath:        v.GetString("db_path"),
		SectionsFile:  v.GetString("sections_file"),
		ContentFile:   v.GetString("content_file"),
		LogLevel:      v.GetString("loglevel"),
		RelayURL:      v.GetString("contact.relay_url"),
		AdminUsername: v.GetString("admin.username"),
		AdminPassword: v.GetString("admin.password"),
		SMTP: contact.SMTPConfig{
			Host: v.GetString("contact.smtp.host"),
			Port: v.GetString("contact.smtp.port"),
			User: v.GetString("contact.smtp.user"),
			Pass: v.GetString("contact.smtp.pass"),
			To:   v.GetString("contact.smtp.to"),
		},
		ScrollSpy: scrollspy.Options{
			TopThreshold: v.GetFloat64("scrollspy.top_threshold"),
			TieEpsilon:   v.GetFloat64("scrollspy.tie_epsilon"),
		},
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("%w: port is empty", ErrInvalid)
	}
	switch c.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("%w: mode %q", ErrInvalid, c.Mode)
	}
	if c.ScrollSpy.TopThreshold < 0 {
		return fmt.Errorf("%w: scrollspy.top_threshold must not be negative", ErrInvalid)
	}
	if c.ScrollSpy.TieEpsilon < 0 || c.ScrollSpy.TieEpsilon >= 1 {
		return fmt.Errorf("%w: scrollspy.tie_epsilon must be in [0, 1)", ErrInvalid)
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return fmt.Errorf("%w: set both admin.username and admin.password", ErrInvalid)
	}
	return nil
}

// AdminEnabled reports whether admin credentials were configured.
func (c Config) AdminEnabled() bool { return c.AdminUsername != "" }

// Sender picks the relay when one is configured, otherwise SMTP.
func (c Config) Sender() contact.Sender {
	if c.RelayURL != "" {
		return contact.NewRelay(c.RelayURL, contact.DefaultRelayOptions())
	}
	return contact.NewMailer(c.SMTP)
}
