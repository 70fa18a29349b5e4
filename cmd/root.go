package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/karthikurao/portfolio/internal/config"
	"github.com/karthikurao/portfolio/internal/sections"
	"github.com/karthikurao/portfolio/internal/utils"
)

var (
	cfgFile string
	v       = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site with scroll-spy navigation",
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		}
		return utils.SetLogLevel(v.GetString("loglevel"))
	},
}

// Execute runs the root command. It is called once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Log level: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().String("sections", "", "YAML file with the section registry (default: built-in)")
	bind(rootCmd, "loglevel", "loglevel")
	bind(rootCmd, "sections_file", "sections")
}

// bind ties a persistent flag to a viper key; flags win over environment
// and config file only when set.
func bind(c *cobra.Command, key, flag string) {
	f := c.PersistentFlags().Lookup(flag)
	if f == nil {
		f = c.Flags().Lookup(flag)
	}
	if err := v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

func loadConfig() (config.Config, *sections.Registry, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return cfg, nil, err
	}
	reg, err := sections.Load(cfg.SectionsFile)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, reg, nil
}
