package cmd

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/job-finder/internal/boards"
)

const (
	app = "job-finder"
)

type Config struct {
	UserAgent string         `mapstructure:"user-agent"`
	AI        *AIConfig      `mapstructure:"ai"`
	Sources   *SourcesConfig `mapstructure:"sources"`
	Exclude   *struct {
		Companies []string `mapstructure:"companies"`
	} `mapstructure:"exclude"`
	Filters *struct {
		Disabled []string `mapstructure:"disabled"`
	} `mapstructure:"filters"`
}

type AIConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Required makes a missing or broken model a fatal error instead of a
	// fallback to heuristic extraction.
	Required bool          `mapstructure:"required"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string        `mapstructure:"api-key"`
	APIKeyFile   string        `mapstructure:"api-key-file"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxLogLength int           `mapstructure:"max-log-length"`
}

type SourcesConfig struct {
	Timeout    time.Duration     `mapstructure:"timeout"`
	Pause      time.Duration     `mapstructure:"pause"`
	Workers    int               `mapstructure:"workers"`
	Greenhouse *BoardConfig      `mapstructure:"greenhouse"`
	Lever      *BoardConfig      `mapstructure:"lever"`
	Workable   *BoardConfig      `mapstructure:"workable"`
	GoogleJobs *GoogleJobsConfig `mapstructure:"google-jobs"`
}

type BoardConfig struct {
	Enabled   bool             `mapstructure:"enabled"`
	Companies []boards.Company `mapstructure:"companies"`
}

type GoogleJobsConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Language   string `mapstructure:"language"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-finder searches public job boards with a plain language query",
		Example: `  job-finder search "nurse in Utrecht, no Dutch required"
  job-finder search "software engineer in Amsterdam, remote" --format json
  job-finder filters "data scientist with Python experience"`,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envs := map[string]string{
		"ai.gemini.api-key":                "GEMINI_API_KEY",
		"ai.gemini.api-key-file":           "GEMINI_API_KEY_FILE",
		"sources.google-jobs.api-key":      "SERPAPI_API_KEY",
		"sources.google-jobs.api-key-file": "SERPAPI_API_KEY_FILE",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-finder.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults() {
	viper.SetDefault("ai.enabled", true)
	viper.SetDefault("ai.required", false)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.timeout", 30*time.Second)
	viper.SetDefault("ai.gemini.max-log-length", 200)

	viper.SetDefault("sources.timeout", 10*time.Second)
	viper.SetDefault("sources.pause", 500*time.Millisecond)
	viper.SetDefault("sources.workers", 1)
	viper.SetDefault("sources.greenhouse.enabled", true)
	viper.SetDefault("sources.lever.enabled", true)
	viper.SetDefault("sources.workable.enabled", true)
	viper.SetDefault("sources.google-jobs.language", "en")
}

func initConfig() {
	// Credentials may live in .env next to the binary; real env vars win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless it was asked for explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
