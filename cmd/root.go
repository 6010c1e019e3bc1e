package cmd

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/profile-matcher/internal/headhunter"
	"github.com/spigell/profile-matcher/internal/search"
)

const (
	app       = "profile-matcher"
	envPrefix = "PROFILE_MATCHER"
)

type Config struct {
	Database    string `mapstructure:"database"`
	Locale      string `mapstructure:"locale"`
	Workers     int    `mapstructure:"workers"`
	ExcludeFile string `mapstructure:"exclude-file"`
	SkipMatched bool   `mapstructure:"skip-matched"`
	Exclude     *struct {
		Subjects []string `mapstructure:"subjects"`
	} `mapstructure:"exclude"`
	HH *HHConfig `mapstructure:"hh"`
}

type HHConfig struct {
	APIURL    string                   `mapstructure:"api-url"`
	UserAgent string                   `mapstructure:"user-agent"`
	Token     string                   `mapstructure:"token" json:"-"`
	TokenFile string                   `mapstructure:"token-file"`
	Rate      float64                  `mapstructure:"rate"`
	Pages     int                      `mapstructure:"pages"`
	Details   bool                     `mapstructure:"details"`
	Search    *headhunter.SearchParams `mapstructure:"search"`
}

func (c *Config) excludedSubjects() []string {
	if c.Exclude == nil {
		return nil
	}
	return c.Exclude.Subjects
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "profile-matcher scores resumes against ideal candidate profiles and vacancies against ideal vacancy profiles",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is profile-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("database", "", "path to the sqlite record store")
	rootCmd.PersistentFlags().String("locale", "", "matching locale: ru or en")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))
	viper.BindPFlag("locale", rootCmd.PersistentFlags().Lookup("locale"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database", app+".db")
	v.SetDefault("locale", "ru")
	v.SetDefault("workers", search.DefaultWorkers)
	v.SetDefault("skip-matched", true)
	v.SetDefault("hh.api-url", "https://api.hh.ru")
	v.SetDefault("hh.rate", headhunter.DefaultRate)
	v.SetDefault("hh.pages", 1)
}

func initConfig() {
	// A missing .env is fine; it only seeds the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv("hh.token-file", "HH_TOKEN_FILE", envPrefix+"_HH_TOKEN_FILE"); err != nil {
		log.Fatalf("binding HH_TOKEN_FILE environment variable: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// An explicit --config must exist and parse; the default one is optional.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	err := v.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.HH == nil {
		config.HH = &HHConfig{}
	}
	if config.HH.Search == nil {
		config.HH.Search = &headhunter.SearchParams{}
	}

	return config, nil
}
