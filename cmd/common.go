package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/profile-matcher/internal/filtering"
	"github.com/spigell/profile-matcher/internal/headhunter"
	"github.com/spigell/profile-matcher/internal/logger"
	"github.com/spigell/profile-matcher/internal/matching"
	"github.com/spigell/profile-matcher/internal/search"
	"github.com/spigell/profile-matcher/internal/secrets"
	"github.com/spigell/profile-matcher/internal/store"
)

// env is what every command runs with.
type env struct {
	logger *zap.Logger
	config *Config
	engine *matching.Engine
}

func setup() *env {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug(fmt.Sprintf("starting with config: \n %s", configDump(config)))

	locale, err := matching.LocaleByName(config.Locale)
	if err != nil {
		logger.Fatal("selecting a locale", zap.Error(err))
	}

	engine := matching.New(locale)
	logger.Debug("matching locale selected", zap.String("locale", engine.Locale().Name))

	return &env{
		logger: logger,
		config: config,
		engine: engine,
	}
}

// configDump renders the config for the debug log. Secrets carry json:"-".
func configDump(config *Config) string {
	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	return string(pretty)
}

func (e *env) openStore(ctx context.Context) *store.Store {
	db, err := store.Open(ctx, e.config.Database)
	if err != nil {
		e.logger.Fatal("opening the record store", zap.Error(err), zap.String("database", e.config.Database))
	}
	return db
}

func (e *env) searcher(db *store.Store, filter filtering.Config) *search.Searcher {
	return search.New(e.engine, search.Options{
		Workers: e.config.Workers,
		Logger:  e.logger,
		Filter:  filter,
		History: db,
	})
}

func (e *env) hhClient(tokenRequired bool) *headhunter.Client {
	token, err := secrets.Load(secrets.Source{
		Name:     "headhunter token",
		Value:    e.config.HH.Token,
		File:     e.config.HH.TokenFile,
		Optional: !tokenRequired,
	})
	if err != nil {
		e.logger.Fatal(
			"loading headhunter token",
			zap.Error(err),
			zap.String("hint", "set HH_TOKEN_FILE environment variable or the 'hh.token-file' key in the configuration file"),
		)
	}

	hh := headhunter.New(e.logger, token, e.config.HH.Rate)
	if e.config.HH.APIURL != "" {
		hh.APIURL = strings.TrimRight(e.config.HH.APIURL, "/")
	}
	if e.config.HH.UserAgent != "" {
		hh.UserAgent = e.config.HH.UserAgent
	}
	return hh
}

func (e *env) hhSource(hh *headhunter.Client) *headhunter.Source {
	return &headhunter.Source{
		Client:  hh,
		Params:  *e.config.HH.Search,
		Pages:   e.config.HH.Pages,
		Details: e.config.HH.Details,
	}
}

func printJSON(v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))
	return nil
}
