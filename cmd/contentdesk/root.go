package main

import (
	"github.com/rgonek/contentdesk/apiclient"
	"github.com/rgonek/contentdesk/auth"
	"github.com/rgonek/contentdesk/config"
	"github.com/rgonek/contentdesk/contentapi"
	"github.com/rgonek/contentdesk/editor"
	"github.com/rgonek/contentdesk/logger"
	"github.com/rgonek/contentdesk/mediastore"
	"github.com/rgonek/contentdesk/upload"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries what every command needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log zerolog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "contentdesk",
		Short:         "Manage services, blogs, FAQ and media of the content API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "Path to the YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (overrides config)")

	root.AddCommand(
		newConvertCommand(a),
		newLoginCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newUploadCommand(a),
		newMediaCommand(a),
		newServicesCommand(a),
		newBlogsCommand(a),
		newCategoriesCommand(a),
		newFAQCommand(a),
		newStatsCommand(a),
		newSlugCommand(),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg
	a.log = logger.New(cfg.Logging.Level)

	config.SetLogger(a.log.With().Str("component", "config").Logger())
	editor.SetLogger(a.log.With().Str("component", "editor").Logger())
	upload.SetLogger(a.log.With().Str("component", "upload").Logger())
	return nil
}

func (a *app) tokenStore() *auth.FileStore {
	return auth.NewFileStore(a.cfg.Auth.TokenFile)
}

func (a *app) tokens() apiclient.TokenSource {
	if a.cfg.Auth.Token != "" {
		return apiclient.StaticToken(a.cfg.Auth.Token)
	}
	return a.tokenStore()
}

func (a *app) client(baseURL string, tokens apiclient.TokenSource) (*apiclient.Client, error) {
	httpClient := apiclient.NewHTTPClient(apiclient.HTTPConfig{Timeout: a.cfg.Timeout()})
	return apiclient.New(baseURL, tokens,
		apiclient.WithHTTPClient(httpClient),
		apiclient.WithRateLimit(float64(a.cfg.API.RequestsPerSecond)),
		apiclient.WithLogger(a.log.With().Str("component", "api").Logger()),
	)
}

func (a *app) content() (*contentapi.Client, error) {
	api, err := a.client(a.cfg.API.BaseURL, a.tokens())
	if err != nil {
		return nil, err
	}
	return contentapi.New(api), nil
}

func (a *app) media() (*mediastore.Client, error) {
	api, err := a.client(a.cfg.API.BaseURL, a.tokens())
	if err != nil {
		return nil, err
	}
	base, err := apiclient.ParseBaseURL(a.cfg.API.MediaBaseURL)
	if err != nil {
		return nil, err
	}
	return mediastore.New(api,
		mediastore.WithResolveBase(base),
		mediastore.WithLogger(a.log.With().Str("component", "media").Logger()),
	), nil
}
