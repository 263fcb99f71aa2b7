package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/oraad/ogero-sensors/internal/adapters/portal"
	statusadapter "github.com/oraad/ogero-sensors/internal/adapters/render/status"
	tomlrepo "github.com/oraad/ogero-sensors/internal/adapters/repo/toml"
	chainstore "github.com/oraad/ogero-sensors/internal/adapters/secrets/chain"
	filestore "github.com/oraad/ogero-sensors/internal/adapters/secrets/file"
	passstore "github.com/oraad/ogero-sensors/internal/adapters/secrets/pass"
	"github.com/oraad/ogero-sensors/internal/application"
	"github.com/oraad/ogero-sensors/internal/config"
	"github.com/oraad/ogero-sensors/internal/logging"
	"github.com/oraad/ogero-sensors/internal/ports"
	"github.com/oraad/ogero-sensors/internal/version"
)

const deviceModel = "ogero-sensors"

type app struct {
	conf           config.Config
	log            zerolog.Logger
	service        *application.Service
	portals        ports.PortalFactory
	statusRenderer func([]application.EntryStatus, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
}

func wireApp() (*app, error) {
	v := viper.New()
	conf, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(logging.Options{Level: conf.Log.Level, Format: conf.Log.Format})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire entry repository: %w", err)
	}

	secretStore, err := newSecretStore(conf, log)
	if err != nil {
		return nil, err
	}

	return &app{
		conf:    conf,
		log:     log,
		service: application.NewService(repo, secretStore, ports.SystemClock{}),
		portals: portal.Factory(portal.Options{
			BaseURL: conf.Portal.URL,
			Timeout: conf.Portal.Timeout,
			Rate:    conf.Portal.Rate,
			Log:     log,
		}),
		statusRenderer: statusadapter.Render,
		now:            time.Now,
	}, nil
}

func newSecretStore(conf config.Config, log zerolog.Logger) (ports.SecretStore, error) {
	root := filepath.Join(conf.Dir, "secrets")
	switch conf.Secrets.Backend {
	case config.SecretsBackendFile:
		return filestore.NewStore(root), nil
	case config.SecretsBackendPass:
		return passstore.NewStore(), nil
	default:
		store, err := chainstore.NewPassFirstWithFileFallback(root)
		if err != nil {
			return nil, fmt.Errorf("wire secret store chain: %w", err)
		}
		return store.WithLogger(log), nil
	}
}

// newIntegration builds a fresh host for one command invocation.
func (a *app) newIntegration() (*application.Integration, error) {
	policy, err := application.ParseAttributePolicy(a.conf.Sensors.AttributePolicy)
	if err != nil {
		return nil, err
	}

	return application.NewIntegration(application.IntegrationOptions{
		Portals:         a.portals,
		AttributePolicy: policy,
		Model:           deviceModel + " " + version.Version,
		Log:             a.log,
	}), nil
}

func (a *app) newConfigFlow(integration *application.Integration) *application.ConfigFlow {
	return application.NewConfigFlow(application.ConfigFlowOptions{
		Service:     a.service,
		Integration: integration,
		Portals:     a.portals,
		Log:         a.log,
	})
}
