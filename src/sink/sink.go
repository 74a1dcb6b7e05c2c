package sink

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/connectors"
	"tradejournal/src/model"
	"tradejournal/src/repository"
)

const (
	KindDatabase = "database"
	KindHosted   = "hosted"
)

// TradeSink durably stores a reconciled batch of trades. The reconciliation
// engine never retries; each sink owns its own retry policy.
type TradeSink interface {
	SaveTrades(ctx context.Context, trades []model.Trade) error
}

type Config struct {
	Kind              string `envconfig:"SINK_KIND" default:"database"`
	HostedStoreURL    string `envconfig:"HOSTED_STORE_URL" default:""`
	HostedStoreAPIKey string `envconfig:"HOSTED_STORE_API_KEY" default:""`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}

// New builds the sink selected by SINK_KIND: the gorm-backed trade
// repository, or the hosted PostgREST-style store.
func New() (TradeSink, error) {
	config := GetConfig()

	switch config.Kind {
	case KindDatabase:
		return repository.NewTradeRepository(), nil
	case KindHosted:
		logger.WithField("url", config.HostedStoreURL).Info("Using hosted trade store sink")
		return connectors.NewHostedStoreClient(config.HostedStoreAPIKey, config.HostedStoreURL), nil
	default:
		return nil, fmt.Errorf("unsupported SINK_KIND %q", config.Kind)
	}
}
