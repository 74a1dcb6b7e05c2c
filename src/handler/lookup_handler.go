package handler

import (
	"context"
	"encoding/json"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
	"tradejournal/src/repository"
)

type strategyLister interface {
	ListStrategies(ctx context.Context) ([]model.Strategy, error)
}

type setupLister interface {
	ListSetups(ctx context.Context) ([]model.Setup, error)
}

// ListStrategiesHandler serves the strategy tags for the journal dropdown.
func ListStrategiesHandler(repo strategyLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		strategies, err := repo.ListStrategies(r.Context())
		if err != nil {
			logger.WithError(err).Error("failed to list strategies")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if strategies == nil {
			strategies = []model.Strategy{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(strategies); err != nil {
			logger.WithError(err).Error("failed to encode strategies response")
		}
	}
}

// ListSetupsHandler serves the setup tags for the journal dropdown.
func ListSetupsHandler(repo setupLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setups, err := repo.ListSetups(r.Context())
		if err != nil {
			logger.WithError(err).Error("failed to list setups")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if setups == nil {
			setups = []model.Setup{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(setups); err != nil {
			logger.WithError(err).Error("failed to encode setups response")
		}
	}
}

func DefaultListStrategiesHandler() http.HandlerFunc {
	return ListStrategiesHandler(repository.NewLookupRepository())
}

func DefaultListSetupsHandler() http.HandlerFunc {
	return ListSetupsHandler(repository.NewLookupRepository())
}
