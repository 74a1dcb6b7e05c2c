package handler

import (
	"encoding/json"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/repository"
	"tradejournal/src/stats"
)

// StatsHandler summarizes the whole journal (win rate, total pnl, profit
// factor). Computation runs in memory over every trade, which is fine for
// a single-user journal.
func StatsHandler(repo tradeSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trades, err := repo.Search(r.Context(), repository.TradeSearchOptions{})
		if err != nil {
			logger.WithError(err).Error("failed to load trades for stats")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		summary := stats.ComputeSummary(trades)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logger.WithError(err).Error("failed to encode stats response")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
}

func DefaultStatsHandler() http.HandlerFunc {
	return StatsHandler(repository.NewTradeRepository())
}
