package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/model"
	"tradejournal/src/repository"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

type tradeSearcher interface {
	Search(ctx context.Context, options repository.TradeSearchOptions) ([]model.Trade, error)
}

type tradeDeleter interface {
	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)
}

type tradeAnnotator interface {
	UpdateAnnotations(ctx context.Context, id uint, annotations repository.TradeAnnotations) error
}

// SearchTradesHandler returns a handler that lists journal trades.
// Supports pagination and filters (symbol, side, strategyId, setupId, from, to).
func SearchTradesHandler(repo tradeSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var symbol *string
		if symbolParam := r.URL.Query().Get("symbol"); symbolParam != "" {
			symbol = &symbolParam
		}

		var side *string
		if sideParam := r.URL.Query().Get("side"); sideParam != "" {
			if sideParam != model.SideLong && sideParam != model.SideShort {
				http.Error(w, "invalid side", http.StatusBadRequest)
				return
			}
			side = &sideParam
		}

		strategyID, ok := parseOptionalUint(w, r, "strategyId")
		if !ok {
			return
		}
		setupID, ok := parseOptionalUint(w, r, "setupId")
		if !ok {
			return
		}

		var from, to *time.Time
		if fromParam := r.URL.Query().Get("from"); fromParam != "" {
			parsed, err := time.Parse(time.RFC3339, fromParam)
			if err != nil {
				http.Error(w, "invalid from", http.StatusBadRequest)
				return
			}
			from = &parsed
		}

		if toParam := r.URL.Query().Get("to"); toParam != "" {
			parsed, err := time.Parse(time.RFC3339, toParam)
			if err != nil {
				http.Error(w, "invalid to", http.StatusBadRequest)
				return
			}
			to = &parsed
		}

		page := 1
		if pageParam := r.URL.Query().Get("page"); pageParam != "" {
			parsedPage, err := strconv.Atoi(pageParam)
			if err != nil || parsedPage <= 0 {
				http.Error(w, "invalid page", http.StatusBadRequest)
				return
			}
			page = parsedPage
		}

		pageSize := defaultPageSize
		if sizeParam := r.URL.Query().Get("pageSize"); sizeParam != "" {
			parsedSize, err := strconv.Atoi(sizeParam)
			if err != nil || parsedSize <= 0 {
				http.Error(w, "invalid pageSize", http.StatusBadRequest)
				return
			}
			if parsedSize > maxPageSize {
				parsedSize = maxPageSize
			}
			pageSize = parsedSize
		}

		offset := (page - 1) * pageSize

		trades, err := repo.Search(r.Context(), repository.TradeSearchOptions{
			Symbol:      symbol,
			Side:        side,
			StrategyID:  strategyID,
			SetupID:     setupID,
			EntryAfter:  from,
			EntryBefore: to,
			Limit:       pageSize,
			Offset:      offset,
		})
		if err != nil {
			logger.WithError(err).Error("failed to search trades")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(trades); err != nil {
			logger.WithError(err).Error("failed to encode trade search response")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
}

// DeleteTradesHandler removes trades by id: body {"ids": [1, 2, 3]}.
func DeleteTradesHandler(repo tradeDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			IDs []uint `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if len(payload.IDs) == 0 {
			http.Error(w, "no IDs provided", http.StatusBadRequest)
			return
		}

		deleted, err := repo.DeleteByIDs(r.Context(), payload.IDs)
		if err != nil {
			logger.WithError(err).Error("failed to delete trades")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]int64{"deleted": deleted}); err != nil {
			logger.WithError(err).Error("failed to encode delete response")
		}
	}
}

// UpdateTradeHandler patches journal annotations on a single trade.
func UpdateTradeHandler(repo tradeAnnotator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid trade id", http.StatusBadRequest)
			return
		}

		var annotations repository.TradeAnnotations
		if err := json.NewDecoder(r.Body).Decode(&annotations); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if err := repo.UpdateAnnotations(r.Context(), uint(id), annotations); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, "trade not found", http.StatusNotFound)
				return
			}
			logger.WithError(err).Error("failed to update trade")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]bool{"ok": true}); err != nil {
			logger.WithError(err).Error("failed to encode update response")
		}
	}
}

func parseOptionalUint(w http.ResponseWriter, r *http.Request, name string) (*uint, bool) {
	param := r.URL.Query().Get(name)
	if param == "" {
		return nil, true
	}
	parsed, err := strconv.ParseUint(param, 10, 64)
	if err != nil {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return nil, false
	}
	value := uint(parsed)
	return &value, true
}

// DefaultSearchTradesHandler wires the handler to the production repository implementation.
func DefaultSearchTradesHandler() http.HandlerFunc {
	return SearchTradesHandler(repository.NewTradeRepository())
}

func DefaultDeleteTradesHandler() http.HandlerFunc {
	return DeleteTradesHandler(repository.NewTradeRepository())
}

func DefaultUpdateTradeHandler() http.HandlerFunc {
	return UpdateTradeHandler(repository.NewTradeRepository())
}
