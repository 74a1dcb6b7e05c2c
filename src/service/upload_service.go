package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
	"tradejournal/src/parsers"
	"tradejournal/src/reconcile"
	"tradejournal/src/sink"
	"tradejournal/src/stream"
)

var (
	// ErrParsingFailed marks CSV-shape problems (unreadable file, missing
	// columns, non-numeric qty/prices). Mapped to a 400 at the HTTP edge.
	ErrParsingFailed = errors.New("parsing failed")

	// ErrReconcileFailed marks row-content problems the engine rejected
	// (malformed pnl or timestamps). Also a client error.
	ErrReconcileFailed = errors.New("reconciliation failed")
)

// UploadResult summarizes one processed report.
type UploadResult struct {
	BatchID string `json:"batch_id"`
	Fills   int    `json:"fills"`
	Trades  int    `json:"trades"`
}

// UploadService turns an uploaded broker report into persisted journal trades.
type UploadService interface {
	ProcessUpload(ctx context.Context, file io.Reader, filename, source string) (*UploadResult, error)
}

type batchRecorder interface {
	Create(ctx context.Context, batch *model.ImportBatch) error
}

type importBroadcaster interface {
	Broadcast(event stream.ImportEvent)
}

type uploadServiceImpl struct {
	parser      parsers.Parser
	tradeSink   sink.TradeSink
	batches     batchRecorder
	broadcaster importBroadcaster
}

// NewUploadService wires the full pipeline: parse -> reconcile -> persist ->
// notify. broadcaster may be nil when no live dashboard feed is wanted
// (e.g. the CLI importer).
func NewUploadService(
	parser parsers.Parser,
	tradeSink sink.TradeSink,
	batches batchRecorder,
	broadcaster importBroadcaster,
) UploadService {
	return &uploadServiceImpl{
		parser:      parser,
		tradeSink:   tradeSink,
		batches:     batches,
		broadcaster: broadcaster,
	}
}

func (s *uploadServiceImpl) ProcessUpload(ctx context.Context, file io.Reader, filename, source string) (*UploadResult, error) {
	startTime := time.Now()
	batchID := uuid.New().String()

	logger.WithFields(map[string]interface{}{
		"service":  "UploadService",
		"op":       "ProcessUpload",
		"batch_id": batchID,
		"filename": filename,
		"source":   source,
	}).Info("Processing upload")

	fills, err := s.parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsingFailed, err)
	}

	trades, err := reconcile.Reconcile(fills)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReconcileFailed, err)
	}

	for i := range trades {
		trades[i].BatchID = batchID
	}

	if err := s.tradeSink.SaveTrades(ctx, trades); err != nil {
		return nil, fmt.Errorf("failed to persist trade batch: %w", err)
	}

	if s.batches != nil {
		batch := &model.ImportBatch{
			ID:         batchID,
			Filename:   filename,
			Source:     source,
			FillCount:  len(fills),
			TradeCount: len(trades),
		}
		if err := s.batches.Create(ctx, batch); err != nil {
			// The trades are already stored; a missing audit row is not
			// worth failing the upload over.
			logger.WithError(err).WithField("batch_id", batchID).
				Warn("Failed to record import batch")
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(stream.ImportEvent{
			BatchID:    batchID,
			Filename:   filename,
			FillCount:  len(fills),
			TradeCount: len(trades),
			At:         time.Now().UTC(),
		})
	}

	logger.WithFields(map[string]interface{}{
		"service":  "UploadService",
		"op":       "ProcessUpload",
		"batch_id": batchID,
		"fills":    len(fills),
		"trades":   len(trades),
		"took_ms":  time.Since(startTime).Milliseconds(),
	}).Info("Upload processed")

	return &UploadResult{
		BatchID: batchID,
		Fills:   len(fills),
		Trades:  len(trades),
	}, nil
}
