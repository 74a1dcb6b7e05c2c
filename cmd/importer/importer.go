package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/parsers"
	"tradejournal/src/repository"
	"tradejournal/src/service"
	"tradejournal/src/sink"
)

// Importer backfills a performance report from disk through the same
// pipeline the upload endpoint uses, minus the websocket feed.
type Importer struct {
	Log *logger.Entry
}

func (i *Importer) Start(path string) error {
	if path == "" {
		return errors.New("no --file provided")
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	tradeSink, err := sink.New()
	if err != nil {
		return err
	}

	uploadService := service.NewUploadService(
		parsers.NewPerformanceCSVParser(),
		tradeSink,
		repository.NewImportBatchRepository(),
		nil,
	)

	result, err := uploadService.ProcessUpload(context.Background(), file, filepath.Base(path), "cli")
	if err != nil {
		return err
	}

	i.Log.WithFields(map[string]interface{}{
		"batch_id": result.BatchID,
		"fills":    result.Fills,
		"trades":   result.Trades,
	}).Info("Import finished")

	return nil
}
