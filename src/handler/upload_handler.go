package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/parsers"
	"tradejournal/src/reconcile"
	"tradejournal/src/service"
)

// UploadTradesHandler accepts a multipart broker report ("file" field),
// runs it through the reconciliation pipeline, and returns the batch summary.
func UploadTradesHandler(svc service.UploadService) http.HandlerFunc {
	config := GetConfig()

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(config.MaxUploadSizeBytes); err != nil {
			http.Error(w, "failed to parse form or file too large", http.StatusBadRequest)
			return
		}

		file, fileHeader, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing 'file' field", http.StatusBadRequest)
			return
		}
		defer file.Close()

		if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".csv" {
			http.Error(w, "only .csv reports are accepted", http.StatusBadRequest)
			return
		}

		result, err := svc.ProcessUpload(r.Context(), file, fileHeader.Filename, "upload")
		if err != nil {
			switch {
			case errors.Is(err, parsers.ErrMissingColumn),
				errors.Is(err, service.ErrParsingFailed),
				errors.Is(err, reconcile.ErrMalformedAmount),
				errors.Is(err, reconcile.ErrMalformedTimestamp),
				errors.Is(err, service.ErrReconcileFailed):
				logger.WithError(err).WithField("filename", fileHeader.Filename).
					Warn("Rejected uploaded report")
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				logger.WithError(err).WithField("filename", fileHeader.Filename).
					Error("Failed to process uploaded report")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("failed to encode upload response")
		}
	}
}
