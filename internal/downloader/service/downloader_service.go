package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rizkirmdhn/docfetch/internal/common/config"
	"github.com/rizkirmdhn/docfetch/internal/common/messaging"
	"github.com/rizkirmdhn/docfetch/pkg/models"
	"github.com/rizkirmdhn/docfetch/pkg/utils"
	"github.com/sirupsen/logrus"
)

const LogRoutingKey = "downloader.log"

// Result is the outcome of one entry of a batch
type Result struct {
	Entry models.ConfigEntry
	Path  string
	Err   error
}

type DownloaderService struct {
	config    *config.DownloaderConfig
	rabbitCfg *config.RabbitMQConfig
	log       *logrus.Logger
	message   messaging.Client
	fetcher   Fetcher
	out       io.Writer
	errOut    io.Writer
}

// NewDownloaderService creates the service. message may be nil, in which case
// no download events are published.
func NewDownloaderService(cfg *config.DownloaderConfig, rabbitCfg *config.RabbitMQConfig, log *logrus.Logger, message messaging.Client, fetcher Fetcher) *DownloaderService {
	return &DownloaderService{
		config:    cfg,
		rabbitCfg: rabbitCfg,
		log:       log,
		message:   message,
		fetcher:   fetcher,
		out:       os.Stdout,
		errOut:    os.Stderr,
	}
}

// SetOutput sets where progress lines and per-entry errors are reported
func (s *DownloaderService) SetOutput(out, errOut io.Writer) {
	s.out = out
	s.errOut = errOut
}

// FetchAndSave downloads entry.URL into dir and returns the written path
func (s *DownloaderService) FetchAndSave(ctx context.Context, entry models.ConfigEntry, dir string) (string, error) {
	path, _, err := s.fetchAndSave(ctx, entry, dir)
	return path, err
}

func (s *DownloaderService) fetchAndSave(ctx context.Context, entry models.ConfigEntry, dir string) (string, int, error) {
	dest := filepath.Join(dir, utils.OutputFileName(entry.Title))

	body, err := s.fetcher.Fetch(ctx, entry.URL)
	if err != nil {
		var netErr *NetworkError
		if !errors.As(err, &netErr) {
			err = &NetworkError{URL: entry.URL, Err: err}
		}
		return "", 0, err
	}

	if err := os.WriteFile(dest, body, 0644); err != nil {
		return "", 0, &IOError{Op: "write", Path: dest, Err: err}
	}

	return dest, len(body), nil
}

// RunBatch downloads entries one after another into dir. A failing entry is
// reported and skipped; the batch only stops early if ctx is cancelled.
func (s *DownloaderService) RunBatch(ctx context.Context, entries []models.ConfigEntry, dir string) []Result {
	runID := uuid.NewString()
	log := s.log.WithFields(logrus.Fields{
		"run_id": runID,
		"dir":    dir,
	})
	log.WithField("entries", len(entries)).Info("Starting download batch")

	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		if ctx.Err() != nil {
			log.WithError(ctx.Err()).Warn("Batch cancelled")
			break
		}

		entryLog := log.WithFields(logrus.Fields{"title": entry.Title, "url": entry.URL})
		entryLog.Debug("Downloading")

		path, n, err := s.fetchAndSave(ctx, entry, dir)
		if err != nil {
			fmt.Fprintf(s.errOut, "Error downloading '%s': %v\n", entry.Title, err)
			entryLog.WithError(err).Debug("Download failed")
		} else {
			fmt.Fprintf(s.out, "Downloaded '%s' to '%s'\n", entry.Title, path)
			entryLog.WithFields(logrus.Fields{"path": path, "bytes": n}).Debug("Download completed")
		}

		result := Result{Entry: entry, Path: path, Err: err}
		results = append(results, result)
		s.publish(ctx, log, runID, result, n)
	}

	log.Info("Download batch finished")
	return results
}

func (s *DownloaderService) publish(ctx context.Context, log *logrus.Entry, runID string, result Result, n int) {
	if s.message == nil {
		return
	}

	event := models.DownloadLog{
		RunID:  runID,
		Status: models.StatusDownloaded,
		Data:   result.Entry,
		Path:   result.Path,
		Bytes:  n,
	}
	if result.Err != nil {
		event.Status = models.StatusFailed
		event.Error = result.Err.Error()
	}

	if err := s.message.PublishJSON(ctx, s.rabbitCfg.Exchange, LogRoutingKey, event); err != nil {
		log.WithError(err).WithField("title", result.Entry.Title).Warn("Failed to publish download event")
	}
}
