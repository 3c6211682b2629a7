// Package ingest turns a folder of downloaded PDF attachments into
// pipeline documents.
package ingest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/lodgeworks/utility-bills-tracker/internal/pdftext"
	"github.com/lodgeworks/utility-bills-tracker/internal/pipeline"
)

// DirStats summarizes one directory scan.
type DirStats struct {
	Scanned    uint32
	Matched    uint32
	Extracted  uint32
	Unreadable uint32
}

// ScanDirectory walks root, extracts text from every PDF it finds, and
// returns the documents ready for reconciliation. Files whose text
// cannot be extracted still come back, pre-tagged unreadable, so the
// pipeline can report them. Hidden files and directories are skipped.
func ScanDirectory(ctx context.Context, root string, logger *slog.Logger) ([]pipeline.Document, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("input directory is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	var docs []pipeline.Document
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++
		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}
		stats.Matched++

		name := filepath.Base(path)
		logger.Info("ingest.file", "path", path)

		text, err := pdftext.ExtractText(path)
		if err != nil {
			stats.Unreadable++
			logger.Info("ingest.unreadable", "path", path, "err", err)
			docs = append(docs, pipeline.Document{SourceID: path, Name: name, Unreadable: true})
			return nil
		}
		stats.Extracted++
		docs = append(docs, pipeline.Document{SourceID: path, Name: name, Text: text})
		return nil
	})
	if err != nil {
		return nil, stats, err
	}

	logger.Info("ingest.done",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"extracted", stats.Extracted,
		"unreadable", stats.Unreadable,
	)
	return docs, stats, nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
