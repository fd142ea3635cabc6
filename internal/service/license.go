package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/truckhire/truckhire-server/internal/apierrors"
	"github.com/truckhire/truckhire-server/internal/logger"
	"github.com/truckhire/truckhire-server/internal/model"
)

// ocrURLExpiry bounds how long the external reader can fetch the scan.
const ocrURLExpiry = 15 * time.Minute

// TextReader extracts text from an image reachable at a URL.
type TextReader interface {
	ReadImage(ctx context.Context, imageURL string) (string, error)
}

// License handles driving-license scans: the image is stored, then handed
// to the external text reader by URL.
type License struct {
	storage model.Storage
	reader  TextReader
	logger  *logger.Logger
}

func NewLicense(storage model.Storage, reader TextReader, logger *logger.Logger) *License {
	return &License{
		storage: storage,
		reader:  reader,
		logger:  logger,
	}
}

// LicenseScan is the outcome of reading a license image.
type LicenseScan struct {
	Content string   `json:"content"`
	Lines   []string `json:"lines"`
}

// Read stores the uploaded license image and extracts its text.
func (s *License) Read(ctx context.Context, userID uuid.UUID, image io.Reader, size int64, contentType string) (LicenseScan, error) {
	key := fmt.Sprintf("licenses/%s/%s", userID, uuid.New())

	if err := s.storage.Upload(ctx, key, image, size, contentType); err != nil {
		s.logger.Error("License service: scan upload failed",
			"user_id", userID,
			"error", err.Error())
		return LicenseScan{}, fmt.Errorf("failed to upload license scan: %w", err)
	}

	url, err := s.storage.URL(ctx, key, ocrURLExpiry)
	if err != nil {
		return LicenseScan{}, fmt.Errorf("failed to resolve scan url: %w", err)
	}

	content, err := s.reader.ReadImage(ctx, url)
	if err != nil {
		s.logger.Error("License service: text extraction failed",
			"user_id", userID,
			"error", err.Error())
		return LicenseScan{}, apierrors.NewErrUpstreamFailed("text extraction service failed")
	}

	s.logger.Info("License service: scan processed", "user_id", userID)

	return LicenseScan{
		Content: content,
		Lines:   strings.Split(content, "\n"),
	}, nil
}
