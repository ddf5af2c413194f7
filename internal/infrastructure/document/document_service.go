package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"forsign-esign/internal/config"
	"forsign-esign/internal/domain/apierror"
)

const pdfMIME = "application/pdf"

// ErrNotPDF is the cause of every rejected non-PDF upload.
var ErrNotPDF = errors.New("only PDF files are supported")

// DocumentService checks documents before they are uploaded to ForSign.
type DocumentService interface {
	// LoadPDF reads path and returns its base name and content once it passes ValidatePDF.
	LoadPDF(path string) (filename string, content []byte, err error)

	// ValidatePDF requires a .pdf extension (any case), a detected
	// application/pdf MIME type and a size within the configured limit.
	ValidatePDF(filename string, content []byte) error
}

type documentService struct {
	maxSize int
	logger  *zap.Logger
}

func NewDocumentService(cfg *config.Config, logger *zap.Logger) DocumentService {
	logger.Info("Document service initialized",
		zap.Int("max_size", cfg.Upload.MaxSize),
	)
	return &documentService{
		maxSize: cfg.Upload.MaxSize,
		logger:  logger,
	}
}

var Module = fx.Module("document",
	fx.Provide(NewDocumentService),
)

func (s *documentService) LoadPDF(path string) (string, []byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, apierror.Argumentf("file", "file not found: %s", path)
		}
		return "", nil, fmt.Errorf("failed to stat document: %w", err)
	}
	if info.IsDir() {
		return "", nil, apierror.Argumentf("file", "%s is a directory", path)
	}

	filename := filepath.Base(path)
	if !hasPDFExtension(filename) {
		return "", nil, &apierror.ArgumentError{Field: "file", Err: ErrNotPDF}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read document: %w", err)
	}

	if err := s.ValidatePDF(filename, content); err != nil {
		return "", nil, err
	}
	return filename, content, nil
}

func (s *documentService) ValidatePDF(filename string, content []byte) error {
	if !hasPDFExtension(filename) {
		return &apierror.ArgumentError{Field: "file", Err: ErrNotPDF}
	}
	if len(content) == 0 {
		return apierror.Argumentf("file", "%s is empty", filename)
	}
	if s.maxSize > 0 && len(content) > s.maxSize {
		return apierror.Argumentf("file", "%s exceeds the maximum size of %d bytes", filename, s.maxSize)
	}

	detected := mimetype.Detect(content)
	if !detected.Is(pdfMIME) {
		s.logger.Warn("Rejected upload with PDF extension but different content",
			zap.String("filename", filename),
			zap.String("detected_mime", detected.String()),
		)
		return &apierror.ArgumentError{Field: "file", Err: ErrNotPDF}
	}
	return nil
}

func hasPDFExtension(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}
