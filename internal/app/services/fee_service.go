package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/braxton0054/eavisystem/internal/admission"
	"github.com/braxton0054/eavisystem/internal/app/models"
	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
)

var pdfMagic = []byte("%PDF-")

// Uploader stores multipart uploads.
type Uploader interface {
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)
}

// FeeService manages uploaded fee-structure documents.
type FeeService struct {
	store    ArtifactStore
	uploader Uploader
	maxBytes int64
	logger   zerolog.Logger
}

var _ admission.FeeSource = (*FeeService)(nil)

// NewFeeService creates a new FeeService
func NewFeeService(store ArtifactStore, uploader Uploader, maxBytes int64, logger zerolog.Logger) *FeeService {
	return &FeeService{
		store:    store,
		uploader: uploader,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// feeFilename rejects anything that is not a bare file name.
func feeFilename(filename string) (string, error) {
	if filename == "" || filename != path.Base(filename) || strings.ContainsAny(filename, `\/`) || strings.HasPrefix(filename, ".") {
		return "", apperrors.NewBadRequestError("invalid fee structure filename")
	}
	return filename, nil
}

// OpenFeeStructure reads a fee-structure document by filename.
func (s *FeeService) OpenFeeStructure(ctx context.Context, filename string) ([]byte, error) {
	name, err := feeFilename(filename)
	if err != nil {
		return nil, err
	}
	data, err := s.store.ReadFile(ctx, FeeDir+"/"+name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrFeeFileNotFound, name)
		}
		return nil, err
	}
	return data, nil
}

// List returns the stored fee-structure documents.
func (s *FeeService) List(ctx context.Context) ([]models.FeeDocument, error) {
	files, err := s.store.List(ctx, FeeDir)
	if err != nil {
		return nil, apperrors.NewStorageError("could not list fee structures", err)
	}

	docs := make([]models.FeeDocument, 0, len(files))
	for _, f := range files {
		if !strings.EqualFold(path.Ext(f.Name), ".pdf") {
			continue
		}
		docs = append(docs, models.FeeDocument{
			Filename:    f.Name,
			DisplayName: DisplayName(f.Name),
			SizeBytes:   f.Size,
			UploadedAt:  f.ModTime,
		})
	}
	return docs, nil
}

// Upload validates and stores an uploaded fee-structure PDF.
func (s *FeeService) Upload(fileHeader *multipart.FileHeader) (*models.FeeDocument, error) {
	if fileHeader == nil {
		return nil, apperrors.NewValidationError("file", "No file uploaded")
	}
	if !strings.EqualFold(path.Ext(fileHeader.Filename), ".pdf") {
		return nil, apperrors.NewValidationError("file", "Only PDF files are allowed")
	}
	if s.maxBytes > 0 && fileHeader.Size > s.maxBytes {
		return nil, apperrors.NewValidationError("file",
			fmt.Sprintf("File exceeds the %d MB limit", s.maxBytes>>20))
	}
	if err := checkPDFHeader(fileHeader); err != nil {
		return nil, err
	}

	name, err := s.uploader.SaveFileWithPath(fileHeader, FeeDir)
	if err != nil {
		return nil, apperrors.NewStorageError("could not store fee structure", err)
	}

	s.logger.Info().Str("filename", name).Int64("size", fileHeader.Size).Msg("Fee structure uploaded")
	return &models.FeeDocument{
		Filename:    name,
		DisplayName: DisplayName(name),
		SizeBytes:   fileHeader.Size,
	}, nil
}

func checkPDFHeader(fileHeader *multipart.FileHeader) error {
	f, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewBadRequestError("could not read uploaded file")
	}
	defer f.Close()

	head := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(f, head); err != nil || !bytes.Equal(head, pdfMagic) {
		return apperrors.NewValidationError("file", "Only PDF files are allowed")
	}
	return nil
}

// Download returns a fee-structure document.
func (s *FeeService) Download(ctx context.Context, filename string) ([]byte, error) {
	data, err := s.OpenFeeStructure(ctx, filename)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrFeeFileNotFound, apperrors.ErrBadRequest) {
			return nil, err
		}
		return nil, apperrors.NewStorageError("could not read fee structure", err)
	}
	return data, nil
}

// DisplayName turns "1760515200_Medical_Lab.pdf" into "Medical Lab".
func DisplayName(filename string) string {
	name := strings.TrimSuffix(filename, path.Ext(filename))
	if i := strings.IndexByte(name, '_'); i > 0 && strings.Trim(name[:i], "0123456789") == "" {
		name = name[i+1:]
	}
	return strings.Join(strings.Fields(strings.ReplaceAll(name, "_", " ")), " ")
}
