package services

import (
	"bytes"
	"net/http"
	"os"
	"strings"
	"voter-registration-backend/apperrors"
	"voter-registration-backend/config"
	"voter-registration-backend/db/models"
	"voter-registration-backend/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// GovernmentIdsBucket holds front/back photos of a government ID.
	GovernmentIdsBucket = "government-ids"
	// IdSelfiesBucket holds the selfie-with-ID photos.
	IdSelfiesBucket = "id-selfies"

	MaxUploadSize = 5 * 1024 * 1024 // 5MB
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadService validates and stores ID photo attachments and produces their
// public references.
type UploadService struct {
	Storage utils.BucketStorage
	DB      *gorm.DB
}

func NewUploadService(storage utils.BucketStorage, db *gorm.DB) *UploadService {
	return &UploadService{Storage: storage, DB: db}
}

// Store validates the attachment and writes it to the bucket without
// overwriting existing content, returning the public URL. Validation happens
// entirely before the storage layer is touched.
func (s *UploadService) Store(content []byte, declaredType, bucket, path string, uploadedBy string) (string, error) {
	if len(content) == 0 {
		return "", apperrors.NewValidationError("file is empty")
	}
	if len(content) > MaxUploadSize {
		return "", apperrors.NewValidationError("file exceeds the 5MB size limit")
	}

	mimeType := strings.ToLower(strings.TrimSpace(declaredType))
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(content)
	}
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	if !allowedMimeTypes[mimeType] {
		return "", apperrors.NewValidationError("unsupported file type %s: only JPEG, PNG and WebP images are accepted", mimeType)
	}

	ok, err := s.Storage.BucketExists(bucket)
	if err != nil {
		return "", &apperrors.UnknownUploadError{Err: err}
	}
	if !ok {
		return "", &apperrors.NotFoundError{Resource: "storage bucket " + bucket}
	}

	if err := s.Storage.Put(bucket, path, bytes.NewReader(content)); err != nil {
		return "", classifyStorageError(err, path)
	}

	publicURL := s.Storage.PublicURL(bucket, path)
	if publicURL == "" {
		return "", &apperrors.UrlResolutionError{Bucket: bucket, Path: path}
	}

	// The audit row is best-effort: the binary is already stored and
	// referenced, so a bookkeeping failure must not fail the upload.
	record := models.UploadedFile{
		Bucket:     bucket,
		ObjectPath: path,
		FileType:   mimeType,
		FileSize:   decimal.NewFromInt(int64(len(content))),
		PublicURL:  publicURL,
		UploadedBy: uploadedBy,
	}
	if err := s.DB.Create(&record).Error; err != nil {
		config.Logger.Warn("Failed to record uploaded file",
			zap.String("bucket", bucket),
			zap.String("path", path),
			zap.Error(err))
	}

	return publicURL, nil
}

func classifyStorageError(err error, path string) error {
	switch {
	case os.IsExist(err):
		return &apperrors.DuplicateError{Path: path}
	case os.IsPermission(err):
		return &apperrors.PermissionError{Err: err}
	case os.IsNotExist(err):
		return &apperrors.NotFoundError{Resource: "destination path " + path}
	case strings.Contains(err.Error(), "failed to copy file content"):
		return &apperrors.StorageWriteError{Err: err}
	default:
		return &apperrors.UnknownUploadError{Err: err}
	}
}
