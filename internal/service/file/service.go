package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/punchdesk/attendance-backend-go/internal/pkg/storage"
)

// FileService stores punch photos and expense receipts and hands back the
// opaque path reference the domain records carry.
type FileService interface {
	UploadPunchPhoto(ctx context.Context, userID string, kind string, file io.Reader, filename string) (string, error)
	UploadReceipt(ctx context.Context, userID string, file io.Reader, filename string) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(fs storage.FileStorage) FileService {
	return &fileServiceImpl{storage: fs}
}

func (f *fileServiceImpl) UploadPunchPhoto(ctx context.Context, userID string, kind string, file io.Reader, filename string) (string, error) {
	path := fmt.Sprintf("photos/punch_%s_%s_%s%s", userID, kind, uuid.NewString(), extensionOf(filename))
	ref, err := f.storage.Upload(ctx, file, path, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to store punch photo: %w", err)
	}
	return ref, nil
}

func (f *fileServiceImpl) UploadReceipt(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	path := fmt.Sprintf("expenses/expense_%s_%s%s", userID, uuid.NewString(), extensionOf(filename))
	ref, err := f.storage.Upload(ctx, file, path, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to store receipt: %w", err)
	}
	return ref, nil
}

func extensionOf(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
		return ext
	}
	return ".jpg"
}
