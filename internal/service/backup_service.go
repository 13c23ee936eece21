package service

import (
	"alcyxob/fitgpt/internal/domain"
	"alcyxob/fitgpt/internal/storage"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	backupPrefix      = "backups/"
	backupContentType = "application/json"
)

// --- Error Definitions ---
var (
	ErrBackupsDisabled  = errors.New("backups are not configured on this server")
	ErrInvalidBackupKey = errors.New("invalid backup key")
	ErrBackupNotFound   = errors.New("backup not found")
	ErrInvalidBackup    = errors.New("backup is not a valid export document")
)

// BackupService keeps export documents in object storage.
type BackupService interface {
	// CreateBackup uploads the current export and returns it with a download URL.
	CreateBackup(ctx context.Context) (*domain.Backup, error)
	// RestoreBackup imports a stored export (merge semantics, like Import).
	RestoreBackup(ctx context.Context, objectKey string) error
	DeleteBackup(ctx context.Context, objectKey string) error
}

type backupService struct {
	app           AppService
	fileStorage   storage.FileStorage // nil when no bucket is configured
	presignExpiry time.Duration
	now           func() time.Time
}

// NewBackupService creates a BackupService. A nil fileStorage disables backups.
func NewBackupService(app AppService, fileStorage storage.FileStorage, presignExpiry time.Duration) BackupService {
	if presignExpiry <= 0 {
		presignExpiry = storage.DefaultPresignedURLExpiry
	}
	return &backupService{
		app:           app,
		fileStorage:   fileStorage,
		presignExpiry: presignExpiry,
		now:           time.Now,
	}
}

// BackupFileName is the download name of an export made on day.
func BackupFileName(day time.Time) string {
	return fmt.Sprintf("fitgpt-backup-%s.json", day.Format(domain.DateLayout))
}

func validateBackupKey(objectKey string) error {
	name := strings.TrimPrefix(objectKey, backupPrefix)
	if name == objectKey || name == "" || strings.Contains(name, "/") || !strings.HasSuffix(name, ".json") {
		return fmt.Errorf("%w: %q", ErrInvalidBackupKey, objectKey)
	}
	return nil
}

func (s *backupService) CreateBackup(ctx context.Context) (*domain.Backup, error) {
	if s.fileStorage == nil {
		return nil, ErrBackupsDisabled
	}
	data, err := s.app.Export()
	if err != nil {
		return nil, fmt.Errorf("export data: %w", err)
	}

	createdAt := s.now().UTC()
	fileName := BackupFileName(createdAt)
	objectKey := fmt.Sprintf("%s%s-%s.json", backupPrefix, strings.TrimSuffix(fileName, ".json"), uuid.NewString())

	if err := s.fileStorage.PutObject(ctx, objectKey, backupContentType, data); err != nil {
		return nil, fmt.Errorf("upload backup: %w", err)
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign backup: %w", err)
	}

	log.Printf("INFO: Backup %s created (%d bytes)", objectKey, len(data))
	return &domain.Backup{
		ObjectKey:   objectKey,
		FileName:    fileName,
		Size:        int64(len(data)),
		CreatedAt:   createdAt,
		DownloadURL: url,
	}, nil
}

func (s *backupService) RestoreBackup(ctx context.Context, objectKey string) error {
	if s.fileStorage == nil {
		return ErrBackupsDisabled
	}
	if err := validateBackupKey(objectKey); err != nil {
		return err
	}
	data, err := s.fileStorage.GetObject(ctx, objectKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return ErrBackupNotFound
	}
	if err != nil {
		return fmt.Errorf("download backup: %w", err)
	}
	if !s.app.Import(ctx, data) {
		return ErrInvalidBackup
	}
	log.Printf("INFO: Backup %s restored", objectKey)
	return nil
}

func (s *backupService) DeleteBackup(ctx context.Context, objectKey string) error {
	if s.fileStorage == nil {
		return ErrBackupsDisabled
	}
	if err := validateBackupKey(objectKey); err != nil {
		return err
	}
	return s.fileStorage.DeleteObject(ctx, objectKey)
}
