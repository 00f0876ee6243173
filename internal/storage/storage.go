package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/config"
)

// Storage persists uploaded pet images and resolves their public URL.
type Storage interface {
	Save(ctx context.Context, key, contentType string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New picks the backend from STORAGE_TYPE.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.StorageType {
	case "s3":
		return NewS3(ctx, cfg)
	case "local", "":
		return NewLocal(cfg.UploadDir, cfg.PublicURL+"/uploads")
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// FileName builds "YYYYMMDD-<8 hex>-<base><ext>" in lowercase, with the
// original base name sanitised and cut to 20 characters.
func FileName(original string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "-"), "-")
	if len(base) > 20 {
		base = base[:20]
	}
	if base == "" {
		base = "image"
	}
	ext = unsafeChars.ReplaceAllString(strings.TrimPrefix(ext, "."), "")
	if ext != "" {
		ext = "." + ext
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%s-%s%s", now.UTC().Format("20060102"), id, base, ext)
}
