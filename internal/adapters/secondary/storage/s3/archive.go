package s3

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/admin/web-apps/banner-ai/internal/domain"
	"github.com/admin/web-apps/banner-ai/internal/ports/service"
	"github.com/admin/web-apps/banner-ai/internal/ports/storage"
)

// BannerArchive складывает готовые баннеры в бакет и отдаёт presigned-ссылку
type BannerArchive struct {
	files      storage.IS3Client
	keyPrefix  string
	presignTTL time.Duration
	now        func() time.Time
	log        *slog.Logger
}

var _ service.IBannerArchive = (*BannerArchive)(nil)

func NewBannerArchive(files storage.IS3Client, cfg *Config, log *slog.Logger) *BannerArchive {
	return &BannerArchive{
		files:      files,
		keyPrefix:  cfg.KeyPrefix,
		presignTTL: cfg.PresignTTL,
		now:        time.Now,
		log:        log,
	}
}

// SaveBanner ключ: <prefix><yyyy/mm/dd>/<client>/<uuid>.<ext>
func (a *BannerArchive) SaveBanner(ctx context.Context, clientID string, image *domain.GeneratedImage) (string, error) {
	if image == nil || len(image.Data) == 0 {
		return "", domain.ErrNoImageData
	}

	mime := image.MimeType
	if mime == "" {
		mime = "image/png"
	}

	key := a.objectKey(clientID, mime)
	if err := a.files.PutFile(ctx, key, image.Data, mime); err != nil {
		return "", fmt.Errorf("failed to archive banner: %w", err)
	}

	url, err := a.files.GetPresignedURL(ctx, key, a.presignTTL)
	if err != nil {
		return "", fmt.Errorf("failed to presign banner: %w", err)
	}

	a.log.Info("banner archived", "client_id", clientID, "key", key)
	return url, nil
}

func (a *BannerArchive) objectKey(clientID, mime string) string {
	return fmt.Sprintf("%s%s/%s/%s.%s",
		a.keyPrefix,
		a.now().UTC().Format("2006/01/02"),
		safeSegment(clientID),
		uuid.NewString(),
		extension(mime))
}

// safeSegment IPv6 и "unknown" превращает в допустимый сегмент ключа
func safeSegment(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return '_'
		}
	}, s)
}

func extension(mime string) string {
	switch mime {
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	default:
		return "png"
	}
}
