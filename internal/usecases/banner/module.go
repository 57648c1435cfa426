package banner

import (
	"context"
	"log/slog"
	"time"

	"github.com/admin/web-apps/banner-ai/internal/domain"
	"github.com/admin/web-apps/banner-ai/internal/ports/service"
	"github.com/admin/web-apps/banner-ai/internal/ports/usecase"
	"github.com/admin/web-apps/banner-ai/internal/usecases/generation"
	"github.com/admin/web-apps/banner-ai/internal/usecases/usage"
)

// Service генерация на стороне сервера: квота проверяется в процессе, без HTTP
type Service struct {
	Usage     *usage.Service
	Generator service.IImageGenerator
	Catalog   *generation.Catalog
	Archive   service.IBannerArchive // может быть nil
	Policy    domain.QuotaPolicy
	Timeout   time.Duration
	Log       *slog.Logger
}

var _ usecase.IBannerUseCase = (*Service)(nil)

func New(
	usageService *usage.Service,
	generator service.IImageGenerator,
	catalog *generation.Catalog,
	archive service.IBannerArchive,
	policy domain.QuotaPolicy,
	timeout time.Duration,
	log *slog.Logger,
) *Service {
	return &Service{
		Usage:     usageService,
		Generator: generator,
		Catalog:   catalog,
		Archive:   archive,
		Policy:    policy,
		Timeout:   timeout,
		Log:       log,
	}
}

// Generate на каждый запрос свой оркестратор, гейт привязан к clientID
func (s *Service) Generate(ctx context.Context, clientID string, data domain.BannerData) (*domain.GenerationResult, error) {
	o := generation.New(s.Usage.Gate(clientID), s.Generator, s.Catalog, s.Policy, s.Log.With("client_id", clientID))
	if s.Timeout > 0 {
		o.Timeout = s.Timeout
	}

	res, err := o.Submit(ctx, data)
	if err != nil {
		return res, err
	}

	if s.Archive != nil {
		url, err := s.Archive.SaveBanner(ctx, clientID, res.Image)
		if err != nil {
			// баннер уже сгенерирован и квота списана, отдаём его без ссылки
			s.Log.WarnContext(ctx, "failed to archive banner", "error", err, "client_id", clientID)
		} else {
			res.ArchiveURL = url
		}
	}
	return res, nil
}

func (s *Service) Styles() []domain.Style {
	return s.Catalog.List()
}
