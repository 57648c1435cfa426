package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/admin/web-apps/banner-ai/internal/domain"
	"github.com/admin/web-apps/banner-ai/internal/ports/service"
)

const defaultGenerateTimeout = 120 * time.Second

// Orchestrator ведёт заявку idle -> checking_quota -> (limit_reached | generating) -> (succeeded | failed).
// Видимое состояние обновляет только последняя заявка, ответы предыдущих игнорируются.
type Orchestrator struct {
	Gate      service.IQuotaGate
	Generator service.IImageGenerator
	Catalog   *Catalog
	Policy    domain.QuotaPolicy
	Timeout   time.Duration
	Log       *slog.Logger
	// OnState вызывается при каждом переходе последней заявки, может быть nil
	OnState func(runID uuid.UUID, state domain.GenerationState)

	mu      sync.Mutex
	current uuid.UUID
	state   domain.GenerationState
	last    *domain.GenerationResult
}

func New(
	gate service.IQuotaGate,
	generator service.IImageGenerator,
	catalog *Catalog,
	policy domain.QuotaPolicy,
	log *slog.Logger,
) *Orchestrator {
	if !policy.IsValid() {
		policy = domain.QuotaPolicyStrict
	}
	return &Orchestrator{
		Gate:      gate,
		Generator: generator,
		Catalog:   catalog,
		Policy:    policy,
		Timeout:   defaultGenerateTimeout,
		Log:       log,
		state:     domain.GenerationIdle,
	}
}

// State состояние последней заявки
func (o *Orchestrator) State() domain.GenerationState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Last результат последней завершённой заявки, nil пока она выполняется
func (o *Orchestrator) Last() *domain.GenerationResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last
}

// Submit запускает новую заявку. Ошибки:
// domain.ErrUnknownStyle до проверки квоты, domain.ErrLimitReached,
// domain.ErrUpstreamUnavailable (только strict), domain.ErrGenerationFailed,
// ctx.Err() если ctx отменён во время проверки квоты.
func (o *Orchestrator) Submit(ctx context.Context, data domain.BannerData) (*domain.GenerationResult, error) {
	style, err := o.Catalog.Resolve(data.Style)
	if err != nil {
		return nil, err
	}

	res := &domain.GenerationResult{RunID: uuid.New()}
	o.begin(res.RunID)
	log := o.Log.With("run_id", res.RunID.String())

	count, err := o.Gate.Increment(ctx)
	switch {
	case errors.Is(err, domain.ErrLimitReached):
		log.InfoContext(ctx, "generation blocked: limit reached")
		o.finish(res, domain.GenerationLimitReached)
		return res, domain.ErrLimitReached
	case err != nil && ctx.Err() != nil:
		log.InfoContext(ctx, "generation canceled while checking quota", "error", err)
		o.finish(res, domain.GenerationFailed)
		return res, ctx.Err()
	case err != nil && o.Policy == domain.QuotaPolicyStrict:
		log.ErrorContext(ctx, "usage service unavailable, generation aborted", "error", err)
		o.finish(res, domain.GenerationFailed)
		if errors.Is(err, domain.ErrUpstreamUnavailable) {
			return res, err
		}
		return res, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	case err != nil:
		log.WarnContext(ctx, "usage service unavailable, continuing without quota check", "error", err)
		res.QuotaSkipped = true
	default:
		res.Count = count
	}

	o.transition(res.RunID, domain.GenerationGenerating)

	genCtx, cancel := context.WithTimeout(ctx, o.timeout())
	defer cancel()

	image, err := o.Generator.GenerateImage(genCtx, BuildPrompt(data, style), domain.DefaultAspectRatio)
	if err == nil && (image == nil || len(image.Data) == 0) {
		err = domain.ErrNoImageData
	}
	if err != nil {
		log.ErrorContext(ctx, "banner generation failed", "error", err, "style", style.ID)
		o.finish(res, domain.GenerationFailed)
		return res, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	res.Image = image
	log.InfoContext(ctx, "banner generated", "style", style.ID, "count", res.Count, "bytes", len(image.Data))
	o.finish(res, domain.GenerationSucceeded)
	return res, nil
}

func (o *Orchestrator) timeout() time.Duration {
	if o.Timeout <= 0 {
		return defaultGenerateTimeout
	}
	return o.Timeout
}

func (o *Orchestrator) begin(runID uuid.UUID) {
	o.mu.Lock()
	o.current = runID
	o.state = domain.GenerationCheckingQuota
	o.last = nil
	o.mu.Unlock()
	o.notify(runID, domain.GenerationCheckingQuota)
}

// transition no-op, если заявка уже не последняя
func (o *Orchestrator) transition(runID uuid.UUID, state domain.GenerationState) {
	o.mu.Lock()
	if o.current != runID {
		o.mu.Unlock()
		return
	}
	o.state = state
	o.mu.Unlock()
	o.notify(runID, state)
}

func (o *Orchestrator) finish(res *domain.GenerationResult, state domain.GenerationState) {
	res.State = state

	o.mu.Lock()
	if o.current != res.RunID {
		o.mu.Unlock()
		o.Log.Debug("stale generation result ignored", "run_id", res.RunID.String(), "state", state)
		return
	}
	o.state = state
	o.last = res
	o.mu.Unlock()
	o.notify(res.RunID, state)
}

func (o *Orchestrator) notify(runID uuid.UUID, state domain.GenerationState) {
	if o.OnState != nil {
		o.OnState(runID, state)
	}
}
