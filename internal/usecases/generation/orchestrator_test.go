package generation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admin/web-apps/banner-ai/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/web-apps/banner-ai/internal/domain"
	"github.com/admin/web-apps/banner-ai/internal/pkg/logger"
	"github.com/admin/web-apps/banner-ai/internal/usecases/usage"
)

type gateFunc func(ctx context.Context) (int64, error)

func (f gateFunc) Increment(ctx context.Context) (int64, error) { return f(ctx) }

type fakeGenerator struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	image   *domain.GeneratedImage
	err     error
	// block если задан, генератор ждёт его закрытия
	block chan struct{}
}

func (g *fakeGenerator) GenerateImage(ctx context.Context, prompt string, aspectRatio string) (*domain.GeneratedImage, error) {
	g.mu.Lock()
	g.calls++
	g.prompts = append(g.prompts, prompt)
	block := g.block
	g.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return g.image, g.err
}

func (g *fakeGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func pngImage() *domain.GeneratedImage {
	return &domain.GeneratedImage{MimeType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}
}

func newOrchestrator(t *testing.T, gate gateFunc, gen *fakeGenerator, policy domain.QuotaPolicy) *Orchestrator {
	t.Helper()
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	return New(gate, gen, catalog, policy, logger.Discard())
}

var profile = domain.BannerData{
	Name:    "Ada Lovelace",
	Title:   "Analytical Engineer",
	Tagline: "Poetical science",
	Email:   "ada@example.com",
	Phone:   "+44 000",
	Style:   "luxury",
}

func TestOrchestrator_LimitStopsGeneration(t *testing.T) {
	svc := usage.New(inmemory.NewUsageStore(), nil, domain.DefaultUsageLimit, logger.Discard())
	gen := &fakeGenerator{image: pngImage()}
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	o := New(svc.Gate("1.2.3.4"), gen, catalog, domain.QuotaPolicyStrict, logger.Discard())
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		res, err := o.Submit(ctx, profile)
		require.NoError(t, err)
		assert.Equal(t, want, res.Count)
		assert.Equal(t, domain.GenerationSucceeded, res.State)
		assert.Equal(t, domain.GenerationSucceeded, o.State())
	}

	res, err := o.Submit(ctx, profile)
	assert.ErrorIs(t, err, domain.ErrLimitReached)
	require.NotNil(t, res)
	assert.Equal(t, domain.GenerationLimitReached, res.State)
	assert.Nil(t, res.Image)
	assert.Equal(t, domain.GenerationLimitReached, o.State())
	assert.Equal(t, 3, gen.Calls())
}

func TestOrchestrator_UpstreamPolicy(t *testing.T) {
	down := gateFunc(func(context.Context) (int64, error) {
		return 0, errors.New("connection refused")
	})

	t.Run("strict", func(t *testing.T) {
		gen := &fakeGenerator{image: pngImage()}
		o := newOrchestrator(t, down, gen, domain.QuotaPolicyStrict)

		res, err := o.Submit(context.Background(), profile)
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
		assert.Equal(t, domain.GenerationFailed, res.State)
		assert.Zero(t, gen.Calls())
	})

	t.Run("lenient", func(t *testing.T) {
		gen := &fakeGenerator{image: pngImage()}
		o := newOrchestrator(t, down, gen, domain.QuotaPolicyLenient)

		res, err := o.Submit(context.Background(), profile)
		require.NoError(t, err)
		assert.True(t, res.QuotaSkipped)
		assert.Zero(t, res.Count)
		assert.Equal(t, domain.GenerationSucceeded, res.State)
		assert.Equal(t, 1, gen.Calls())
	})

	t.Run("lenient still honours limit", func(t *testing.T) {
		gen := &fakeGenerator{image: pngImage()}
		limited := gateFunc(func(context.Context) (int64, error) { return 0, domain.ErrLimitReached })
		o := newOrchestrator(t, limited, gen, domain.QuotaPolicyLenient)

		_, err := o.Submit(context.Background(), profile)
		assert.ErrorIs(t, err, domain.ErrLimitReached)
		assert.Zero(t, gen.Calls())
	})
}

func TestOrchestrator_CanceledDuringQuotaCheck(t *testing.T) {
	gate := gateFunc(func(ctx context.Context) (int64, error) {
		return 0, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, ctx.Err())
	})

	for _, policy := range []domain.QuotaPolicy{domain.QuotaPolicyLenient, domain.QuotaPolicyStrict} {
		t.Run(string(policy), func(t *testing.T) {
			gen := &fakeGenerator{image: pngImage()}
			o := newOrchestrator(t, gate, gen, policy)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			res, err := o.Submit(ctx, profile)
			assert.ErrorIs(t, err, context.Canceled)
			assert.NotErrorIs(t, err, domain.ErrUpstreamUnavailable)
			assert.False(t, res.QuotaSkipped)
			assert.Equal(t, domain.GenerationFailed, res.State)
			assert.Zero(t, gen.Calls())
		})
	}
}

func TestOrchestrator_GeneratorFailure(t *testing.T) {
	ok := gateFunc(func(context.Context) (int64, error) { return 1, nil })

	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{name: "error", gen: &fakeGenerator{err: errors.New("quota exhausted")}},
		{name: "no image", gen: &fakeGenerator{}},
		{name: "empty image", gen: &fakeGenerator{image: &domain.GeneratedImage{MimeType: "image/png"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrchestrator(t, ok, tt.gen, domain.QuotaPolicyStrict)

			res, err := o.Submit(context.Background(), profile)
			assert.ErrorIs(t, err, domain.ErrGenerationFailed)
			assert.Equal(t, domain.GenerationFailed, res.State)
			assert.Equal(t, domain.GenerationFailed, o.State())
			assert.Equal(t, 1, tt.gen.Calls())
		})
	}
}

func TestOrchestrator_Timeout(t *testing.T) {
	ok := gateFunc(func(context.Context) (int64, error) { return 1, nil })
	gen := &fakeGenerator{image: pngImage(), block: make(chan struct{})}
	o := newOrchestrator(t, ok, gen, domain.QuotaPolicyStrict)
	o.Timeout = 20 * time.Millisecond

	_, err := o.Submit(context.Background(), profile)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOrchestrator_UnknownStyleConsumesNoQuota(t *testing.T) {
	var increments int
	gate := gateFunc(func(context.Context) (int64, error) {
		increments++
		return int64(increments), nil
	})
	gen := &fakeGenerator{image: pngImage()}
	o := newOrchestrator(t, gate, gen, domain.QuotaPolicyStrict)

	data := profile
	data.Style = "vaporwave"
	res, err := o.Submit(context.Background(), data)
	assert.ErrorIs(t, err, domain.ErrUnknownStyle)
	assert.Nil(t, res)
	assert.Zero(t, increments)
	assert.Equal(t, domain.GenerationIdle, o.State())
}

func TestOrchestrator_StaleRunIgnored(t *testing.T) {
	ok := gateFunc(func(context.Context) (int64, error) { return 1, nil })
	slow := &fakeGenerator{image: pngImage(), block: make(chan struct{})}
	o := newOrchestrator(t, ok, slow, domain.QuotaPolicyStrict)

	var transitions []domain.GenerationState
	var mu sync.Mutex
	o.OnState = func(_ uuid.UUID, s domain.GenerationState) {
		mu.Lock()
		transitions = append(transitions, s)
		mu.Unlock()
	}

	firstDone := make(chan *domain.GenerationResult, 1)
	go func() {
		res, _ := o.Submit(context.Background(), profile)
		firstDone <- res
	}()

	require.Eventually(t, func() bool { return slow.Calls() == 1 }, time.Second, time.Millisecond)

	// вторая заявка идёт через быстрый генератор
	o.Generator = &fakeGenerator{err: errors.New("boom")}
	second, err := o.Submit(context.Background(), profile)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)

	close(slow.block)
	first := <-firstDone

	require.NotNil(t, first)
	assert.Equal(t, domain.GenerationSucceeded, first.State)
	assert.NotEqual(t, first.RunID, second.RunID)

	assert.Equal(t, domain.GenerationFailed, o.State())
	require.NotNil(t, o.Last())
	assert.Equal(t, second.RunID, o.Last().RunID)

	mu.Lock()
	defer mu.Unlock()
	assert.NotContains(t, transitions, domain.GenerationSucceeded)
}
