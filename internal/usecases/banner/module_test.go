package banner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admin/web-apps/banner-ai/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/web-apps/banner-ai/internal/domain"
	"github.com/admin/web-apps/banner-ai/internal/pkg/logger"
	"github.com/admin/web-apps/banner-ai/internal/usecases/generation"
	"github.com/admin/web-apps/banner-ai/internal/usecases/usage"
)

type stubGenerator struct {
	calls int
	err   error
}

func (g *stubGenerator) GenerateImage(context.Context, string, string) (*domain.GeneratedImage, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &domain.GeneratedImage{MimeType: "image/png", Data: []byte("png")}, nil
}

type stubArchive struct {
	url string
	err error
}

func (a stubArchive) SaveBanner(context.Context, string, *domain.GeneratedImage) (string, error) {
	return a.url, a.err
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (int64, error) { return 0, errors.New("down") }
func (brokenStore) IncrementIfAllowed(context.Context, string, int64) (int64, error) {
	return 0, errors.New("down")
}

func newService(t *testing.T, store *inmemory.UsageStore, gen *stubGenerator, archive *stubArchive, policy domain.QuotaPolicy) *Service {
	t.Helper()
	catalog, err := generation.DefaultCatalog()
	require.NoError(t, err)

	svc := New(usage.New(store, nil, domain.DefaultUsageLimit, logger.Discard()), gen, catalog, nil, policy, time.Second, logger.Discard())
	if archive != nil {
		svc.Archive = archive
	}
	return svc
}

func TestService_GenerateUntilLimit(t *testing.T) {
	gen := &stubGenerator{}
	svc := newService(t, inmemory.NewUsageStore(), gen, &stubArchive{url: "https://s3/x"}, domain.QuotaPolicyStrict)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		res, err := svc.Generate(ctx, "1.2.3.4", domain.BannerData{Name: "Ada"})
		require.NoError(t, err)
		assert.Equal(t, want, res.Count)
		assert.Equal(t, "https://s3/x", res.ArchiveURL)
	}

	_, err := svc.Generate(ctx, "1.2.3.4", domain.BannerData{Name: "Ada"})
	assert.ErrorIs(t, err, domain.ErrLimitReached)
	assert.Equal(t, 3, gen.calls)

	// другой клиент не затронут
	res, err := svc.Generate(ctx, "5.6.7.8", domain.BannerData{Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Count)
}

func TestService_ArchiveFailureKeepsImage(t *testing.T) {
	svc := newService(t, inmemory.NewUsageStore(), &stubGenerator{}, &stubArchive{err: errors.New("s3 down")}, domain.QuotaPolicyStrict)

	res, err := svc.Generate(context.Background(), "a", domain.BannerData{Name: "Ada"})
	require.NoError(t, err)
	assert.NotNil(t, res.Image)
	assert.Empty(t, res.ArchiveURL)
}

func TestService_StoreFailure(t *testing.T) {
	catalog, err := generation.DefaultCatalog()
	require.NoError(t, err)

	for _, tt := range []struct {
		policy  domain.QuotaPolicy
		wantErr error
		calls   int
	}{
		{policy: domain.QuotaPolicyStrict, wantErr: domain.ErrUpstreamUnavailable, calls: 0},
		{policy: domain.QuotaPolicyLenient, wantErr: nil, calls: 1},
	} {
		t.Run(string(tt.policy), func(t *testing.T) {
			gen := &stubGenerator{}
			svc := New(usage.New(brokenStore{}, nil, 3, logger.Discard()), gen, catalog, nil, tt.policy, time.Second, logger.Discard())

			_, err := svc.Generate(context.Background(), "a", domain.BannerData{Name: "Ada"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.calls, gen.calls)
		})
	}
}

func TestService_Styles(t *testing.T) {
	svc := newService(t, inmemory.NewUsageStore(), &stubGenerator{}, nil, domain.QuotaPolicyStrict)
	assert.Len(t, svc.Styles(), 4)
}
