package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/studygraph/internal/config"
	"github.com/platformbuilds/studygraph/internal/graph"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.GetDefaultConfig()
	cfg.Environment = "test"
	cfg.Storage.DataDir = t.TempDir()
	cfg.Cache.Addr = ""
	return cfg
}

func TestNewRuntimeFileBackendPersists(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	rt, err := NewRuntime(ctx, cfg, nil, logger.NewNop())
	require.NoError(t, err)
	assert.Len(t, rt.Studies.List(), 2)

	draft, err := rt.Studies.NewDraft("A_4.001", "SMH")
	require.NoError(t, err)
	draft.TitleShort = "Instalación"
	_, err = rt.Studies.Create(ctx, draft)
	require.NoError(t, err)
	require.NoError(t, rt.Close())

	reopened, err := NewRuntime(ctx, cfg, nil, logger.NewNop())
	require.NoError(t, err)
	defer reopened.Close()
	studies := reopened.Studies.List()
	require.Len(t, studies, 3)
	assert.Equal(t, "M-4-001", studies[0].ID)
}

func TestNewRuntimeWithCatalogFile(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products:\n  - id: flow\n    name: Flow TV\n    color: \"#000\"\n    verticals: [FLW]\n"), 0o644))
	cfg.Catalog.Path = path
	cfg.Storage.Backend = "memory"

	rt, err := NewRuntime(context.Background(), cfg, nil, logger.NewNop())
	require.NoError(t, err)
	defer rt.Close()

	assert.Len(t, rt.Catalog.Products(), 1)
	g, err := rt.Studies.ScopedGraph(context.Background(), "flow", graph.Query{})
	require.NoError(t, err)
	assert.Equal(t, "Flow TV", g.Title)
}

func TestNewRuntimeRejectsBrokenCatalog(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products:\n  - id: x\n    verticals: [NOPE]\n"), 0o644))
	cfg.Catalog.Path = path

	_, err := NewRuntime(context.Background(), cfg, nil, logger.NewNop())
	assert.Error(t, err)
}

func TestOpenCacheFallsBackWhenUnreachable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Addr = "127.0.0.1:1"

	c := OpenCache(cfg, logger.NewNop())
	require.NotNil(t, c)
	assert.NoError(t, c.HealthCheck(context.Background()))
}

func TestOpenCacheUsesValkey(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Cache.Addr = mr.Addr()

	c := OpenCache(cfg, logger.NewNop())
	defer c.Close()
	require.NoError(t, c.Set(context.Background(), "k", "v", 0))
	assert.True(t, mr.Exists("k"))
}

func TestValkeyBackedRuntime(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Storage.Backend = "valkey"
	cfg.Storage.Valkey.Addr = mr.Addr()

	rt, err := NewRuntime(context.Background(), cfg, nil, logger.NewNop())
	require.NoError(t, err)
	defer rt.Close()

	draft, err := rt.Studies.NewDraft("", "")
	require.NoError(t, err)
	draft.TitleShort = "Valkey"
	_, err = rt.Studies.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cfg.Storage.Key))
}
