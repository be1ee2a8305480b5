package app

import (
	"context"
	"testing"
	"time"

	"github.com/niksmo/storefront/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_RunClose(t *testing.T) {
	cfg, err := config.LoadFile("")
	require.NoError(t, err)
	cfg.HTTPServerAddr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	app := New(ctx, cfg)
	assert.Nil(t, app.producer)
	assert.Equal(t, 8, app.catalog.Len())
	assert.Equal(t, 4, app.carousel.Len())

	v := app.session.View()
	assert.Equal(t, 8, v.ResultCount())
	assert.Equal(t, 3, v.CompareCapacity)

	app.Run(cancel)

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second)
	defer closeCancel()
	app.Close(closeCtx)
}

func TestApp_InvalidCatalogPanics(t *testing.T) {
	cfg, err := config.LoadFile("")
	require.NoError(t, err)
	cfg.CatalogFile = t.TempDir() + "/absent.yaml"

	assert.Panics(t, func() { New(t.Context(), cfg) })
}
