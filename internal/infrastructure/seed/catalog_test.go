package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/seed"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

func TestRun_CargaCatalogoUnaSolaVez(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	n, err := seed.Run(ctx, store, seed.DemoCatalog, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, len(seed.DemoCatalog), n)

	again, err := seed.Run(ctx, store, seed.DemoCatalog, logger.Nop())
	require.NoError(t, err)
	assert.Zero(t, again, "con catálogo existente no se duplica")

	total, _ := store.Count(ctx)
	assert.Equal(t, len(seed.DemoCatalog), total)
}

func TestRun_PrecioInvalido(t *testing.T) {
	_, err := seed.Run(context.Background(), memory.New(), []seed.Item{{Name: "X", Price: "abc", Stock: 1}}, logger.Nop())
	assert.Error(t, err)
}

func TestRun_ProductoInvalido(t *testing.T) {
	_, err := seed.Run(context.Background(), memory.New(), []seed.Item{{Name: " ", Price: "1", Stock: 1}}, logger.Nop())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
