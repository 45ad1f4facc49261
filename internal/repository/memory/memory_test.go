package memory_test

import (
	"context"
	"testing"

	"github.com/mrmateussiilva/petstory/internal/models"
	"github.com/mrmateussiilva/petstory/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunRepo() interface {
	Create(ctx context.Context, entity *models.OrderRun) error
	GetByID(ctx context.Context, id string) (*models.OrderRun, error)
	Update(ctx context.Context, entity *models.OrderRun, id string) error
	DeleteWhere(ctx context.Context, match func(*models.OrderRun) bool) int
} {
	return memory.New[models.OrderRun](func(r *models.OrderRun) string { return r.ID })
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := newRunRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.OrderRun{ID: "run-1", State: models.StateAdmitted}))

	got, err := repo.GetByID(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, models.StateAdmitted, got.State)

	got.State = models.StateFailed
	again, err := repo.GetByID(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, models.StateAdmitted, again.State, "callers must get copies")
}

func TestRepository_CreateDuplicate(t *testing.T) {
	repo := newRunRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.OrderRun{ID: "run-1"}))
	assert.Error(t, repo.Create(ctx, &models.OrderRun{ID: "run-1"}))
}

func TestRepository_UpdateMissing(t *testing.T) {
	repo := newRunRepo()

	err := repo.Update(context.Background(), &models.OrderRun{ID: "ghost"}, "ghost")

	assert.ErrorIs(t, err, memory.ErrNotFound)
}

func TestRepository_DeleteWhere(t *testing.T) {
	repo := newRunRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.OrderRun{ID: "a", State: models.StateCompleted}))
	require.NoError(t, repo.Create(ctx, &models.OrderRun{ID: "b", State: models.StateFailed}))
	require.NoError(t, repo.Create(ctx, &models.OrderRun{ID: "c", State: models.StateGenerating}))

	terminal := func(r *models.OrderRun) bool { return r.State.IsTerminal() }

	assert.Equal(t, 2, repo.DeleteWhere(ctx, terminal))
	_, err := repo.GetByID(ctx, "a")
	assert.ErrorIs(t, err, memory.ErrNotFound)
	_, err = repo.GetByID(ctx, "c")
	assert.NoError(t, err)
}
