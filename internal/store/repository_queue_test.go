package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/models"
)

func sampleOperation(taskID string, opType models.OperationType) models.PendingOperation {
	return models.PendingOperation{
		Type:          opType,
		TaskID:        taskID,
		CausalVersion: models.VectorClock{"dev-1": 1},
		EnqueuedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestQueueRepository_EnqueueAssignsSequence(t *testing.T) {
	repo := NewQueueRepository(newTestDB(t), logger.Nop())
	ctx := context.Background()

	first, err := repo.Enqueue(ctx, sampleOperation("task-1", models.OpCreate))
	require.NoError(t, err)

	second, err := repo.Enqueue(ctx, sampleOperation("task-2", models.OpCreate))
	require.NoError(t, err)

	assert.Greater(t, second, first)
}

func TestQueueRepository_ListOrderedBySequence(t *testing.T) {
	repo := NewQueueRepository(newTestDB(t), logger.Nop())
	ctx := context.Background()

	_, err := repo.Enqueue(ctx, sampleOperation("task-1", models.OpCreate))
	require.NoError(t, err)
	_, err = repo.Enqueue(ctx, sampleOperation("task-1", models.OpUpdate))
	require.NoError(t, err)
	_, err = repo.Enqueue(ctx, sampleOperation("task-2", models.OpDelete))
	require.NoError(t, err)

	ops, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, ops, 3)

	assert.Equal(t, models.OpCreate, ops[0].Type)
	assert.Equal(t, models.OpUpdate, ops[1].Type)
	assert.Equal(t, models.OpDelete, ops[2].Type)
	assert.Less(t, ops[0].Seq, ops[1].Seq)
	assert.Less(t, ops[1].Seq, ops[2].Seq)
	assert.Equal(t, int64(1), ops[0].CausalVersion.Counter("dev-1"))
}

func TestQueueRepository_ParkExcludesFromList(t *testing.T) {
	repo := NewQueueRepository(newTestDB(t), logger.Nop())
	ctx := context.Background()

	_, err := repo.Enqueue(ctx, sampleOperation("task-1", models.OpUpdate))
	require.NoError(t, err)
	_, err = repo.Enqueue(ctx, sampleOperation("task-2", models.OpUpdate))
	require.NoError(t, err)

	require.NoError(t, repo.Park(ctx, "task-1"))

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "task-2", active[0].TaskID)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Unpark(ctx, "task-1"))

	active, err = repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestQueueRepository_Remove(t *testing.T) {
	repo := NewQueueRepository(newTestDB(t), logger.Nop())
	ctx := context.Background()

	seq1, err := repo.Enqueue(ctx, sampleOperation("task-1", models.OpCreate))
	require.NoError(t, err)
	seq2, err := repo.Enqueue(ctx, sampleOperation("task-2", models.OpCreate))
	require.NoError(t, err)

	require.NoError(t, repo.Remove(ctx, []int64{seq1}))

	ops, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, seq2, ops[0].Seq)

	// removing nothing is a no-op
	require.NoError(t, repo.Remove(ctx, nil))
}

func TestQueueRepository_Replace_Atomic(t *testing.T) {
	repo := NewQueueRepository(newTestDB(t), logger.Nop())
	ctx := context.Background()

	seq1, err := repo.Enqueue(ctx, sampleOperation("task-1", models.OpCreate))
	require.NoError(t, err)
	seq2, err := repo.Enqueue(ctx, sampleOperation("task-1", models.OpUpdate))
	require.NoError(t, err)

	folded := sampleOperation("task-1", models.OpCreate)
	folded.CausalVersion = models.VectorClock{"dev-1": 2}

	require.NoError(t, repo.Replace(ctx, []int64{seq1, seq2}, []models.PendingOperation{folded}))

	ops, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, models.OpCreate, ops[0].Type)
	assert.Equal(t, int64(2), ops[0].CausalVersion.Counter("dev-1"))
	assert.Greater(t, ops[0].Seq, seq2)
}

func TestQueueRepository_Replace_RemoveOnly(t *testing.T) {
	repo := NewQueueRepository(newTestDB(t), logger.Nop())
	ctx := context.Background()

	seq1, err := repo.Enqueue(ctx, sampleOperation("task-1", models.OpCreate))
	require.NoError(t, err)
	seq2, err := repo.Enqueue(ctx, sampleOperation("task-1", models.OpDelete))
	require.NoError(t, err)

	// create followed by delete folds to nothing
	require.NoError(t, repo.Replace(ctx, []int64{seq1, seq2}, nil))

	ops, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, ops)
}
