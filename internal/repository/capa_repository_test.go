package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mohamadacma/capflow-demo/internal/model"
	"github.com/mohamadacma/capflow-demo/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCAPARepository_CreateAndFind 测试 CAPA 保存和查询
func TestCAPARepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	requests := repository.NewRequestRepository(db)
	repo := repository.NewCAPARepository(db)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	req := newRequest("Update SOP-12", base)
	require.NoError(t, requests.Create(ctx, req))

	due := base.AddDate(0, 0, 30)
	capa := &model.CAPAModel{
		ID:               uuid.New().String(),
		RequestID:        req.ID,
		RootCause:        "Outdated interval",
		CorrectiveAction: "Update SOP",
		DueDate:          &due,
		Owner:            "bob@qa",
		Status:           model.CAPAStatusOpen,
		CreatedAt:        base,
	}
	require.NoError(t, repo.Create(ctx, capa))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "bob@qa", all[0].Owner)
	assert.Equal(t, model.CAPAStatusOpen, all[0].Status)
	require.NotNil(t, all[0].DueDate)
	assert.True(t, all[0].DueDate.Equal(due))

	byRequest, err := repo.FindByRequestID(ctx, req.ID)
	require.NoError(t, err)
	assert.Len(t, byRequest, 1)

	none, err := repo.FindByRequestID(ctx, uuid.New().String())
	require.NoError(t, err)
	assert.Empty(t, none)

	// 未知状态在写入前被拒绝
	err = repo.Create(ctx, &model.CAPAModel{
		ID:        uuid.New().String(),
		RequestID: req.ID,
		Owner:     "bob@qa",
		Status:    "Archived",
		CreatedAt: base,
	})
	assert.Error(t, err)
	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
