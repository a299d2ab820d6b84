package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mohamadacma/capflow-demo/internal/config"
	"github.com/mohamadacma/capflow-demo/internal/database"
	"github.com/mohamadacma/capflow-demo/internal/model"
	"github.com/mohamadacma/capflow-demo/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB 创建测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(config.DatabaseConfig{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// newRequest 构建待审批请求
func newRequest(title string, createdAt time.Time) *model.RequestModel {
	return &model.RequestModel{
		ID:          uuid.New().String(),
		Title:       title,
		Type:        model.DefaultRequestType,
		RequestedBy: "alice@lab",
		Status:      model.RequestStatusPending,
		CreatedAt:   createdAt,
	}
}

// TestRequestRepository_CreateAndFind 测试保存和查找
func TestRequestRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRequestRepository(db)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	req := newRequest("Update SOP-12", base)
	require.NoError(t, repo.Create(ctx, req))

	found, err := repo.FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, req.Title, found.Title)
	assert.Equal(t, model.RequestStatusPending, found.Status)
	assert.Nil(t, found.ApprovedAt)
	assert.Empty(t, found.Actions)

	_, err = repo.FindByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// TestRequestRepository_PreloadsActionsInOrder 测试审批历史按时间排序
func TestRequestRepository_PreloadsActionsInOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRequestRepository(db)
	actions := repository.NewApprovalActionRepository(db)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	req := newRequest("Update SOP-12", base)
	require.NoError(t, repo.Create(ctx, req))

	later := &model.ApprovalActionModel{RequestID: req.ID, Actor: "carol@qa", Outcome: model.OutcomeRejected, At: base.Add(2 * time.Hour)}
	earlier := &model.ApprovalActionModel{RequestID: req.ID, Actor: "bob@qa", Outcome: model.OutcomeApproved, At: base.Add(time.Hour)}
	require.NoError(t, actions.Create(ctx, later))
	require.NoError(t, actions.Create(ctx, earlier))

	found, err := repo.FindByID(ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, found.Actions, 2)
	assert.Equal(t, "bob@qa", found.Actions[0].Actor)
	assert.Equal(t, "carol@qa", found.Actions[1].Actor)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Actions, 2)
}

// TestRequestRepository_TransitionStatus 测试按当前状态条件更新
func TestRequestRepository_TransitionStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRequestRepository(db)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	req := newRequest("Update SOP-12", base)
	require.NoError(t, repo.Create(ctx, req))

	approvedAt := base.Add(3 * time.Hour)
	affected, err := repo.TransitionStatus(ctx, req.ID, model.OpenStatuses, model.RequestStatusApproved, &approvedAt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// 已是终态,不再更新
	affected, err = repo.TransitionStatus(ctx, req.ID, model.OpenStatuses, model.RequestStatusRejected, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	found, err := repo.FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusApproved, found.Status)
	require.NotNil(t, found.ApprovedAt)
	assert.True(t, found.ApprovedAt.Equal(approvedAt))
}

// TestRequestRepository_Statistics 测试统计查询
func TestRequestRepository_Statistics(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRequestRepository(db)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	approved := newRequest("Update SOP-12", base)
	pending := newRequest("Update SOP-13", base)
	require.NoError(t, repo.Create(ctx, approved))
	require.NoError(t, repo.Create(ctx, pending))

	approvedAt := base.Add(2 * time.Hour)
	_, err := repo.TransitionStatus(ctx, approved.ID, model.OpenStatuses, model.RequestStatusApproved, &approvedAt)
	require.NoError(t, err)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[model.RequestStatusApproved])
	assert.Equal(t, int64(1), counts[model.RequestStatusPending])

	spans, err := repo.FindApprovalSpans(ctx)
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, 2.0, spans[0].ApprovedAt.Sub(spans[0].CreatedAt).Hours())

	byStatus, err := repo.FindByStatus(ctx, model.RequestStatusPending)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, pending.ID, byStatus[0].ID)
}
