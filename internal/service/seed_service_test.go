package service_test

import (
	"context"
	"testing"

	"github.com/mohamadacma/capflow-demo/internal/model"
	"github.com/mohamadacma/capflow-demo/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSeedService_SeedDemoUsers 测试演示用户只写入一次
func TestSeedService_SeedDemoUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewSeedService(db)

	n, err := svc.SeedDemoUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = svc.SeedDemoUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	roles := map[string]model.Role{}
	for _, u := range users {
		roles[u.Email] = u.Role
	}
	assert.Equal(t, model.RoleTech, roles["alice@lab"])
	assert.Equal(t, model.RoleQA, roles["bob@qa"])
}
