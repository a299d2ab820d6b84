package metrics_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mohamadacma/capflow-demo/internal/config"
	"github.com/mohamadacma/capflow-demo/internal/database"
	"github.com/mohamadacma/capflow-demo/internal/metrics"
	"github.com/mohamadacma/capflow-demo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scrape 读取当前指标输出
func scrape(t *testing.T) string {
	t.Helper()
	w := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

// fakeCounter 固定返回的状态统计
type fakeCounter struct {
	counts map[model.RequestStatus]int64
	err    error
}

func (f *fakeCounter) CountByStatus(ctx context.Context) (map[model.RequestStatus]int64, error) {
	return f.counts, f.err
}

// TestRecordDecision 测试决定指标
func TestRecordDecision(t *testing.T) {
	metrics.RecordDecision("Approved")
	metrics.RecordDecisionFailure("conflict")
	metrics.RecordCAPACreated()
	metrics.RecordAPIRequest(http.MethodPost, "/api/v1/requests/:id/decision", http.StatusConflict, 0.01)

	body := scrape(t)
	assert.Contains(t, body, `decisions_total{outcome="Approved"}`)
	assert.Contains(t, body, `decision_failures_total{reason="conflict"}`)
	assert.Contains(t, body, "capas_created_total")
	assert.Contains(t, body, `path="/api/v1/requests/:id/decision"`)
}

// TestCollector_CollectOnce 测试收集请求状态分布
func TestCollector_CollectOnce(t *testing.T) {
	db, err := database.Connect(config.DatabaseConfig{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	defer database.Close(db)

	counter := &fakeCounter{counts: map[model.RequestStatus]int64{
		model.RequestStatusPending:  2,
		model.RequestStatusApproved: 1,
	}}
	collector := metrics.NewCollector(db, counter, time.Minute, nil)
	collector.CollectOnce(context.Background())

	body := scrape(t)
	assert.Contains(t, body, `requests_by_status{status="Pending"} 2`)
	assert.Contains(t, body, `requests_by_status{status="Approved"} 1`)
	assert.Contains(t, body, `requests_by_status{status="Rejected"} 0`)
	assert.Contains(t, body, "database_connections_max 1")
}

// TestCollector_StartStop 测试收集器启动和停止
func TestCollector_StartStop(t *testing.T) {
	counter := &fakeCounter{err: errors.New("database is locked")}
	collector := metrics.NewCollector(nil, counter, 10*time.Millisecond, nil)

	collector.Start()
	time.Sleep(30 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		collector.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("collector did not stop")
	}
}

// TestUpdateDatabaseConnections_NilDB 测试空连接
func TestUpdateDatabaseConnections_NilDB(t *testing.T) {
	assert.Error(t, metrics.UpdateDatabaseConnections(nil))
}
