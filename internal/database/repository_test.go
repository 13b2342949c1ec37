package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/factors"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/resilience"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/simulation"
)

func newTestService(t *testing.T) (*HistoryService, *DB) {
	t.Helper()

	db, err := NewDB(context.Background(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewHistoryService(NewRepository(db)), db
}

func TestNewDB_CreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	db, err := NewDB(context.Background(), dir)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(filepath.Join(dir, FileName))
	assert.NoError(t, err)

	stats := db.GetPoolStats()
	assert.Equal(t, 4, stats["max_open_connections"])

	_, err = db.GetPreparedStatement("missing")
	assert.Error(t, err)
}

func TestHistory_RecordAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	scenario, err := factors.Preset("crisis_response")
	require.NoError(t, err)
	report := simulation.Run(scenario.Inputs)

	run, err := svc.Record(ctx, SourceAPI, scenario.Name, report)
	require.NoError(t, err)

	_, err = uuid.Parse(run.ID)
	require.NoError(t, err)
	assert.Equal(t, report.Majority.Decision, run.MajorityDecision)
	assert.Equal(t, report.PublicOpinion.MostLikely, run.PublicMostLikely)

	loaded, err := svc.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, loaded.ID)
	assert.Equal(t, SourceAPI, loaded.Source)
	assert.Equal(t, "crisis_response", loaded.Preset)
	assert.WithinDuration(t, run.CreatedAt, loaded.CreatedAt, time.Millisecond)
	if diff := cmp.Diff(report, loaded.Report); diff != "" {
		t.Errorf("report changed on round trip (-want +got):\n%s", diff)
	}
	assert.Equal(t, scenario.Inputs, loaded.Inputs)
}

func TestHistory_GetMissing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, uuid.New().String())
	assert.ErrorIs(t, err, ErrRunNotFound)

	_, err = svc.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestHistory_List(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var ids []string
	for _, s := range factors.Presets() {
		run, err := svc.Record(ctx, SourceCLI, s.Name, simulation.Run(s.Inputs))
		require.NoError(t, err)
		ids = append(ids, run.ID)
	}
	noPreset, err := svc.Record(ctx, SourceAPI, "", simulation.Run(factors.Default()))
	require.NoError(t, err)
	ids = append(ids, noPreset.ID)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(ids), count)

	all, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, len(ids))
	assert.Equal(t, noPreset.ID, all[0].ID, "newest first")
	assert.Empty(t, all[0].Preset)

	two, err := svc.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestHistory_BreakerOpensOnStoreFailure(t *testing.T) {
	svc, db := newTestService(t)
	svc.WithBreaker(resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: 1,
		RecoveryTimeout:  time.Minute,
	}))
	ctx := context.Background()
	report := simulation.Run(factors.Default())

	require.NoError(t, svc.Ping(ctx))
	_, err := svc.Record(ctx, SourceAPI, "", report)
	require.NoError(t, err)

	require.NoError(t, db.Close())

	_, err = svc.Record(ctx, SourceAPI, "", report)
	require.Error(t, err)
	assert.NotErrorIs(t, err, resilience.ErrCircuitOpen)

	_, err = svc.Record(ctx, SourceAPI, "", report)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Error(t, svc.Ping(ctx))
}
