package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantlab/valuescreen/pkg/logger"
)

type stubJob struct {
	name     string
	schedule string
	runs     atomic.Int32
	err      error
}

func (j *stubJob) Name() string     { return j.name }
func (j *stubJob) Schedule() string { return j.schedule }

func (j *stubJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func newStub(name string) *stubJob {
	return &stubJob{name: name, schedule: "0 0 6 * * *"}
}

func TestAddJob(t *testing.T) {
	s := New(logger.Nop())

	require.NoError(t, s.AddJob(newStub("a")))
	require.NoError(t, s.AddJob(newStub("b")))
	assert.ElementsMatch(t, []string{"a", "b"}, s.Jobs())

	// duplicate name
	assert.Error(t, s.AddJob(newStub("a")))

	// invalid cron expression
	bad := &stubJob{name: "c", schedule: "not a schedule"}
	assert.Error(t, s.AddJob(bad))
}

func TestRunNow(t *testing.T) {
	s := New(logger.Nop())
	job := newStub("warm")
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunNow("warm"))
	assert.Equal(t, int32(1), job.runs.Load())

	history, err := s.History("warm")
	require.NoError(t, err)
	last, ok := history.Last()
	require.True(t, ok)
	assert.True(t, last.Success)
	assert.Empty(t, last.Error)

	assert.Error(t, s.RunNow("missing"))
}

func TestRunNow_RetriesThenRecords(t *testing.T) {
	s := New(logger.Nop()).WithRetry(2, 0)
	job := newStub("flaky")
	job.err = errors.New("boom")
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunNow("flaky"))

	// initial attempt plus two retries
	assert.Equal(t, int32(3), job.runs.Load())

	history, err := s.History("flaky")
	require.NoError(t, err)
	last, ok := history.Last()
	require.True(t, ok)
	assert.False(t, last.Success)
	assert.Equal(t, "boom", last.Error)
	assert.Equal(t, 0.0, history.SuccessRate())
}

func TestHistory_Unknown(t *testing.T) {
	s := New(logger.Nop())
	_, err := s.History("nope")
	assert.Error(t, err)
}

func TestJobHistory_Limit(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < historyLimit+20; i++ {
		h.AddResult(JobResult{Success: i%2 == 0, StartTime: time.Now()})
	}
	assert.Len(t, h.Results, historyLimit)
	assert.InDelta(t, 0.5, h.SuccessRate(), 0.01)
}

func TestJobHistory_Empty(t *testing.T) {
	h := &JobHistory{}
	assert.Equal(t, 0.0, h.SuccessRate())
	_, ok := h.Last()
	assert.False(t, ok)
}
