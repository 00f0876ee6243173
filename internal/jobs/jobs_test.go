package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct{ calls int }

func (f *fakePurger) PurgeRefreshTokens(context.Context) (int64, error) {
	f.calls++
	return 3, nil
}

func TestMaintenanceSchedules(t *testing.T) {
	purger := &fakePurger{}
	jobs := Maintenance(nil, purger, 720*time.Hour)

	require.Len(t, jobs, 2)
	assert.Equal(t, "@daily", jobs[0].Schedule)
	assert.Equal(t, "@hourly", jobs[1].Schedule)

	n, err := jobs[1].Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, 1, purger.calls)

	s := NewScheduler(context.Background())
	for _, job := range jobs {
		assert.NoError(t, s.Add(job))
	}
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	s := NewScheduler(context.Background())
	err := s.Add(Job{Name: "broken", Schedule: "every now and then", Run: func(context.Context) (int64, error) { return 0, nil }})
	assert.Error(t, err)
}

func TestRunAppliesTimeout(t *testing.T) {
	s := NewScheduler(context.Background())
	var deadline bool
	s.run(Job{
		Name:    "deadline-check",
		Timeout: time.Second,
		Run: func(ctx context.Context) (int64, error) {
			_, deadline = ctx.Deadline()
			return 0, errors.New("ignored")
		},
	})
	assert.True(t, deadline)
}
