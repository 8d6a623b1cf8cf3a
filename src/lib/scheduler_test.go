package lib

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCronJob(t *testing.T) {
	sched, err := NewScheduler()
	require.NoError(t, err)
	defer sched.Shutdown()

	var runs atomic.Int32
	id, err := CreateCronJob(sched, "tick", 10*time.Millisecond, func(ctx context.Context) {
		runs.Add(1)
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Len(t, sched.Jobs(), 1)

	sched.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
}
