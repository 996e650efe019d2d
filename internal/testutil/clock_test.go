package testutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/calvinalkan/cipherviz/internal/testutil"
)

func Test_Scheduler_Fires_Due_Timers_In_Order(t *testing.T) {
	t.Parallel()

	s := testutil.NewScheduler()

	var got []string

	s.AfterFunc(3*time.Second, func() { got = append(got, "c") })
	s.AfterFunc(time.Second, func() {
		got = append(got, "a")
		s.AfterFunc(time.Second, func() { got = append(got, "b") })
	})
	s.AfterFunc(10*time.Second, func() { got = append(got, "late") })

	assert.Equal(t, 3, s.Advance(3*time.Second))
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 3*time.Second, s.Now())
	assert.Equal(t, 1, s.Pending())
}

func Test_Scheduler_Stopped_Timers_Do_Not_Fire(t *testing.T) {
	t.Parallel()

	s := testutil.NewScheduler()
	fired := false

	timer := s.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	assert.Equal(t, 0, s.Advance(time.Minute))
	assert.False(t, fired)
	assert.True(t, s.Last().Stopped())
	assert.Equal(t, time.Second, s.Last().Delay())
}
