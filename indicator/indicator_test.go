package indicator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/pollio/clock"
	"github.com/sweeney/pollio/hw"
)

func poll(t *testing.T, ind *Indicator, now clock.Instant) {
	t.Helper()
	require.NoError(t, ind.Poll(now))
}

func TestManualLevelWithoutEffect(t *testing.T) {
	out := hw.NewFakeOutput(false)
	ind := New(out)

	poll(t, ind, 0)
	assert.False(t, out.Level)

	ind.SetOn()
	assert.False(t, out.Level, "level only changes on poll")
	poll(t, ind, 10)
	assert.True(t, out.Level)

	ind.Toggle()
	poll(t, ind, 20)
	assert.False(t, out.Level)
	assert.False(t, ind.IsOn())

	ind.Toggle()
	ind.SetOff()
	poll(t, ind, 30)
	assert.False(t, out.Level)
}

func TestPulse(t *testing.T) {
	const d = 100 * time.Millisecond

	for _, t0 := range []clock.Instant{0, 7, 123456} {
		out := hw.NewFakeOutput(false)
		ind := New(out)
		ind.SetEffect(NewEffect(Pulse(d)))

		poll(t, ind, t0)
		assert.True(t, out.Level, "on at install poll, t0=%d", t0)

		poll(t, ind, t0.Add(d-time.Millisecond))
		assert.True(t, out.Level, "still on at t0+d-1, t0=%d", t0)

		poll(t, ind, t0.Add(d+time.Millisecond))
		assert.False(t, out.Level, "off at t0+d+1, t0=%d", t0)
		_, active := ind.Effect()
		assert.False(t, active, "pulse clears itself")

		poll(t, ind, t0.Add(10*d))
		assert.False(t, out.Level, "stays off until a new effect, t0=%d", t0)
	}
}

func TestPulseOverridesManualLevel(t *testing.T) {
	out := hw.NewFakeOutput(false)
	ind := New(out)
	ind.SetOn()
	poll(t, ind, 0)

	ind.SetEffect(NewEffect(Pulse(50 * time.Millisecond)))
	poll(t, ind, 10)
	ind.SetOff()
	poll(t, ind, 20)
	assert.True(t, out.Level, "manual level is ignored while an effect runs")

	poll(t, ind, 61)
	assert.False(t, out.Level)
	assert.False(t, ind.IsOn(), "clearing an effect forces the indicator off")
}

func TestBlinkScenario(t *testing.T) {
	out := hw.NewFakeOutput(false)
	ind := New(out)
	ind.SetEffect(NewEffect(BlinkEvery(100 * time.Millisecond)))

	steps := []struct {
		now  clock.Instant
		want bool
	}{
		{0, false},
		{50, false},
		{100, true},
		{150, true},
		{200, false},
	}
	for _, s := range steps {
		poll(t, ind, s.now)
		assert.Equal(t, s.want, out.Level, "t=%d", s.now)
	}
}

func TestBlinkToggleCount(t *testing.T) {
	const period = 40 * time.Millisecond

	for _, k := range []int{1, 3, 10} {
		for _, step := range []time.Duration{time.Millisecond, 5 * time.Millisecond, 8 * time.Millisecond, 20 * time.Millisecond} {
			out := hw.NewFakeOutput(false)
			ind := New(out)
			ind.SetEffect(NewEffect(BlinkEvery(period)))

			end := clock.Instant(0).Add(time.Duration(k) * period)
			for now := clock.Instant(0); now <= end; now = now.Add(step) {
				poll(t, ind, now)
			}

			got := out.Toggles(false)
			assert.InDelta(t, k, got, 1, "k=%d step=%s toggles=%d", k, step, got)
		}
	}
}

func TestTotalDurationStopsEffect(t *testing.T) {
	const total = 250 * time.Millisecond

	kinds := []Kind{
		BlinkEvery(100 * time.Millisecond),
		Pulse(time.Second),
	}
	for _, kind := range kinds {
		out := hw.NewFakeOutput(false)
		ind := New(out)
		fx := NewEffect(kind)
		fx.SetTotalDuration(total)
		ind.SetEffect(fx)

		start := clock.Instant(1000)
		for now := start; now <= start.Add(total); now = now.Add(10 * time.Millisecond) {
			poll(t, ind, now)
		}
		_, active := ind.Effect()
		require.True(t, active, "%s still running at t0+D", kind)

		poll(t, ind, start.Add(total+time.Millisecond))
		assert.False(t, out.Level, "%s forced off at t0+D+1", kind)
		_, active = ind.Effect()
		assert.False(t, active, "%s cleared at t0+D+1", kind)
	}
}

func TestExtendCurrentEffect(t *testing.T) {
	out := hw.NewFakeOutput(false)
	ind := New(out)

	ind.ExtendCurrentEffect(time.Second)
	_, active := ind.Effect()
	assert.False(t, active, "extend without an effect is a no-op")

	fx := NewEffect(BlinkEvery(50 * time.Millisecond))
	fx.SetTotalDuration(100 * time.Millisecond)
	ind.SetEffect(fx)
	poll(t, ind, 0)

	ind.ExtendCurrentEffect(300 * time.Millisecond)
	poll(t, ind, 200)
	_, active = ind.Effect()
	assert.True(t, active, "extended effect survives its old limit")

	got, _ := ind.Effect()
	total, ok := got.TotalDuration()
	require.True(t, ok)
	assert.Equal(t, 300*time.Millisecond, total)

	poll(t, ind, 301)
	_, active = ind.Effect()
	assert.False(t, active)
}

func TestSetEffectReplacesRunningEffect(t *testing.T) {
	out := hw.NewFakeOutput(false)
	ind := New(out)

	ind.SetEffect(NewEffect(BlinkEvery(10 * time.Millisecond)))
	poll(t, ind, 0)
	poll(t, ind, 10)
	require.True(t, out.Level)

	ind.SetEffect(NewEffect(Pulse(100 * time.Millisecond)))
	got, _ := ind.Effect()
	assert.Equal(t, KindPulse, got.Kind().Type)
	assert.False(t, got.HasStarted(), "replacement starts fresh")

	poll(t, ind, 20)
	poll(t, ind, 30)
	assert.True(t, out.Level, "old blink no longer toggles the line")
}

func TestClearEffect(t *testing.T) {
	out := hw.NewFakeOutput(false)
	ind := New(out)
	ind.SetOn()
	ind.SetEffect(NewEffect(BlinkEvery(10 * time.Millisecond)))
	poll(t, ind, 0)

	ind.ClearEffect()
	poll(t, ind, 5)
	assert.False(t, out.Level)
	assert.False(t, ind.IsOn())
}

func TestPollDriveFault(t *testing.T) {
	out := hw.NewFakeOutput(false)
	ind := New(out)
	ind.SetEffect(NewEffect(Pulse(100 * time.Millisecond)))

	out.DriveError = errors.New("EIO")
	err := ind.Poll(0)

	var fault *hw.OutputFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "drive", fault.Op)
	got, _ := ind.Effect()
	assert.False(t, got.HasStarted(), "pulse is not started until the line is on")

	out.DriveError = nil
	poll(t, ind, 5)
	assert.True(t, out.Level)
	got, _ = ind.Effect()
	at, _ := got.StartedAt()
	assert.Equal(t, clock.Instant(5), at)
}

func TestPollReadBackFault(t *testing.T) {
	out := hw.NewFakeOutput(false)
	ind := New(out)
	ind.SetEffect(NewEffect(BlinkEvery(10 * time.Millisecond)))
	poll(t, ind, 0)

	out.ReadError = errors.New("EIO")
	err := ind.Poll(20)

	var fault *hw.OutputFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "read back", fault.Op)
}

func TestPollNonMonotonicClock(t *testing.T) {
	out := hw.NewFakeOutput(false)
	ind := New(out)
	fx := NewEffect(Pulse(100 * time.Millisecond))
	fx.SetTotalDuration(50 * time.Millisecond)
	ind.SetEffect(fx)
	poll(t, ind, 1000)

	// A timestamp before the start yields no elapsed time, so nothing expires.
	poll(t, ind, 10)
	assert.True(t, out.Level)
	_, active := ind.Effect()
	assert.True(t, active)
}
