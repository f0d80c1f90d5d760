package debounce_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/debounce"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestKeyed_Trigger(t *testing.T) {
	t.Run("runs once after the delay", func(t *testing.T) {
		var called atomic.Int32
		d := debounce.New[string](20 * time.Millisecond)

		d.Trigger("email", func() { called.Add(1) })
		assert.True(t, d.Pending("email"))

		assert.Eventually(t, func() bool { return called.Load() == 1 }, time.Second, 5*time.Millisecond)
		assert.False(t, d.Pending("email"))
	})

	t.Run("last write wins for rapid calls", func(t *testing.T) {
		var called, last atomic.Int32
		d := debounce.New[string](50 * time.Millisecond)

		for i := int32(1); i <= 10; i++ {
			v := i
			d.Trigger("name", func() {
				last.Store(v)
				called.Add(1)
			})
			time.Sleep(2 * time.Millisecond)
		}

		assert.Eventually(t, func() bool { return called.Load() == 1 }, time.Second, 5*time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, int32(1), called.Load())
		assert.Equal(t, int32(10), last.Load())
		assert.Equal(t, uint64(10), d.Generation("name"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		var a, b atomic.Int32
		d := debounce.New[string](10 * time.Millisecond)

		d.Trigger("a", func() { a.Add(1) })
		d.Trigger("b", func() { b.Add(1) })

		assert.Eventually(t, func() bool { return a.Load() == 1 && b.Load() == 1 }, time.Second, 5*time.Millisecond)
	})

	t.Run("returns increasing generations", func(t *testing.T) {
		d := debounce.New[int](time.Hour)
		defer d.Stop()

		assert.Equal(t, uint64(1), d.Trigger(1, func() {}))
		assert.Equal(t, uint64(2), d.Trigger(1, func() {}))
		assert.Equal(t, uint64(1), d.Trigger(2, func() {}))
	})
}

func TestKeyed_Cancel(t *testing.T) {
	var called atomic.Int32
	d := debounce.New[string](20 * time.Millisecond)

	d.Trigger("email", func() { called.Add(1) })
	d.Cancel("email")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), called.Load())
	assert.False(t, d.Pending("email"))
}

func TestKeyed_Flush(t *testing.T) {
	t.Run("runs the pending call now", func(t *testing.T) {
		var called atomic.Int32
		d := debounce.New[string](time.Hour)

		d.Trigger("email", func() { called.Add(1) })
		assert.True(t, d.Flush("email"))
		assert.Equal(t, int32(1), called.Load())
		assert.False(t, d.Flush("email"))
	})

	t.Run("flush all", func(t *testing.T) {
		var called atomic.Int32
		d := debounce.New[string](time.Hour)

		d.Trigger("a", func() { called.Add(1) })
		d.Trigger("b", func() { called.Add(1) })
		d.FlushAll()

		assert.Equal(t, int32(2), called.Load())
		assert.False(t, d.Pending("a"))
	})
}

func TestKeyed_Stop(t *testing.T) {
	var called atomic.Int32
	d := debounce.New[string](10 * time.Millisecond)

	d.Trigger("a", func() { called.Add(1) })
	d.Stop()

	assert.Equal(t, uint64(0), d.Trigger("a", func() { called.Add(1) }))
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), called.Load())
}
