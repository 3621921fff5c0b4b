package persist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWriter_RunsInOrder(t *testing.T) {
	w := NewWriter(16, time.Second)

	var mu sync.Mutex
	var got []int
	for i := 0; i < 10; i++ {
		i := i
		assert.True(t, w.Submit(Job{Name: "append", Run: func(ctx context.Context) error {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			return nil
		}}))
	}
	w.Close()

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestWriter_FailuresDoNotStopQueue(t *testing.T) {
	w := NewWriter(4, time.Second)

	ran := false
	w.Submit(Job{Name: "fails", Run: func(ctx context.Context) error { return errors.New("db down") }})
	w.Submit(Job{Name: "panics", Run: func(ctx context.Context) error { panic("boom") }})
	w.Submit(Job{Name: "ok", Run: func(ctx context.Context) error { ran = true; return nil }})
	w.Close()

	assert.True(t, ran)
}

func TestWriter_DropsWhenFullOrClosed(t *testing.T) {
	w := NewWriter(1, time.Second)

	release := make(chan struct{})
	started := make(chan struct{})
	w.Submit(Job{Name: "block", Run: func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}})
	<-started

	assert.True(t, w.Submit(Job{Name: "queued", Run: func(ctx context.Context) error { return nil }}))
	assert.False(t, w.Submit(Job{Name: "overflow", Run: func(ctx context.Context) error { return nil }}))

	close(release)
	w.Close()
	assert.False(t, w.Submit(Job{Name: "late", Run: func(ctx context.Context) error { return nil }}))
	w.Close()
}
