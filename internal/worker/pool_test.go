package worker

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_Map_SubmissionOrder(t *testing.T) {
	pool := NewPool(4)

	tasks := make([]Task, 8)
	for i := range tasks {
		i := i
		tasks[i] = func(ctx context.Context) (string, error) {
			// Later tasks finish first to prove ordering is by submission,
			// not completion.
			time.Sleep(time.Duration(8-i) * time.Millisecond)
			return fmt.Sprintf("task-%d", i), nil
		}
	}

	results := pool.Map(context.Background(), tasks)

	want := make([]string, 8)
	for i := range want {
		want[i] = fmt.Sprintf("task-%d", i)
	}
	if !reflect.DeepEqual(results, want) {
		t.Errorf("Map() = %v, want submission order %v", results, want)
	}
}

func TestPool_Map_FailedTaskDropped(t *testing.T) {
	pool := NewPool(2)

	tasks := []Task{
		func(ctx context.Context) (string, error) { return "first", nil },
		func(ctx context.Context) (string, error) { return "", errors.New("boom") },
		func(ctx context.Context) (string, error) { return "third", nil },
	}

	results := pool.Map(context.Background(), tasks)

	want := []string{"first", "third"}
	if !reflect.DeepEqual(results, want) {
		t.Errorf("Map() = %v, want %v (failure dropped, siblings kept)", results, want)
	}
}

func TestPool_Map_BoundsConcurrency(t *testing.T) {
	const workers = 3
	pool := NewPool(workers)

	var running, peak int32
	var mu sync.Mutex

	tasks := make([]Task, 12)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) (string, error) {
			n := atomic.AddInt32(&running, 1)
			mu.Lock()
			if n > peak {
				peak = n
			}
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return "ok", nil
		}
	}

	pool.Map(context.Background(), tasks)

	if peak > workers {
		t.Errorf("peak concurrency = %d, want at most %d", peak, workers)
	}
}

func TestPool_Map_Empty(t *testing.T) {
	pool := NewPool(0)
	if pool.workers != DefaultWorkers {
		t.Errorf("NewPool(0) workers = %d, want default %d", pool.workers, DefaultWorkers)
	}
	if got := pool.Map(context.Background(), nil); got != nil {
		t.Errorf("Map(nil) = %v, want nil", got)
	}
}
