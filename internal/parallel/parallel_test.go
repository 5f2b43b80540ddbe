package parallel

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestEach(t *testing.T) {
	cfg := Config{Workers: 4}

	n := 1000
	seen := make([]int32, n)
	err := Each(n, func(i int) error {
		atomic.AddInt32(&seen[i], 1)
		return nil
	}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, c := range seen {
		if c != 1 {
			t.Errorf("job %d ran %d times", i, c)
		}
	}
}

func TestEach_Sequential(t *testing.T) {
	var order []int
	err := Each(5, func(i int) error {
		order = append(order, i)
		return nil
	}, Sequential())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range order {
		if v != i {
			t.Errorf("order[%d] = %d", i, v)
		}
	}
}

func TestEach_Error(t *testing.T) {
	boom := errors.New("boom")

	for _, cfg := range []Config{Sequential(), {Workers: 3}} {
		var ran int64
		err := Each(100, func(i int) error {
			atomic.AddInt64(&ran, 1)
			if i == 2 {
				return boom
			}
			return nil
		}, cfg)
		if !errors.Is(err, boom) {
			t.Errorf("workers=%d: expected boom, got %v", cfg.Workers, err)
		}
		if cfg.Workers == 1 && ran != 3 {
			t.Errorf("sequential run stopped after %d jobs, want 3", ran)
		}
	}
}

func TestEach_Empty(t *testing.T) {
	err := Each(0, func(int) error {
		t.Error("job called")
		return nil
	}, DefaultConfig())
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
