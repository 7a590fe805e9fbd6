package goroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestManagerCollectsErrors(t *testing.T) {
	// Arrange
	m := NewManager(4)
	var ran atomic.Int32
	boom := errors.New("boom")

	// Act
	for i := range 3 {
		m.Go(context.Background(), func(context.Context) error {
			ran.Add(1)
			if i == 1 {
				return boom
			}
			return nil
		})
	}
	err := m.Wait()

	// Assert
	if ran.Load() != 3 {
		t.Fatalf("ran = %d", ran.Load())
	}
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestManagerRecoversPanic(t *testing.T) {
	// Arrange
	m := NewManager(1)

	// Act
	m.Go(context.Background(), func(context.Context) error { panic("kaboom") })

	// Assert
	if err := m.Wait(); err != nil {
		t.Fatalf("err = %v", err)
	}
}

func TestManagerClosedSkips(t *testing.T) {
	// Arrange
	m := NewManager(1)
	_ = m.Wait()

	// Act
	ok := m.Go(context.Background(), func(context.Context) error { return nil })

	// Assert
	if ok {
		t.Fatal("expected task to be skipped")
	}
}
