package uid

import (
	"testing"

	"github.com/google/uuid"
)

func TestSnowflakeGenerateIsUnique(t *testing.T) {
	// Arrange
	sf, err := NewSnowflake(1)
	if err != nil {
		t.Fatalf("NewSnowflake: %v", err)
	}
	seen := make(map[int64]struct{}, 1000)

	// Act & Assert
	for range 1000 {
		id := sf.Generate()
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = struct{}{}
	}
}

func TestNewSnowflakeRejectsBadNode(t *testing.T) {
	// Act
	_, err := NewSnowflake(4096)

	// Assert
	if err == nil {
		t.Fatal("expected error for out of range node")
	}
}

func TestUUIDGenerate(t *testing.T) {
	// Act
	id, err := uuid.Parse(NewUUID().Generate())

	// Assert
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id.Version() != 7 {
		t.Fatalf("version = %d", id.Version())
	}
}
