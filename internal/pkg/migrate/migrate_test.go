package migrate

import (
	"errors"
	"strings"
	"testing"

	"github.com/shandysiswandi/gopos/internal/migrations"
)

func TestUpRequiresDSN(t *testing.T) {
	// Act
	err := Up(migrations.FS, "")

	// Assert
	if !errors.Is(err, ErrDSNRequired) {
		t.Fatalf("err = %v", err)
	}
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	// Arrange
	entries, err := migrations.FS.ReadDir(".")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	// Act
	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}

	// Assert
	if ups == 0 || ups != downs {
		t.Fatalf("ups = %d downs = %d", ups, downs)
	}
}
