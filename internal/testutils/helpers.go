package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteDefinition writes doc to a YAML file in a fresh temp dir and returns its path.
// It fails the test immediately on error.
func WriteDefinition(t *testing.T, doc string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "trajectory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644), "Failed to write definition")
	return path
}

// Entity is a minimal attributed entity for step tests.
type Entity struct {
	ID    string
	Attrs map[string]float64
}

// NewEntity creates an Entity with no attributes.
func NewEntity(id string) *Entity {
	return &Entity{ID: id, Attrs: make(map[string]float64)}
}

func (e *Entity) Name() string { return e.ID }

func (e *Entity) Attribute(key string) (float64, bool) {
	v, ok := e.Attrs[key]
	return v, ok
}

func (e *Entity) SetAttribute(key string, value float64) { e.Attrs[key] = value }
