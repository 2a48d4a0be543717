package memdoc

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irebix/LayerVisSync/internal/domain"
	"github.com/irebix/LayerVisSync/internal/domain/layer"
)

func TestDecodeFixture_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "duplicate id", input: "layers:\n  - {id: 1, name: a}\n  - {id: 1, name: b}\n"},
		{name: "missing name", input: "layers:\n  - {id: 1}\n"},
		{name: "negative id", input: "layers:\n  - {id: -3, name: a}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeFixture(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestDecodeFixture_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := DecodeFixture(strings.NewReader("layers:\n  - {id: 1, name: a, opacity: 3}\n"))
	assert.Error(t, err)
}

func TestDecodeFixture_Empty(t *testing.T) {
	t.Parallel()

	f, err := DecodeFixture(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Layers)
}

func TestFromFixture_AssignsFreeIDs(t *testing.T) {
	t.Parallel()

	f, err := DecodeFixture(strings.NewReader("layers:\n  - {name: a}\n  - {id: 1, name: b}\n"))
	require.NoError(t, err)
	d := FromFixture(f)

	tree, err := d.Tree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, layer.ID(2), tree[0].ID, "generated id must skip reserved ids")
	assert.Equal(t, layer.ID(1), tree[1].ID)
}

func TestApply_KeepsHandles(t *testing.T) {
	t.Parallel()

	d := newTestDoc(t)
	eyes, _ := d.Lookup(3)

	edited := `
layers:
  - id: 1
    name: Background
  - id: 3
    name: Eyes moved
    visible: false
  - name: Hat
`
	f, err := DecodeFixture(strings.NewReader(edited))
	require.NoError(t, err)
	require.NoError(t, d.Apply(context.Background(), f))

	same, ok := d.Lookup(3)
	require.True(t, ok)
	assert.Same(t, eyes.(*node), same.(*node))
	assert.Equal(t, "Eyes moved", eyes.Name())
	assert.False(t, eyes.Visible())
	assert.Nil(t, eyes.Parent())

	for _, gone := range []layer.ID{2, 4} {
		_, ok := d.Lookup(gone)
		assert.False(t, ok, "layer %d should be removed", gone)
	}

	tree, err := d.Tree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 3)
	assert.Equal(t, "Hat", tree[2].Name)
	assert.Equal(t, layer.ID(5), tree[2].ID)
}

func TestWatch_AppliesFileEdits(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testFixture), 0o600))

	f, err := ReadFixture(path)
	require.NoError(t, err)
	d := FromFixture(f)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Watch(ctx, path) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	edited := strings.Replace(testFixture, "name: Background", "name: Paper", 1)
	require.Eventually(t, func() bool {
		// Rewrite until the watcher is registered and picks it up.
		_ = os.WriteFile(path, []byte(edited), 0o600)
		h, ok := d.Lookup(1)
		return ok && h.Name() == "Paper"
	}, 5*time.Second, 50*time.Millisecond)
}
