package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadenza/internal/layout"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:6600", cfg.Address)
	assert.Equal(t, time.Second, cfg.UpdateInterval)
	assert.Equal(t, "halfblock", cfg.Artwork.Method)
	assert.NotEmpty(t, cfg.Tabs, "default tabs apply when none configured")
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
address: music.local:6600
password: hunter2
update_interval: 500ms
log_file: /tmp/cadenza.log
on_song_change: notify-send "$SONG_TITLE"
artwork:
  method: none
tabs:
  - name: Main
    border: full
    direction: horizontal
    children:
      - weight: 30
        pane: albumart
      - weight: 70
        direction: vertical
        children:
          - weight: 50
            pane: queue
          - weight: 50
            pane: logs
  - name: Search
    pane: search
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "music.local:6600", cfg.Address)
	assert.Equal(t, "hunter2", cfg.Password)
	assert.Equal(t, 500*time.Millisecond, cfg.UpdateInterval)
	assert.Equal(t, "none", cfg.Artwork.Method)

	require.Len(t, cfg.Tabs, 2)
	main := cfg.Tabs[0]
	assert.Equal(t, "Main", main.Name)
	assert.Equal(t, layout.BorderFull, main.Border)
	require.Len(t, main.Root.Children, 2)
	assert.Equal(t, layout.Horizontal, main.Root.Direction)
	assert.Equal(t, "albumart", main.Root.Children[0].Node.Pane)

	nested := main.Root.Children[1].Node
	assert.Equal(t, layout.Vertical, nested.Direction)
	assert.Equal(t, 50, nested.Children[0].Weight)
	assert.Equal(t, "queue", nested.Children[0].Node.Pane)

	search := cfg.Tabs[1]
	assert.Equal(t, layout.BorderNone, search.Border)
	assert.True(t, search.Root.IsLeaf())
}

func TestLoadRejectsBadWeightSum(t *testing.T) {
	path := writeConfig(t, `
tabs:
  - name: Broken
    direction: horizontal
    children:
      - weight: 60
        pane: queue
      - weight: 60
        pane: logs
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `tab "Broken"`, "error must name the tab")
}

func TestLoadRejectsUnknownPane(t *testing.T) {
	path := writeConfig(t, `
tabs:
  - name: Mystery
    pane: spectrogram
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `tab "Mystery"`)
	assert.Contains(t, err.Error(), "spectrogram")
}

func TestLoadRejectsDuplicateTabNames(t *testing.T) {
	path := writeConfig(t, `
tabs:
  - name: Queue
    pane: queue
  - name: Queue
    pane: logs
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate tab name "Queue"`)
}

func TestLoadRejectsUnknownBorder(t *testing.T) {
	path := writeConfig(t, `
tabs:
  - name: Fancy
    border: dotted
    pane: queue
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dotted")
}

func TestLoadRejectsEmptySplit(t *testing.T) {
	path := writeConfig(t, `
tabs:
  - name: Hollow
    direction: vertical
    children: []
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `tab "Hollow"`)
}

func TestLoadRejectsMissingWeight(t *testing.T) {
	path := writeConfig(t, `
tabs:
  - name: Weightless
    direction: vertical
    children:
      - pane: queue
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weight")
}

func TestDefaultTabsValidate(t *testing.T) {
	cfg := &Config{UpdateInterval: time.Second, Tabs: DefaultTabs()}
	require.NoError(t, cfg.validate())
}
