package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workdeck/geometry"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		Version:   CurrentVersion,
		CreatedAt: time.Now().UTC(),
		Windows: []Window{
			{
				Frame: &geometry.Rect{X: 100, Y: 50, Width: 1200, Height: 900},
				Display: &geometry.Display{
					ID:      2,
					Frame:   geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
					Visible: geometry.Rect{X: 0, Y: 25, Width: 1920, Height: 1055},
				},
				Sidebar: Sidebar{Visible: true, Mode: SidebarGit, Width: floatPtr(240)},
				Tabs: TabManager{
					SelectedIndex: intPtr(1),
					Workspaces: []Workspace{
						{
							Title:        "api",
							WorkingDir:   "/home/dev/api",
							Layout:       sampleTree(),
							FocusedPanel: "p2",
							GitBranch:    "main",
							Status:       json.RawMessage(`"idle"`),
							Panels: []Panel{
								{
									ID:   "p1",
									Kind: PanelTerminal,
									Terminal: &TerminalState{
										WorkingDir: "/home/dev/api",
										Scrollback: "make test\n\x1b[32mok\x1b[0m\n",
									},
									Ports: []int{8080},
								},
								{
									ID:   "p2",
									Kind: PanelBrowser,
									Browser: &BrowserState{
										URL:         "http://localhost:8080/docs",
										Zoom:        1.25,
										BackHistory: []string{"http://localhost:8080"},
									},
								},
								{ID: "p3", Kind: PanelTerminal, Terminal: &TerminalState{}},
								{ID: "p4", Kind: PanelTerminal, Pinned: true, Terminal: &TerminalState{}},
							},
						},
						{
							Title:      "notes",
							WorkingDir: "/home/dev",
							Panels:     []Panel{{ID: "n1", Kind: PanelTerminal, Terminal: &TerminalState{}}},
							Layout:     &LayoutNode{Pane: &PaneNode{Panels: []string{"n1"}}},
						},
					},
				},
			},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), "com.workdeck.app")
	snap := sampleSnapshot()

	require.NoError(t, store.Save(snap))

	loaded := store.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, snap, loaded)
}

func TestSaveRefusesEmptySnapshot(t *testing.T) {
	store := NewStore(t.TempDir(), "com.workdeck.app")
	require.Error(t, store.Save(nil))
	require.Error(t, store.Save(&Snapshot{Version: CurrentVersion}))
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, "com.workdeck.app")
	require.NoError(t, store.Save(sampleSnapshot()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(t.TempDir(), "com.workdeck.app")
	if snap := store.Load(); snap != nil {
		t.Fatalf("expected nil for missing file, got %+v", snap)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, "com.workdeck.app")
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	if snap := store.Load(); snap != nil {
		t.Fatalf("expected nil for malformed file, got %+v", snap)
	}
}

func TestLoadRejectsVersionMismatch(t *testing.T) {
	store := NewStore(t.TempDir(), "com.workdeck.app")
	snap := sampleSnapshot()
	snap.Version = CurrentVersion + 1
	require.NoError(t, store.Save(snap))

	if got := store.Load(); got != nil {
		t.Fatalf("expected hard rejection of version %d, got %+v", snap.Version, got)
	}
}

func TestLoadRejectsEmptyWindows(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, "com.workdeck.app")
	data, err := json.Marshal(Snapshot{Version: CurrentVersion, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(), data, 0o644))

	if snap := store.Load(); snap != nil {
		t.Fatalf("expected nil for zero windows, got %+v", snap)
	}
}

func TestLoadCleansStructuralDrift(t *testing.T) {
	store := NewStore(t.TempDir(), "com.workdeck.app")
	snap := sampleSnapshot()
	ws := &snap.Windows[0].Tabs.Workspaces[0]
	ws.Layout.Split.First.Pane.Panels = append(ws.Layout.Split.First.Pane.Panels, "ghost")
	ws.Layout.Split.First.Pane.Selected = "ghost"
	ws.FocusedPanel = "ghost"
	snap.Windows[0].Tabs.SelectedIndex = intPtr(9)
	require.NoError(t, store.Save(snap))

	loaded := store.Load()
	require.NotNil(t, loaded)

	got := loaded.Windows[0].Tabs.Workspaces[0]
	assert.NotContains(t, got.Layout.Split.First.Pane.Panels, "ghost")
	assert.Empty(t, got.Layout.Split.First.Pane.Selected)
	assert.Empty(t, got.FocusedPanel)
	assert.Nil(t, loaded.Windows[0].Tabs.SelectedIndex, "stale selected index is dropped, not trapped on")
}

func TestPathSanitization(t *testing.T) {
	store := NewStore("/data", "com.example/unsafe id")
	path := store.Path()

	base := filepath.Base(path)
	assert.Equal(t, "session-com.example_unsafe_id.json", base)
	assert.NotContains(t, base, "/")
	assert.NotContains(t, base, " ")
}

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"com.workdeck.app", "com.workdeck.app"},
		{"com.example/unsafe id", "com.example_unsafe_id"},
		{"weird:chars*here?", "weird_chars_here_"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeID(tt.in); got != tt.want {
			t.Fatalf("SanitizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClear(t *testing.T) {
	store := NewStore(t.TempDir(), "com.workdeck.app")
	require.NoError(t, store.Save(sampleSnapshot()))
	require.NoError(t, store.Clear())
	assert.Nil(t, store.Load())

	// Clearing again is not an error.
	require.NoError(t, store.Clear())
}
