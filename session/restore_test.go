package session

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workdeck/geometry"
	"workdeck/scrollback"
)

func TestBuildPlanNilSnapshot(t *testing.T) {
	if plan := BuildPlan(nil, nil, nil); plan != nil {
		t.Fatalf("expected nil plan, got %+v", plan)
	}
	if plan := BuildPlan(&Snapshot{Version: CurrentVersion}, nil, nil); plan != nil {
		t.Fatalf("expected nil plan for zero windows, got %+v", plan)
	}
}

func TestBuildPlanResolvesFrames(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	snap := sampleSnapshot()
	displays := []geometry.Display{
		{ID: 2, Frame: geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, Visible: geometry.Rect{X: 0, Y: 25, Width: 1920, Height: 1055}},
	}

	plan := BuildPlan(snap, displays, nil)
	require.NotNil(t, plan)
	require.Len(t, plan.Windows, 1)

	frame := plan.Windows[0].Frame
	require.NotNil(t, frame)
	assert.Equal(t, 1200.0, frame.Width)
	assert.Equal(t, 900.0, frame.Height)
	assert.True(t, frame.Intersects(displays[0].Visible))
}

func TestBuildPlanDefaultPlacementWithoutFrame(t *testing.T) {
	snap := &Snapshot{
		Version: CurrentVersion,
		Windows: []Window{{}},
	}

	plan := BuildPlan(snap, nil, nil)
	require.NotNil(t, plan)
	assert.Nil(t, plan.Windows[0].Frame, "caller falls back to default placement")
}

func TestBuildPlanReplayEnvForTerminals(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	snap := &Snapshot{
		Version: CurrentVersion,
		Windows: []Window{{
			Tabs: TabManager{Workspaces: []Workspace{{
				Panels: []Panel{
					{ID: "t1", Kind: PanelTerminal, Terminal: &TerminalState{Scrollback: "echo hi\nhi\n"}},
					{ID: "t2", Kind: PanelTerminal, Terminal: &TerminalState{Scrollback: "   \n"}},
					{ID: "b1", Kind: PanelBrowser, Browser: &BrowserState{URL: "https://example.com"}},
				},
			}}},
		}},
	}

	plan := BuildPlan(snap, nil, nil)
	require.NotNil(t, plan)

	replay := plan.Windows[0].ReplayEnv
	require.Contains(t, replay, "t1")
	assert.NotContains(t, replay, "t2", "whitespace-only scrollback gets no replay")
	assert.NotContains(t, replay, "b1", "browser panels get no replay")

	path := replay["t1"][scrollback.ReplayFileEnv]
	require.NotEmpty(t, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "echo hi\nhi\n", string(data))
}
