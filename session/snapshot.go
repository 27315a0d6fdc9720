// Package session implements the workdeck session snapshot engine: the
// versioned data model for windows, tabs, layouts and panels, durable
// storage with strict version gating, checkpoint assembly, restore planning,
// and the launch-time restore policy.
package session

import (
	"encoding/json"
	"time"

	"workdeck/geometry"
	"workdeck/gitinfo"
)

// CurrentVersion is the snapshot schema version. Records with any other
// version are discarded on load; schema evolution bumps the version instead
// of migrating old data.
const CurrentVersion = 3

// Snapshot is the complete durable record of every window at one point in
// time. A snapshot with zero windows is treated as absent and is never
// saved or restored.
type Snapshot struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Windows   []Window  `json:"windows"`
}

// Window captures one application window: its placement at save time and
// the tab and panel content inside it.
type Window struct {
	// Frame is the window's screen frame at save time, if known.
	Frame *geometry.Rect `json:"frame,omitempty"`
	// Display records which display the window was on at save time,
	// including that display's own geometry, so restore can remap the
	// window when displays have moved or swapped.
	Display *geometry.Display `json:"display,omitempty"`
	Tabs    TabManager        `json:"tabs"`
	Sidebar Sidebar           `json:"sidebar"`
}

// TabManager holds a window's ordered workspaces and which one was selected.
type TabManager struct {
	// SelectedIndex may be stale relative to Workspaces; consumers clamp
	// or ignore it rather than trusting it.
	SelectedIndex *int        `json:"selected_index,omitempty"`
	Workspaces    []Workspace `json:"workspaces"`
}

// Workspace is one tab's worth of state: titles, layout tree, panels and
// working directory.
type Workspace struct {
	Title        string      `json:"title"`
	CustomTitle  string      `json:"custom_title,omitempty"`
	Color        string      `json:"color,omitempty"`
	Pinned       bool        `json:"pinned,omitempty"`
	WorkingDir   string      `json:"working_dir"`
	FocusedPanel string      `json:"focused_panel,omitempty"`
	Layout       *LayoutNode `json:"layout,omitempty"`
	Panels       []Panel     `json:"panels"`

	// GitBranch is filled from the working directory at checkpoint time
	// when the host did not supply one.
	GitBranch string `json:"git_branch,omitempty"`

	// Status, ActivityLog and Progress belong to the host application and
	// round-trip through the snapshot untouched.
	Status      json.RawMessage `json:"status,omitempty"`
	ActivityLog json.RawMessage `json:"activity_log,omitempty"`
	Progress    json.RawMessage `json:"progress,omitempty"`
}

// SidebarMode selects what the sidebar shows.
type SidebarMode string

const (
	SidebarFiles SidebarMode = "files"
	SidebarGit   SidebarMode = "git"
	SidebarLog   SidebarMode = "log"
)

// Sidebar is the per-window sidebar state.
type Sidebar struct {
	Visible bool        `json:"visible"`
	Mode    SidebarMode `json:"mode"`
	Width   *float64    `json:"width,omitempty"`
}

// PanelKind discriminates panel payloads.
type PanelKind string

const (
	PanelTerminal PanelKind = "terminal"
	PanelBrowser  PanelKind = "browser"
)

// Panel is a single content surface with an id stable across save and
// restore. Only the payload matching Kind is meaningful; consumers must not
// read the other one.
type Panel struct {
	ID          string           `json:"id"`
	Kind        PanelKind        `json:"kind"`
	Title       string           `json:"title,omitempty"`
	CustomTitle string           `json:"custom_title,omitempty"`
	WorkingDir  string           `json:"working_dir,omitempty"`
	Pinned      bool             `json:"pinned,omitempty"`
	Unread      bool             `json:"unread,omitempty"`
	Git         *gitinfo.Summary `json:"git,omitempty"`
	Ports       []int            `json:"ports,omitempty"`

	Terminal *TerminalState `json:"terminal,omitempty"`
	Browser  *BrowserState  `json:"browser,omitempty"`
}

// TerminalState is the terminal-specific panel payload.
type TerminalState struct {
	WorkingDir string `json:"working_dir,omitempty"`
	Scrollback string `json:"scrollback,omitempty"`
}

// BrowserState is the browser-specific panel payload.
type BrowserState struct {
	URL             string   `json:"url"`
	Zoom            float64  `json:"zoom,omitempty"`
	DevToolsVisible bool     `json:"devtools_visible,omitempty"`
	BackHistory     []string `json:"back_history,omitempty"`
	ForwardHistory  []string `json:"forward_history,omitempty"`
}

// panelIDs returns the set of panel ids present in the workspace.
func (w *Workspace) panelIDs() map[string]bool {
	ids := make(map[string]bool, len(w.Panels))
	for _, p := range w.Panels {
		ids[p.ID] = true
	}
	return ids
}

// cleanup repairs structural drift in a decoded snapshot: stale selected tab
// indexes are dropped and layout references to missing panels pruned. Drift
// is tolerated, never fatal.
func (s *Snapshot) cleanup() {
	for wi := range s.Windows {
		tabs := &s.Windows[wi].Tabs
		if idx := tabs.SelectedIndex; idx != nil {
			if *idx < 0 || *idx >= len(tabs.Workspaces) {
				tabs.SelectedIndex = nil
			}
		}
		for i := range tabs.Workspaces {
			ws := &tabs.Workspaces[i]
			valid := ws.panelIDs()
			ws.Layout.pruneDangling(valid)
			if ws.FocusedPanel != "" && !valid[ws.FocusedPanel] {
				ws.FocusedPanel = ""
			}
		}
	}
}
