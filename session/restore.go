package session

import (
	"workdeck/geometry"
	"workdeck/scrollback"
)

// WindowPlan pairs a saved window with the concrete frame to apply and the
// replay environment for each of its terminal panels.
type WindowPlan struct {
	Window *Window

	// Frame is nil when the caller should use its default placement.
	Frame *geometry.Rect

	// ReplayEnv maps panel id to the environment injected into that
	// terminal's launch. Panels with nothing to replay are absent.
	ReplayEnv map[string]map[string]string
}

// Plan is everything the host needs to rebuild windows from a snapshot.
type Plan struct {
	Snapshot *Snapshot
	Windows  []WindowPlan
}

// BuildPlan resolves each saved window against the live display set and
// prepares scrollback replay files. fallback selects the display used for
// windows that are offscreen everywhere; nil means the first live display.
// Returns nil when there is no snapshot to restore.
func BuildPlan(snap *Snapshot, displays []geometry.Display, fallback *geometry.Display) *Plan {
	if snap == nil || len(snap.Windows) == 0 {
		return nil
	}

	plan := &Plan{Snapshot: snap}
	for wi := range snap.Windows {
		win := &snap.Windows[wi]
		wp := WindowPlan{
			Window: win,
			Frame:  geometry.ResolveFrame(win.Frame, win.Display, displays, fallback),
		}
		for _, ws := range win.Tabs.Workspaces {
			for _, p := range ws.Panels {
				if p.Kind != PanelTerminal || p.Terminal == nil {
					continue
				}
				env := scrollback.PrepareReplay(p.Terminal.Scrollback)
				if len(env) == 0 {
					continue
				}
				if wp.ReplayEnv == nil {
					wp.ReplayEnv = make(map[string]map[string]string)
				}
				wp.ReplayEnv[p.ID] = env
			}
		}
		plan.Windows = append(plan.Windows, wp)
	}
	return plan
}
