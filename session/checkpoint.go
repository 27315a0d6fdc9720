package session

import (
	"time"

	"workdeck/gitinfo"
	"workdeck/scrollback"
)

// NewSnapshot assembles the checkpoint record from the host-supplied window
// fragments: it stamps the schema version and capture time, truncates
// terminal scrollback to the replay budget, and fills in git branches for
// workspaces that did not supply one. Returns nil when there are no
// windows; an empty snapshot is treated as absent and must not be saved.
func NewSnapshot(windows []Window) *Snapshot {
	if len(windows) == 0 {
		return nil
	}

	snap := &Snapshot{
		Version:   CurrentVersion,
		CreatedAt: time.Now().UTC(),
		Windows:   windows,
	}
	for wi := range snap.Windows {
		tabs := &snap.Windows[wi].Tabs
		for i := range tabs.Workspaces {
			ws := &tabs.Workspaces[i]
			if ws.GitBranch == "" && ws.WorkingDir != "" {
				if sum := gitinfo.ForDir(ws.WorkingDir); sum != nil {
					ws.GitBranch = sum.Branch
				}
			}
			for pi := range ws.Panels {
				p := &ws.Panels[pi]
				if p.Kind == PanelTerminal && p.Terminal != nil {
					p.Terminal.Scrollback = scrollback.Truncate(p.Terminal.Scrollback, scrollback.DefaultMaxChars)
				}
			}
		}
	}
	return snap
}
