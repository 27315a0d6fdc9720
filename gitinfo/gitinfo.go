// Package gitinfo captures a read-only git summary for snapshot records.
package gitinfo

import (
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Summary is the git state stored alongside a workspace or panel.
type Summary struct {
	Branch   string `json:"branch"`
	Detached bool   `json:"detached,omitempty"`
	Dirty    bool   `json:"dirty,omitempty"`
}

// ForDir returns the git summary for the repository containing dir, or nil
// when dir is not inside one. Every failure reads as "no summary": a
// checkpoint must not fail because a working directory is mid-rebase or
// otherwise unreadable.
func ForDir(dir string) *Summary {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil
	}

	ref, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return nil
	}

	sum := &Summary{}
	if ref.Type() == plumbing.SymbolicReference {
		sum.Branch = ref.Target().Short()
	} else {
		sum.Branch = ref.Hash().String()[:7]
		sum.Detached = true
	}

	if wt, err := repo.Worktree(); err == nil {
		if status, err := wt.Status(); err == nil {
			sum.Dirty = !status.IsClean()
		}
	}
	return sum
}
