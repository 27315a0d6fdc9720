package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Layout node discriminants in the stored form.
const (
	layoutTypePane  = "pane"
	layoutTypeSplit = "split"
)

// Orientation is the axis of a split.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// LayoutNode is the recursive pane arrangement inside a workspace: either a
// Pane holding panel ids or a Split with two children. Exactly one of the
// two fields is set. The JSON form carries an explicit "type" discriminant;
// decoding rejects unknown discriminants instead of defaulting.
type LayoutNode struct {
	Pane  *PaneNode
	Split *SplitNode
}

// PaneNode lists the panels stacked in one pane.
type PaneNode struct {
	Panels   []string `json:"panels"`
	Selected string   `json:"selected,omitempty"`
}

// SplitNode divides its area between two child trees.
type SplitNode struct {
	Orientation Orientation `json:"orientation"`
	// Ratio is the divider position as the fraction given to First.
	Ratio  float64     `json:"ratio"`
	First  *LayoutNode `json:"first"`
	Second *LayoutNode `json:"second"`
}

type paneJSON struct {
	Type     string   `json:"type"`
	Panels   []string `json:"panels"`
	Selected string   `json:"selected,omitempty"`
}

type splitJSON struct {
	Type        string      `json:"type"`
	Orientation Orientation `json:"orientation"`
	Ratio       float64     `json:"ratio"`
	First       *LayoutNode `json:"first"`
	Second      *LayoutNode `json:"second"`
}

// MarshalJSON encodes the node with its variant discriminant.
func (n LayoutNode) MarshalJSON() ([]byte, error) {
	switch {
	case n.Pane != nil:
		return json.Marshal(paneJSON{
			Type:     layoutTypePane,
			Panels:   n.Pane.Panels,
			Selected: n.Pane.Selected,
		})
	case n.Split != nil:
		return json.Marshal(splitJSON{
			Type:        layoutTypeSplit,
			Orientation: n.Split.Orientation,
			Ratio:       n.Split.Ratio,
			First:       n.Split.First,
			Second:      n.Split.Second,
		})
	default:
		return nil, errors.New("layout node has neither pane nor split")
	}
}

// UnmarshalJSON decodes a node by its discriminant, rejecting unknown types.
func (n *LayoutNode) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch probe.Type {
	case layoutTypePane:
		var p paneJSON
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		n.Pane = &PaneNode{Panels: p.Panels, Selected: p.Selected}
		n.Split = nil
	case layoutTypeSplit:
		var s splitJSON
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s.First == nil || s.Second == nil {
			return errors.New("split node missing a child")
		}
		n.Split = &SplitNode{
			Orientation: s.Orientation,
			Ratio:       s.Ratio,
			First:       s.First,
			Second:      s.Second,
		}
		n.Pane = nil
	default:
		return fmt.Errorf("unknown layout node type %q", probe.Type)
	}
	return nil
}

// PanelIDs returns every panel id referenced by the tree, in traversal
// order.
func (n *LayoutNode) PanelIDs() []string {
	if n == nil {
		return nil
	}
	if n.Pane != nil {
		return append([]string(nil), n.Pane.Panels...)
	}
	if n.Split != nil {
		return append(n.Split.First.PanelIDs(), n.Split.Second.PanelIDs()...)
	}
	return nil
}

// pruneDangling drops panel-id references that are not in valid and clears
// selections that pointed at them. A stored layout can drift from the panel
// list; dangling references are skipped, never fatal.
func (n *LayoutNode) pruneDangling(valid map[string]bool) {
	if n == nil {
		return
	}
	if n.Pane != nil {
		dropped := false
		for _, id := range n.Pane.Panels {
			if !valid[id] {
				dropped = true
				break
			}
		}
		if dropped {
			kept := make([]string, 0, len(n.Pane.Panels))
			for _, id := range n.Pane.Panels {
				if valid[id] {
					kept = append(kept, id)
				}
			}
			n.Pane.Panels = kept
		}
		if n.Pane.Selected != "" && !valid[n.Pane.Selected] {
			n.Pane.Selected = ""
		}
		return
	}
	if n.Split != nil {
		n.Split.First.pruneDangling(valid)
		n.Split.Second.pruneDangling(valid)
	}
}
