package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"workdeck/config"
	"workdeck/log"
	"workdeck/session"
)

var (
	version = "0.3.0"

	installIDFlag string

	headerStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"})
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"})
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})

	rootCmd = &cobra.Command{
		Use:   "workdeck-session",
		Short: "Inspect and manage workdeck session snapshots.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspectCmd.RunE(cmd, args)
		},
	}

	pathCmd = &cobra.Command{
		Use:   "path",
		Short: "Print the resolved snapshot file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}
			fmt.Println(store.Path())
			return nil
		},
	}

	inspectCmd = &cobra.Command{
		Use:   "inspect",
		Short: "Decode and pretty-print the stored snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			store, err := newStore()
			if err != nil {
				return err
			}
			snap := store.Load()
			if snap == nil {
				fmt.Println(mutedStyle.Render("no restorable snapshot at " + store.Path()))
				return nil
			}
			fmt.Print(renderSnapshot(snap))
			return nil
		},
	}

	checkCmd = &cobra.Command{
		Use:   "check [-- launch args...]",
		Short: "Print the restore-policy decision for a launch context",
		RunE: func(cmd *cobra.Command, args []string) error {
			if session.ShouldRestore(args, os.Getenv) {
				fmt.Println("restore: enabled")
			} else {
				fmt.Println("restore: disabled")
			}

			credPath, err := config.DefaultCredentialPath()
			if err != nil {
				return fmt.Errorf("failed to resolve credential path: %w", err)
			}
			creds := config.NewCredentialStore(credPath)
			if _, ok := creds.Token(); ok {
				fmt.Println("legacy credentials: present")
			} else {
				fmt.Println("legacy credentials: none")
			}
			return nil
		},
	}

	clearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			store, err := newStore()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear snapshot: %w", err)
			}
			fmt.Println("Snapshot cleared")
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of workdeck-session",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("workdeck-session version %s\n", version)
		},
	}
)

func newStore() (*session.Store, error) {
	dir, err := config.GetDataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}
	return session.NewStore(dir, installIDFlag), nil
}

func renderSnapshot(snap *session.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Session snapshot") + "\n")
	sb.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("captured:"), snap.CreatedAt.Local().Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("%s %d\n", labelStyle.Render("windows:"), len(snap.Windows)))

	for wi, win := range snap.Windows {
		sb.WriteString(headerStyle.Render(fmt.Sprintf("\nWindow %d", wi+1)) + "\n")
		if win.Frame != nil {
			sb.WriteString(fmt.Sprintf("  %s (%.0f, %.0f) %.0fx%.0f\n",
				labelStyle.Render("frame:"), win.Frame.X, win.Frame.Y, win.Frame.Width, win.Frame.Height))
		}
		if win.Display != nil {
			sb.WriteString(fmt.Sprintf("  %s %d\n", labelStyle.Render("display:"), win.Display.ID))
		}
		for ti, ws := range win.Tabs.Workspaces {
			marker := " "
			if win.Tabs.SelectedIndex != nil && *win.Tabs.SelectedIndex == ti {
				marker = "*"
			}
			title := ws.CustomTitle
			if title == "" {
				title = ws.Title
			}
			sb.WriteString(fmt.Sprintf("  %s %s", marker, title))
			if ws.GitBranch != "" {
				sb.WriteString(mutedStyle.Render(" [" + ws.GitBranch + "]"))
			}
			sb.WriteString(mutedStyle.Render(" " + ws.WorkingDir))
			sb.WriteString("\n")
			inLayout := make(map[string]bool)
			for _, id := range ws.Layout.PanelIDs() {
				inLayout[id] = true
			}
			for _, p := range ws.Panels {
				sb.WriteString(fmt.Sprintf("      %-8s %s", p.Kind, p.ID))
				if p.Title != "" {
					sb.WriteString(" " + mutedStyle.Render(p.Title))
				}
				if ws.Layout != nil && !inLayout[p.ID] {
					sb.WriteString(mutedStyle.Render(" (detached)"))
				}
				sb.WriteString("\n")
			}
			renderLayout(&sb, ws.Layout, 3)
		}
	}
	return sb.String()
}

func renderLayout(sb *strings.Builder, node *session.LayoutNode, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	switch {
	case node.Pane != nil:
		line := fmt.Sprintf("%spane %s", indent, strings.Join(node.Pane.Panels, ", "))
		if node.Pane.Selected != "" {
			line += mutedStyle.Render(" (selected: " + node.Pane.Selected + ")")
		}
		sb.WriteString(line + "\n")
	case node.Split != nil:
		sb.WriteString(fmt.Sprintf("%s%s split at %.2f\n", indent, node.Split.Orientation, node.Split.Ratio))
		renderLayout(sb, node.Split.First, depth+1)
		renderLayout(sb, node.Split.Second, depth+1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&installIDFlag, "install-id", "com.workdeck.app",
		"Installation identifier used to name the snapshot file")

	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
	}
}
