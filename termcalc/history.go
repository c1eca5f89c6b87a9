package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjl/scicalc/internal/histstore"
	"github.com/fjl/scicalc/internal/prefs"
)

func newHistoryCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or erase the calculation history",
	}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print stored calculations, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			entries, err := histstore.ReadAll(e.fs, e.cfg.DataDir())
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}
			out := cmd.OutOrStdout()
			for _, entry := range entries {
				fmt.Fprintf(out, "%s  %s\n", entry.Time.Local().Format("2006-01-02 15:04:05"), entry)
			}
			return nil
		},
	}
	listCmd.Flags().IntP("limit", "n", 0, "show only the newest `N` entries")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Erase the stored history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := histstore.NewStore(e.cfg.DataDir(), histstore.WithFs(e.fs))
			store.Clear()
			store.Close()
			entries, err := histstore.ReadAll(e.fs, e.cfg.DataDir())
			if err != nil {
				return err
			}
			if len(entries) != 0 {
				return fmt.Errorf("history not cleared")
			}
			return nil
		},
	}
	cmd.AddCommand(listCmd, clearCmd)
	return cmd
}

func newThemeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{prefs.ThemeLight, prefs.ThemeDark},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := e.openPrefs()
			if err != nil {
				return err
			}
			defer p.Close()
			if len(args) == 1 {
				return p.SetTheme(args[0])
			}
			theme, err := p.Theme()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme)
			return nil
		},
	}
}
