package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func jurisdictionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jurisdictions",
		Short: "List the state and local tax tables in the rule set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			list := engine.StateTax.Jurisdictions()

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			rows := make([][]string, 0, len(list))
			for _, j := range list {
				rows = append(rows, []string{
					j.Code,
					j.Name,
					string(j.Kind),
					j.StateRatePct.String() + "%",
					j.LocalRatePct.String() + "%",
					strconv.Itoa(len(j.Localities)),
				})
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("Code", "Name", "Kind", "State Rate", "Local Rate", "Localities").
				Rows(rows...)
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			fmt.Fprintf(cmd.OutOrStdout(), "Rules version: %s\n", engine.Rules.Metadata.Version)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print as JSON")
	return cmd
}

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List saved projection runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			runs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved runs")
				return nil
			}
			for _, r := range runs {
				name := r.Name
				if strings.TrimSpace(name) == "" {
					name = "(unnamed)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-24s %s, %d years\n",
					r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), name, r.RulesVersion, r.Years)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum runs to list (0 for all)")
	return cmd
}
