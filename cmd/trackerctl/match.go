package main

import (
	"fmt"
	"os"

	"github.com/alimgiray/coursetrack/internal/matching"
	"github.com/alimgiray/coursetrack/internal/services"
	"github.com/spf13/cobra"
)

func newMatchCommand() *cobra.Command {
	var rosterPath, group string

	cmd := &cobra.Command{
		Use:   "match <author>",
		Short: "Match a commit author string against a roster file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(rosterPath)
			if err != nil {
				return err
			}
			defer f.Close()

			roster, err := services.ParseRosterFile(f)
			if err != nil {
				return err
			}

			groups := roster.Students
			if group != "" {
				g, ok := roster.Group(group)
				if !ok {
					return fmt.Errorf("group %q not found in %s", group, rosterPath)
				}
				groups = []services.RosterGroup{*g}
			}

			out := cmd.OutOrStdout()
			for i := range groups {
				g := &groups[i]
				result := matching.NewMatcher(g.Candidates(), g.AliasTable()).Match(args[0])
				if !result.Matched() {
					fmt.Fprintf(out, "%s\tunmatched\t%s\n", g.Username, matching.DisplayLabel(args[0]))
					continue
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", g.Username, result.Type, result.Person.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rosterPath, "roster", "roster.yaml", "roster YAML file")
	cmd.Flags().StringVar(&group, "group", "", "only match against this student's group (name or username)")
	return cmd
}
