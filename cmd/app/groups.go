package main

import (
	"fmt"
	"text/tabwriter"

	"yatube/internal/core/pagination"

	"github.com/spf13/cobra"
)

// GroupsCmd manages groups, which are created administratively.
func GroupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Create, list and delete groups",
	}
	cmd.AddCommand(groupsCreateCmd(), groupsListCmd(), groupsDeleteCmd())
	return cmd
}

func groupsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			slug, _ := cmd.Flags().GetString("slug")
			description, _ := cmd.Flags().GetString("description")

			a, err := newApp(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer a.Close()

			g, err := a.groups.CreateGroup(cmd.Context(), title, slug, description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created group %d (%s)\n", g.ID, g.Slug)
			return nil
		},
	}
	cmd.Flags().String("title", "", "group title")
	cmd.Flags().String("slug", "", "unique slug used in /group/<slug>/")
	cmd.Flags().String("description", "", "group description")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("slug")
	return cmd
}

func groupsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer a.Close()

			groups, _, err := a.groups.ListGroups(cmd.Context(), pagination.All)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSLUG\tTITLE")
			for _, g := range groups {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", g.ID, g.Slug, g.Title)
			}
			return tw.Flush()
		},
	}
}

func groupsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a group; its posts are kept without a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			slug, _ := cmd.Flags().GetString("slug")

			a, err := newApp(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.groups.DeleteGroup(cmd.Context(), slug); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted group %s\n", slug)
			return nil
		},
	}
	cmd.Flags().String("slug", "", "slug of the group to delete")
	_ = cmd.MarkFlagRequired("slug")
	return cmd
}
