package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rgonek/contentdesk/mediastore"
	"github.com/spf13/cobra"
)

func newMediaCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Browse and delete stored media",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List stored media",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			media, err := a.media()
			if err != nil {
				return err
			}
			assets, err := media.List(cmd.Context())
			if err != nil {
				return err
			}

			return printTable(cmd.OutOrStdout(), table.Row{"ID", "Name", "Size", "URL"}, mediastore.Search(assets, search),
				func(asset mediastore.Asset) table.Row {
					url, err := media.URL(asset)
					if err != nil {
						url = asset.URL
					}
					return table.Row{asset.ID, asset.OriginalName, mediastore.FormatSize(asset.Size), url}
				})
		},
	}
	list.Flags().StringVar(&search, "search", "", "Filter by original file name")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			media, err := a.media()
			if err != nil {
				return err
			}
			return media.Delete(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, del)
	return cmd
}
