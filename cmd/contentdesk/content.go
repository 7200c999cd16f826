package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rgonek/contentdesk/contentapi"
	"github.com/spf13/cobra"
)

func newServicesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "services", Short: "Manage service pages"}

	cmd.AddCommand(
		listCommand(a, func(c *contentapi.Client) listFunc[contentapi.Service] { return c.Services().List },
			table.Row{"Slug", "Title", "Active"}, func(s contentapi.Service) table.Row {
				return table.Row{s.Slug, s.Title, s.IsActive}
			}),
		createCommand(a, func(c *contentapi.Client) createFunc[contentapi.Service] { return c.Services().Create }),
		actionCommand(a, "toggle", "Activate or deactivate a service", func(c *contentapi.Client) idFunc {
			return discard(c.Services().Toggle)
		}),
		actionCommand(a, "delete", "Delete a service", func(c *contentapi.Client) idFunc { return c.Services().Delete }),
	)
	return cmd
}

func newBlogsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "blogs", Short: "Manage blog posts"}

	var search, status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List blog posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.content()
			if err != nil {
				return err
			}
			blogs, err := client.Blogs().List(cmd.Context())
			if err != nil {
				return err
			}
			blogs = contentapi.FilterBlogs(blogs, search, contentapi.BlogStatus(status))
			return printTable(cmd.OutOrStdout(), table.Row{"ID", "Slug", "Title", "Status", "Featured"}, blogs, func(b contentapi.Blog) table.Row {
				return table.Row{b.ID, b.Slug, b.Title, b.Status, b.Featured}
			})
		},
	}
	list.Flags().StringVar(&search, "search", "", "Match title or excerpt")
	list.Flags().StringVar(&status, "status", "", "Filter by status: draft|published")

	analyze := &cobra.Command{
		Use:   "analyze <file|->",
		Short: "Count words, reading time and images of an HTML body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			stats, err := contentapi.AnalyzeContent(string(data))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "words: %d\nreading time: %d min\nimages: %d\n", stats.Words, stats.ReadingTime, len(stats.Images))
			for _, src := range stats.UnsafeImages {
				fmt.Fprintf(out, "unsafe image: %s\n", src)
			}
			return nil
		},
	}

	cmd.AddCommand(
		list,
		analyze,
		createCommand(a, func(c *contentapi.Client) createFunc[contentapi.Blog] { return c.Blogs().Create }),
		actionCommand(a, "publish", "Switch a post between draft and published", func(c *contentapi.Client) idFunc {
			return discard(c.Blogs().TogglePublish)
		}),
		actionCommand(a, "feature", "Feature or unfeature a post", func(c *contentapi.Client) idFunc {
			return discard(c.Blogs().ToggleFeatured)
		}),
		actionCommand(a, "delete", "Delete a post", func(c *contentapi.Client) idFunc { return c.Blogs().Delete }),
	)
	return cmd
}

func newCategoriesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "categories", Short: "Manage service and blog categories"}

	var kind string
	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.content()
			if err != nil {
				return err
			}
			categories, err := client.Categories().List(cmd.Context())
			if err != nil {
				return err
			}
			categories = contentapi.FilterCategories(categories, contentapi.CategoryType(kind))
			return printTable(cmd.OutOrStdout(), table.Row{"ID", "Name", "Type", "Active"}, categories, func(c contentapi.Category) table.Row {
				return table.Row{c.ID, c.Name, c.Type, c.IsActive}
			})
		},
	}
	list.Flags().StringVar(&kind, "type", "", "Filter by type: service|blog")

	cmd.AddCommand(
		list,
		createCommand(a, func(c *contentapi.Client) createFunc[contentapi.Category] { return c.Categories().Create }),
		actionCommand(a, "toggle", "Activate or deactivate a category", func(c *contentapi.Client) idFunc {
			return discard(c.Categories().Toggle)
		}),
		actionCommand(a, "delete", "Delete a category", func(c *contentapi.Client) idFunc { return c.Categories().Delete }),
	)
	return cmd
}

func newFAQCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "faq", Short: "Manage FAQ categories and questions"}

	var question, answer string
	ask := &cobra.Command{
		Use:   "add-question <category-id>",
		Short: "Add a question to a FAQ category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.content()
			if err != nil {
				return err
			}
			category, err := client.FAQ().AddQuestion(cmd.Context(), args[0], contentapi.Question{
				Question: question,
				Answer:   answer,
				IsActive: true,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d questions\n", category.Name, len(category.Questions))
			return nil
		},
	}
	ask.Flags().StringVar(&question, "question", "", "Question text")
	ask.Flags().StringVar(&answer, "answer", "", "Answer text")

	questionAction := func(use, short string, call func(c *contentapi.Client) func(cmd *cobra.Command, categoryID, questionID string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <category-id> <question-id>",
			Short: short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := a.content()
				if err != nil {
					return err
				}
				return call(client)(cmd, args[0], args[1])
			},
		}
	}

	cmd.AddCommand(
		listCommand(a, func(c *contentapi.Client) listFunc[contentapi.FAQCategory] { return c.FAQ().List },
			table.Row{"ID", "Name", "Questions", "Active"}, func(f contentapi.FAQCategory) table.Row {
				return table.Row{f.ID, f.Name, len(f.Questions), f.IsActive}
			}),
		createCommand(a, func(c *contentapi.Client) createFunc[contentapi.FAQCategory] { return c.FAQ().Create }),
		actionCommand(a, "toggle", "Activate or deactivate a FAQ category", func(c *contentapi.Client) idFunc {
			return discard(c.FAQ().Toggle)
		}),
		actionCommand(a, "delete", "Delete a FAQ category", func(c *contentapi.Client) idFunc { return c.FAQ().Delete }),
		ask,
		questionAction("toggle-question", "Activate or deactivate a question", func(c *contentapi.Client) func(*cobra.Command, string, string) error {
			return func(cmd *cobra.Command, categoryID, questionID string) error {
				_, err := c.FAQ().ToggleQuestion(cmd.Context(), categoryID, questionID)
				return err
			}
		}),
		questionAction("delete-question", "Delete a question", func(c *contentapi.Client) func(*cobra.Command, string, string) error {
			return func(cmd *cobra.Command, categoryID, questionID string) error {
				_, err := c.FAQ().DeleteQuestion(cmd.Context(), categoryID, questionID)
				return err
			}
		}),
	)
	return cmd
}

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.content()
			if err != nil {
				return err
			}
			stats, err := client.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"services:   %d (%d active)\nblogs:      %d (%d published, %d drafts)\ncategories: %d\nmedia:      %d\n",
				stats.Services.Total, stats.Services.Active,
				stats.Blogs.Total, stats.Blogs.Published, stats.Blogs.Drafts,
				stats.Categories, stats.Media)
			return nil
		},
	}
}

func newSlugCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "slug <title>...",
		Short: "Print the slug generated for a title",
		Args:  cobra.MinimumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), contentapi.GenerateSlug(strings.Join(args, " ")))
			return nil
		},
	}
}

type (
	listFunc[T any]   func(ctx context.Context) ([]T, error)
	createFunc[T any] func(ctx context.Context, draft T) (T, error)
	idFunc            func(ctx context.Context, id string) error
)

func discard[T any](call func(ctx context.Context, id string) (T, error)) idFunc {
	return func(ctx context.Context, id string) error {
		_, err := call(ctx, id)
		return err
	}
}

func listCommand[T any](a *app, pick func(*contentapi.Client) listFunc[T], header table.Row, row func(T) table.Row) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.content()
			if err != nil {
				return err
			}
			items, err := pick(client)(cmd.Context())
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), header, items, row)
		},
	}
}

func createCommand[T any](a *app, pick func(*contentapi.Client) createFunc[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "create <draft.json|->",
		Short: "Create an item from a JSON draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			var draft T
			if err := json.Unmarshal(data, &draft); err != nil {
				return fmt.Errorf("failed to parse draft: %w", err)
			}

			client, err := a.content()
			if err != nil {
				return err
			}
			created, err := pick(client)(cmd.Context(), draft)
			if err != nil {
				return err
			}

			pretty, err := json.MarshalIndent(created, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
			return nil
		},
	}
}

func actionCommand(a *app, use, short string, pick func(*contentapi.Client) idFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.content()
			if err != nil {
				return err
			}
			return pick(client)(cmd.Context(), args[0])
		},
	}
}

func printTable[T any](w io.Writer, header table.Row, items []T, row func(T) table.Row) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	for _, item := range items {
		t.AppendRow(row(item))
	}
	t.Render()
	return nil
}
