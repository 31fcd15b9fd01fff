package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"quicknotes/internal/notes"
	"quicknotes/internal/scanner"
)

const previewRunes = 60

func (s *session) addCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "add <title> <content...>",
		Aliases: []string{"a"},
		Short:   "Add a new note",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := s.store.Create(args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added #%d: %s\n", s.store.Len(), n.Title)
			return nil
		},
	}
}

func (s *session) listCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List notes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runList(cmd, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stored JSON")
	return cmd
}

func (s *session) runList(cmd *cobra.Command, asJSON bool) error {
	out := cmd.OutOrStdout()
	list := s.store.Notes()

	if asJSON {
		raw, err := notes.EncodeList(list)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, raw)
		return nil
	}

	if len(list) == 0 {
		fmt.Fprintln(out, "No notes yet.")
		return nil
	}

	for i, n := range list {
		fmt.Fprintf(out, "%d. %s  (%s)\n", i+1, n.Title, n.CreatedDate)
		if p := notes.Preview(n.Content, previewRunes); p != "" {
			fmt.Fprintf(out, "   %s\n", p)
		}
	}
	fmt.Fprintf(out, "\n%d note(s)\n", len(list))
	return nil
}

func (s *session) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <n>",
		Short: "Print a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0], s.store.Len())
			if err != nil {
				return err
			}
			n, err := s.store.Get(idx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s\n\n%s\n", n.Title, n.CreatedDate, n.Content)
			return nil
		},
	}
}

func (s *session) editCommand() *cobra.Command {
	var title, content string
	cmd := &cobra.Command{
		Use:     "edit <n>",
		Aliases: []string{"e"},
		Short:   "Change a note's title or content",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0], s.store.Len())
			if err != nil {
				return err
			}
			if err := s.store.BeginEdit(idx); err != nil {
				return err
			}

			buf := s.store.Buffer()
			if cmd.Flags().Changed("title") {
				buf.Title = title
			}
			if cmd.Flags().Changed("content") {
				buf.Content = content
			}

			if err := s.store.CommitEdit(idx, buf.Title, buf.Content); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated #%d: %s\n", idx+1, buf.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "New content")
	return cmd
}

func (s *session) removeCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm <n>",
		Aliases: []string{"remove", "delete", "del"},
		Short:   "Remove a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0], s.store.Len())
			if err != nil {
				return err
			}

			var confirm notes.Confirmer = notes.Answer(true)
			var promptErr error
			if !yes {
				if !s.opts.IsTerminal() {
					return fmt.Errorf("refusing to remove without --yes when not on a terminal")
				}
				confirm = notes.ConfirmFunc(func(i int, n notes.Note) bool {
					ok, err := s.opts.Confirm(fmt.Sprintf("Remove note #%d %q?", i+1, n.Title))
					promptErr = err
					return ok && err == nil
				})
			}

			removed, err := s.store.Remove(idx, confirm)
			if err != nil {
				return err
			}
			if promptErr != nil {
				return promptErr
			}

			out := cmd.OutOrStdout()
			if !removed {
				fmt.Fprintln(out, "Nothing removed.")
				return nil
			}
			fmt.Fprintf(out, "Removed #%d\n", idx+1)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Remove without asking")
	return cmd
}

func (s *session) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write each note to a markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := notes.ExportMarkdown(args[0], s.store.Notes())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d note(s) to %s\n", len(paths), args[0])
			return nil
		},
	}
}

func (s *session) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.md|dir...>",
		Short: "Append notes from markdown files or directories of them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := scanner.ExpandPaths(args)
			if err != nil {
				return err
			}
			incoming, err := notes.ReadMarkdownFiles(paths)
			if err != nil {
				return err
			}
			added, err := s.store.Import(incoming)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d note(s)\n", added, len(incoming))
			return nil
		},
	}
}
