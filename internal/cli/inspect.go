package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/errors"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/sheet"
)

// inspectCommand creates the inspect command for browsing a sheet file.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain bool
		frame string
	)

	cmd := &cobra.Command{
		Use:   "inspect [sheet.json|sheet.toml]",
		Short: "Browse the frames of a sheet file",
		Long: `Browse the frames of a sheet file written by 'generate'.

In a terminal this opens an interactive frame browser. With --plain, or when
output is not a terminal, every frame is printed as a table. --frame prints
the placement of a single frame by name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sheet.ReadFile(args[0])
			if err != nil {
				return err
			}
			c.Logger.Debug("loaded sheet", "path", args[0], "frames", len(s.Frames))

			if frame != "" {
				f, ok := s.Frame(frame)
				if !ok {
					return errors.New(errors.ErrCodeNotFound, "no frame named %q in %s", frame, args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), frameTable([][]string{frameRow(f)}).Render())
				fmt.Fprintln(cmd.OutOrStdout(), frameDetail(f))
				return nil
			}
			if plain || !isTerminal(os.Stdout) {
				printSheet(cmd.OutOrStdout(), s)
				return nil
			}
			_, err = tea.NewProgram(NewFrameListModel(s), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a table instead of the interactive browser")
	cmd.Flags().StringVar(&frame, "frame", "", "print only the named frame")

	return cmd
}

// printSheet writes a summary line and a table of every frame.
func printSheet(w io.Writer, s sheet.Sheet) {
	title := fmt.Sprintf("%s  %dx%d  %d frames", s.Texture, s.Width, s.Height, len(s.Frames))
	fmt.Fprintln(w, StyleTitle.Render(title))

	rows := make([][]string, len(s.Frames))
	for i, f := range s.Frames {
		rows[i] = frameRow(f)
	}
	t := frameTable(rows).StyleFunc(func(row, col int) lipgloss.Style {
		if row == -1 {
			return tableHeaderStyle
		}
		return lipgloss.NewStyle()
	})
	fmt.Fprintln(w, t.Render())
}
