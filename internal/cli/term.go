package cli

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"ouroboros/internal/term"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Draw the backdrop in the terminal",
	Long: `Draw the backdrop with half-block glyphs, two samples per cell.
Each cell stands for cell-width x cell-height surface pixels.
Esc, q or Ctrl-C quits.`,
	Args: cobra.NoArgs,
	RunE: runTerm,
}

func init() {
	termCmd.Flags().Float64("fps", 60, "frames per second")
	termCmd.Flags().Int("cell-width", 8, "surface pixels per cell column")
	termCmd.Flags().Int("cell-height", 16, "surface pixels per cell row")
	rootCmd.AddCommand(termCmd)
}

func runTerm(cmd *cobra.Command, _ []string) error {
	s, err := resolve()
	if err != nil {
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	host, err := term.Open(screen, term.Config{
		FPS:        s.FPS,
		CellWidth:  s.CellWidth,
		CellHeight: s.CellHeight,
		Backdrop:   s.Backdrop,
	})
	if err != nil {
		return err
	}
	defer host.Close()
	return present(cmd.Context(), host, s)
}
