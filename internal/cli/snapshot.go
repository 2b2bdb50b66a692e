package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ouroboros/internal/headless"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render frames off-screen and write the last one as PNG",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := resolve()
		if err != nil {
			return err
		}
		err = headless.Snapshot(cmd.Context(), headless.SnapshotConfig{
			Width:    s.Width,
			Height:   s.Height,
			Frames:   s.Frames,
			FPS:      s.FPS,
			Seed:     s.Seed,
			Seeded:   s.Seeded,
			Backdrop: s.Backdrop,
			Out:      s.Out,
		})
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d, %d frames)\n", s.Out, s.Width, s.Height, s.Frames)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().Int("frames", 120, "frames to simulate")
	snapshotCmd.Flags().Float64("fps", 60, "pace frames at this rate (0: unpaced)")
	snapshotCmd.Flags().StringP("out", "o", "ouroboros.png", "output PNG path")
	rootCmd.AddCommand(snapshotCmd)
}
