package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ouroboros/internal/backdrop"
	"ouroboros/internal/config"
	"ouroboros/internal/window"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	cfgFile  string
	settings *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:   "ouroboros",
	Short: "Animated particle backdrop",
	Long: `ouroboros draws a drifting particle field with proximity links and three
rotating spirals over a violet gradient. Without a subcommand it opens a
desktop window.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
	RunE:              runWindow,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ~/.ouroboros/config.yaml)")
	pf.Uint64("seed", 0, "particle seed (default: clock)")
	pf.Bool("backdrop", true, "compose over the gradient backdrop")
	pf.Int("width", 1280, "window or snapshot width in pixels")
	pf.Int("height", 720, "window or snapshot height in pixels")

	rootCmd.Flags().String("title", "ouroboros", "window title")
	rootCmd.Flags().Bool("vsync", true, "sync presentation to the display refresh")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ouroboros: %v\n", err)
	}
	return err
}

// loadSettings binds the running command's flags over the config file and
// environment. Flag names map to keys with dashes turned into underscores.
func loadSettings(cmd *cobra.Command, _ []string) error {
	log.SetFlags(0)
	log.SetPrefix("ouroboros: ")

	settings = config.New()
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "help" || bindErr != nil {
			return
		}
		bindErr = settings.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	if bindErr != nil {
		return fmt.Errorf("binding flags: %w", bindErr)
	}
	return config.Load(settings, cfgFile)
}

func resolve() (config.Settings, error) {
	return config.Resolve(settings)
}

// present mounts the backdrop on host and drives it until the host closes.
// A degraded mount keeps presenting the static background.
func present(ctx context.Context, host backdrop.Host, s config.Settings) error {
	var opts []backdrop.Option
	if s.Seeded {
		opts = append(opts, backdrop.WithSeed(s.Seed))
	}
	viz := backdrop.Mount(host, opts...)
	if viz.Degraded() != nil {
		return backdrop.Idle(ctx, host)
	}
	return viz.Run(ctx)
}

func runWindow(cmd *cobra.Command, _ []string) error {
	s, err := resolve()
	if err != nil {
		return err
	}

	host, err := window.Open(window.Config{
		Width:    s.Width,
		Height:   s.Height,
		Title:    s.Title,
		VSync:    s.VSync,
		Backdrop: s.Backdrop,
	})
	if err != nil {
		return err
	}
	defer host.Close()
	return present(cmd.Context(), host, s)
}
