package cli

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the rscodec command tree.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rscodec",
		Short: "Reed-Solomon codes over prime fields with Berlekamp-Welch decoding",
		Long: `rscodec encodes messages of k field symbols into systematic codewords of
n symbols over a prime field F_p, and decodes received words that carry up to
t = (n-k)/2 corrupted symbols with the Berlekamp-Welch algorithm.

Symbols are integers in [0, p). The first k symbols of every codeword are the
message itself; the remaining n-k symbols are redundancy.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
				if err := logging.SetLogLevel("rs", "debug"); err != nil {
					return err
				}
			}

			noColor, _ := cmd.Flags().GetBool("no-color")
			if noColor {
				color.NoColor = true
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		NewEncodeCommand(),
		NewDecodeCommand(),
		NewFieldCommand(),
		NewSimulateCommand(),
		NewConfigCommand(),
		NewProfileCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $RSCODEC_CONFIG or ~/.config/rscodec/config.json)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	return rootCmd
}
