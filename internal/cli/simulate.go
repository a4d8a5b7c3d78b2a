package cli

import (
	"fmt"
	"os"

	"github.com/Davincible/rscodec/internal/simulate"
	"github.com/Davincible/rscodec/internal/validation"
	"github.com/Davincible/rscodec/pkg/config"
	"github.com/Davincible/rscodec/pkg/rs"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func NewSimulateCommand() *cobra.Command {
	var (
		prime   uint64
		n, k    int
		profile string
		errs    int
		trials  int
		seed    uint64
		npyFile string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Measure decoding on randomly corrupted codewords",
		Long: `Encode random messages, corrupt a fixed number of symbols in each codeword,
decode, and count how often the message is recovered, the decoder reports a
failure, or it lands on a different codeword.`,
		Example: `  # 500 trials at the correction limit
  rscodec simulate --prime 929 --n 12 --k 4 --errors 4 --trials 500

  # Export the per-trial outcomes (0 recovered, 1 failed, 2 miscorrected)
  rscodec simulate --errors 5 --npy outcomes.npy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg := cm.GetConfig()

			params := config.CodeParams{Prime: prime, N: n, K: k}
			if err := resolveParams(cm, profile, &params); err != nil {
				return err
			}
			if err := validation.ValidateCodeParams(params.Prime, params.N, params.K); err != nil {
				return err
			}
			if err := validation.ValidateErrorCount(errs, params.N); err != nil {
				return err
			}
			if !cmd.Flags().Changed("trials") {
				trials = cfg.Simulate.Trials
			}
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Simulate.Seed
			}

			codec, err := rs.NewCodec(rs.Config{Prime: params.Prime, N: params.N, K: params.K})
			if err != nil {
				return err
			}

			var progress func()
			if cfg.UI.ProgressBar && !wantJSON(cmd) {
				bar := progressbar.NewOptions(trials,
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("decoding"),
					progressbar.OptionClearOnFinish(),
				)
				progress = func() { _ = bar.Add(1) }
				defer bar.Finish()
			}

			report, err := simulate.Run(cmd.Context(), codec, simulate.Options{
				Trials: trials,
				Errors: errs,
				Seed:   seed,
			}, progress)
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}

			if npyFile != "" {
				f, err := os.Create(npyFile)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", npyFile, err)
				}
				defer f.Close()
				if err := report.WriteNpy(f); err != nil {
					return fmt.Errorf("failed to write %s: %w", npyFile, err)
				}
			}

			if wantJSON(cmd) {
				return outputJSONResult(cmd.OutOrStdout(), report)
			}

			w := cmd.OutOrStdout()
			yellow := color.New(color.FgYellow, color.Bold)
			green := color.New(color.FgGreen)
			red := color.New(color.FgRed)

			yellow.Fprintf(w, "F_%d, n=%d, k=%d, %d errors per word (t=%d), %d trials\n",
				params.Prime, params.N, params.K, errs, report.MaxErrors, report.Trials)
			green.Fprintf(w, "  Recovered:    %d\n", report.Recovered)
			red.Fprintf(w, "  Failed:       %d\n", report.Failed)
			red.Fprintf(w, "  Miscorrected: %d\n", report.Miscorrected)
			if npyFile != "" {
				fmt.Fprintf(w, "Outcomes written to %s\n", npyFile)
			}
			return nil
		},
	}

	cmd.Flags().Uint64VarP(&prime, "prime", "p", 0, "Field modulus (default from config)")
	cmd.Flags().IntVar(&n, "n", 0, "Codeword length (default from config)")
	cmd.Flags().IntVar(&k, "k", 0, "Message length (default from config)")
	cmd.Flags().StringVar(&profile, "profile", "", "Take parameters from a saved profile")
	cmd.Flags().IntVarP(&errs, "errors", "e", 1, "Symbols corrupted per codeword")
	cmd.Flags().IntVarP(&trials, "trials", "t", 1000, "Number of trials")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().StringVar(&npyFile, "npy", "", "Write per-trial outcomes to a NumPy .npy file")

	return cmd
}
