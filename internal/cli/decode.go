package cli

import (
	"errors"
	"fmt"

	"github.com/Davincible/rscodec/internal/validation"
	"github.com/Davincible/rscodec/pkg/config"
	"github.com/Davincible/rscodec/pkg/field"
	"github.com/Davincible/rscodec/pkg/rs"
	"github.com/Davincible/rscodec/pkg/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type DecodeResult struct {
	Prime          uint64   `json:"prime"`
	N              int      `json:"n"`
	K              int      `json:"k"`
	Message        []uint64 `json:"message"`
	Corrected      []uint64 `json:"corrected"`
	ErrorPositions []int    `json:"error_positions"`
	ErrorCount     int      `json:"error_count"`
}

func NewDecodeCommand() *cobra.Command {
	var (
		prime     uint64
		k         int
		profile   string
		inputFile string
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "decode [symbols...]",
		Short: "Decode a received word, correcting symbol errors",
		Long: `Decode n received symbols over F_p into the k-symbol message, correcting up
to (n-k)/2 corrupted symbols. The codeword length n is the number of symbols
given. With --input the word and its parameters are read from a file written
by 'rscodec encode --output'.`,
		Example: `  # One corrupted symbol in a codeword over F_7
  rscodec decode --prime 7 --k 3 3 2 1 0 2 5

  # Decode a stored codeword
  rscodec decode --input codeword.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			var (
				received []uint64
				params   config.CodeParams
			)
			if inputFile != "" {
				stored, err := storage.NewCodewordFile(inputFile).Load()
				if err != nil {
					return err
				}
				received = stored.Symbols
				params = config.CodeParams{Prime: stored.Prime, N: stored.N, K: stored.K}
			} else {
				received, err = readSymbols(cmd, args)
				if err != nil {
					return err
				}
				params = config.CodeParams{Prime: prime, N: len(received), K: k}
			}

			if err := resolveParams(cm, profile, &params); err != nil {
				return err
			}
			if len(received) != params.N {
				return fmt.Errorf("expected %d symbols, got %d", params.N, len(received))
			}
			if err := validation.ValidateCodeParams(params.Prime, params.N, params.K); err != nil {
				return err
			}
			if err := validation.ValidateSymbols(received, params.Prime); err != nil {
				return err
			}

			if !cmd.Flags().Changed("workers") {
				workers = cm.GetConfig().Defaults.ParallelWorkers
			}
			codec, err := rs.NewCodec(rs.Config{Prime: params.Prime, N: params.N, K: params.K}, rs.WithParallelSearch(workers))
			if err != nil {
				return err
			}

			res, err := codec.DecodeContext(cmd.Context(), rs.Codeword{Field: codec.Field(), Symbols: append([]field.Element(nil), received...)})
			if err != nil {
				if errors.Is(err, rs.ErrDecodeFailure) {
					return fmt.Errorf("received word is not correctable: %w", err)
				}
				return fmt.Errorf("failed to decode: %w", err)
			}

			result := DecodeResult{
				Prime:          params.Prime,
				N:              params.N,
				K:              params.K,
				Message:        res.Message,
				Corrected:      res.Corrected.Symbols,
				ErrorPositions: res.ErrorPositions,
				ErrorCount:     res.ErrorCount,
			}
			if result.ErrorPositions == nil {
				result.ErrorPositions = []int{}
			}

			if wantJSON(cmd) {
				return outputJSONResult(cmd.OutOrStdout(), result)
			}
			return outputDecodeText(cmd, result)
		},
	}

	cmd.Flags().Uint64VarP(&prime, "prime", "p", 0, "Field modulus (default from config)")
	cmd.Flags().IntVar(&k, "k", 0, "Message length (default from config)")
	cmd.Flags().StringVar(&profile, "profile", "", "Take parameters from a saved profile")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Read the received word from a codeword file")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Solve error hypotheses on this many goroutines")

	return cmd
}

func outputDecodeText(cmd *cobra.Command, result DecodeResult) error {
	w := cmd.OutOrStdout()
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan, color.Bold)

	if result.ErrorCount == 0 {
		green.Fprintln(w, "✓ No symbol errors")
	} else {
		yellow.Fprintf(w, "Corrected %d symbol error(s) at position(s) %v\n", result.ErrorCount, result.ErrorPositions)
	}

	cyan.Fprint(w, "Message:   ")
	fmt.Fprintln(w, formatSymbols(result.Message))
	cyan.Fprint(w, "Codeword:  ")
	fmt.Fprintln(w, formatSymbols(result.Corrected))
	return nil
}
