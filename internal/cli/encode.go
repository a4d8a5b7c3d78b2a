package cli

import (
	"fmt"

	"github.com/Davincible/rscodec/internal/validation"
	"github.com/Davincible/rscodec/pkg/config"
	"github.com/Davincible/rscodec/pkg/rs"
	"github.com/Davincible/rscodec/pkg/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type EncodeResult struct {
	Prime            uint64   `json:"prime"`
	N                int      `json:"n"`
	K                int      `json:"k"`
	MaxErrors        int      `json:"max_errors"`
	Codeword         []uint64 `json:"codeword"`
	Generator        []uint64 `json:"generator"`
	GeneratorEncoded []uint64 `json:"generator_encoded"`
}

func newEncodeResult(res *rs.EncodeResult, maxErrors int) EncodeResult {
	return EncodeResult{
		Prime:            res.Codeword.Field.Prime(),
		N:                res.Codeword.Len(),
		K:                res.K,
		MaxErrors:        maxErrors,
		Codeword:         res.Codeword.Symbols,
		Generator:        res.Generator.Coefficients(),
		GeneratorEncoded: res.GeneratorEncoded.Coefficients(),
	}
}

func NewEncodeCommand() *cobra.Command {
	var (
		prime      uint64
		n          int
		profile    string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "encode [symbols...]",
		Short: "Encode a message into a Reed-Solomon codeword",
		Long: `Encode k message symbols into a systematic codeword of n symbols over F_p.
The message length k is the number of symbols given. Symbols are read from the
arguments, or from stdin when none are given.`,
		Example: `  # Encode the message 3 2 1 over F_7 into 6 symbols
  rscodec encode --prime 7 --n 6 3 2 1

  # Read the message from stdin and save the codeword
  echo "3,2,1" | rscodec encode --prime 7 --n 6 --output codeword.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			message, err := readSymbols(cmd, args)
			if err != nil {
				return err
			}

			params := config.CodeParams{Prime: prime, N: n, K: len(message)}
			if err := resolveParams(cm, profile, &params); err != nil {
				return err
			}
			if err := validation.ValidateCodeParams(params.Prime, params.N, params.K); err != nil {
				return err
			}
			if err := validation.ValidateSymbols(message, params.Prime); err != nil {
				return err
			}

			codec, err := rs.NewCodec(rs.Config{Prime: params.Prime, N: params.N, K: params.K})
			if err != nil {
				return err
			}
			res, err := codec.Encode(message)
			if err != nil {
				return fmt.Errorf("failed to encode message: %w", err)
			}

			if outputFile != "" {
				if err := storage.NewCodewordFile(outputFile).Save(storage.FromEncodeResult(res)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Codeword saved to %s\n", outputFile)
				return nil
			}

			result := newEncodeResult(res, codec.MaxErrors())
			if wantJSON(cmd) {
				return outputJSONResult(cmd.OutOrStdout(), result)
			}
			return outputEncodeText(cmd, result)
		},
	}

	cmd.Flags().Uint64VarP(&prime, "prime", "p", 0, "Field modulus (default from config)")
	cmd.Flags().IntVar(&n, "n", 0, "Codeword length (default from config)")
	cmd.Flags().StringVar(&profile, "profile", "", "Take parameters from a saved profile")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Save the codeword to a file")

	return cmd
}

func outputEncodeText(cmd *cobra.Command, result EncodeResult) error {
	w := cmd.OutOrStdout()
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan, color.Bold)

	yellow.Fprintln(w, "=== REED-SOLOMON CODEWORD ===")
	green.Fprintf(w, "F_%d, n=%d, k=%d: corrects up to %d symbol errors\n\n", result.Prime, result.N, result.K, result.MaxErrors)

	cyan.Fprint(w, "Codeword:  ")
	fmt.Fprintln(w, formatSymbols(result.Codeword))
	cyan.Fprint(w, "Generator: ")
	fmt.Fprintln(w, formatSymbols(result.Generator))
	return nil
}
