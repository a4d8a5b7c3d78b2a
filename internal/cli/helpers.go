package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Davincible/rscodec/internal/validation"
	"github.com/Davincible/rscodec/pkg/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// loadConfig opens the config named by --config, or the default location.
func loadConfig(cmd *cobra.Command) (*config.ConfigManager, error) {
	path, _ := cmd.Flags().GetString("config")

	var (
		cm  *config.ConfigManager
		err error
	)
	if path != "" {
		cm, err = config.NewConfigManagerAt(path)
	} else {
		cm, err = config.NewConfigManager()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if !cm.GetConfig().UI.UseColor {
		color.NoColor = true
	}
	return cm, nil
}

// resolveParams fills unset code parameters from the profile, then the config defaults.
func resolveParams(cm *config.ConfigManager, profile string, params *config.CodeParams) error {
	if profile != "" {
		if err := cm.ApplyProfile(profile, params); err != nil {
			return err
		}
	}
	cm.ApplyDefaults(params)
	return nil
}

// readSymbols parses symbols from args, or from stdin when no args are given.
func readSymbols(cmd *cobra.Command, args []string) ([]uint64, error) {
	if len(args) > 0 {
		return validation.ParseSymbolArgs(args)
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, fmt.Errorf("no symbols given: pass them as arguments or pipe them on stdin")
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return validation.ParseSymbols(string(data))
}

func wantJSON(cmd *cobra.Command) bool {
	outputJSON, _ := cmd.Flags().GetBool("json")
	return outputJSON
}

func outputJSONResult(w io.Writer, result any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func formatSymbols(symbols []uint64) string {
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = fmt.Sprint(s)
	}
	return strings.Join(parts, " ")
}
