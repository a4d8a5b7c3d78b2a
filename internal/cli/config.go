package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/Davincible/rscodec/internal/validation"
	"github.com/Davincible/rscodec/pkg/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or reset the configuration file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !wantJSON(cmd) {
				color.New(color.FgCyan).Fprintf(cmd.OutOrStdout(), "# %s\n", cm.Path())
			}
			return outputJSONResult(cmd.OutOrStdout(), cm.GetConfig())
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cm.SetConfig(config.DefaultConfig())
			if err := cm.SaveConfig(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default configuration written to %s\n", cm.Path())
			return nil
		},
	}

	cmd.AddCommand(show, initCmd)
	return cmd
}

func NewProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage named code parameter profiles",
	}

	var (
		prime       uint64
		n, k        int
		description string
	)
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Save a profile",
		Args:  cobra.ExactArgs(1),
		Example: `  rscodec profile add small --prime 7 --n 6 --k 3
  rscodec encode --profile small 3 2 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateCodeParams(prime, n, k); err != nil {
				return err
			}
			cm, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			profile := &config.CodeProfile{
				Name:        args[0],
				Description: description,
				Prime:       prime,
				N:           n,
				K:           k,
			}
			if err := cm.AddProfile(profile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %s saved\n", args[0])
			return nil
		},
	}
	add.Flags().Uint64VarP(&prime, "prime", "p", 0, "Field modulus")
	add.Flags().IntVar(&n, "n", 0, "Codeword length")
	add.Flags().IntVar(&k, "k", 0, "Message length")
	add.Flags().StringVar(&description, "description", "", "Free-form description")

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			profiles := cm.ListProfiles()
			if wantJSON(cmd) {
				return outputJSONResult(cmd.OutOrStdout(), profiles)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPRIME\tN\tK\tT\tDESCRIPTION")
			for _, p := range profiles {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\n", p.Name, p.Prime, p.N, p.K, (p.N-p.K)/2, p.Description)
			}
			return tw.Flush()
		},
	}

	rm := &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"remove"},
		Short:   "Delete a profile",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cm.DeleteProfile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %s deleted\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, rm)
	return cmd
}
