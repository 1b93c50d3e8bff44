package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [content-pack.json]",
		Short: "Validate a content pack and print its statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := loadConfig(cmd).ContentPath
			if len(args) == 1 {
				path = args[0]
			}

			pack, err := loadPack(path)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(pack.Catalog().Stats(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
