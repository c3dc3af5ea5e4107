package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/tx-converter/internal/converter"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Decode files without writing anything",
	Long: `Validate decodes each file with the codec matching its extension and
reports the number of records. It stops at the first file that fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			txs, err := converter.ReadFile(path, codecOptions())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d record(s)\n", path, len(txs))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
