package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/tx-converter/internal/converter"
)

var (
	compareFile1 string
	compareFile2 string
)

var compareCmd = &cobra.Command{
	Use:   "compare [file1 file2]",
	Short: "Check whether two files hold the same transactions",
	Long: `Compare decodes both files, each with the codec matching its extension,
and prints "records match" when they hold the same transactions in the same
order, or "records differ" otherwise. Either outcome exits with status 0;
a file that cannot be decoded is an error.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, b, err := resolvePair(compareFile1, compareFile2, args, "--file1", "--file2")
		if err != nil {
			return err
		}

		result, err := converter.Compare(a, b, codecOptions())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.Equal {
			fmt.Fprintln(out, "records match")
			return nil
		}

		fmt.Fprintln(out, "records differ")
		if verbose {
			fmt.Fprintf(out, "first difference at record %d (%d vs %d records)\n",
				result.FirstMismatch, result.LeftCount, result.RightCount)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&compareFile1, "file1", "", "First file")
	compareCmd.Flags().StringVar(&compareFile2, "file2", "", "Second file")
}
