package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/tx-converter/internal/converter"
)

var (
	convertFrom string
	convertTo   string
)

var convertCmd = &cobra.Command{
	Use:   "convert [source destination]",
	Short: "Convert one transaction file to another format",
	Long: `Convert reads the source file, decodes it with the codec matching its
extension, and writes the destination file in the format matching its
extension. The paths can be given as flags or as two arguments.

The destination is only created when the whole source decodes and encodes
without error.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, dst, err := resolvePair(convertFrom, convertTo, args, "--from", "--to")
		if err != nil {
			return err
		}

		result := converter.Convert(src, dst, codecOptions())
		if result.Error != nil {
			return result.Error
		}

		fmt.Fprintf(cmd.OutOrStdout(), "converted %d record(s): %s (%s) -> %s (%s)\n",
			result.Stats.Records,
			src, result.Stats.SourceFormat,
			dst, result.Stats.TargetFormat)
		return nil
	},
}

// resolvePair takes two paths from flags or, when both flags are empty, from
// exactly two positional arguments.
func resolvePair(first, second string, args []string, firstFlag, secondFlag string) (string, string, error) {
	if first == "" && second == "" {
		if len(args) == 2 {
			return args[0], args[1], nil
		}
		return "", "", fmt.Errorf("both %s and %s are required", firstFlag, secondFlag)
	}
	if len(args) > 0 {
		return "", "", errors.New("give paths either as flags or as two arguments, not both")
	}
	if first == "" || second == "" {
		return "", "", fmt.Errorf("both %s and %s are required", firstFlag, secondFlag)
	}
	return first, second, nil
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertFrom, "from", "", "Source file (.csv, .txt or .bin)")
	convertCmd.Flags().StringVar(&convertTo, "to", "", "Destination file (.csv, .txt or .bin)")
}
