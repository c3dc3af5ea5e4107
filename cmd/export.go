package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/tx-converter/internal/converter"
	"github.com/ginjaninja78/tx-converter/internal/logger"
	"github.com/ginjaninja78/tx-converter/internal/xlsxreport"
)

var (
	exportFrom string
	exportTo   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a transaction file to an XLSX report",
	Long: `Export decodes the source file and writes its transactions to the
"Transactions" sheet of a new XLSX workbook.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportFrom == "" || exportTo == "" {
			return fmt.Errorf("both --from and --to are required")
		}
		if filepath.Ext(exportTo) != ".xlsx" {
			return fmt.Errorf("report file must end in .xlsx: %s", exportTo)
		}

		txs, err := converter.ReadFile(exportFrom, codecOptions())
		if err != nil {
			return err
		}

		if err := xlsxreport.WriteReport(exportTo, txs); err != nil {
			return err
		}

		logger.Log.Infow("exported report", "source", exportFrom, "report", exportTo, "records", len(txs))
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d record(s) to %s\n", len(txs), exportTo)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Source file (.csv, .txt or .bin)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Report file (.xlsx)")
}
