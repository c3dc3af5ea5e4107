// =============================================================================
// Transaction Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Transaction Converter CLI. It hands
// control to the Cobra command tree in the cmd package.
//
// USAGE:
//   converter convert   - Convert one file to another format
//   converter compare   - Check whether two files hold the same transactions
//   converter validate  - Decode files without writing anything
//   converter batch     - Convert every file in the input directory
//   converter export    - Write a file's transactions to an XLSX report
//   converter version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Codecs, dispatcher, configuration and logging
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/tx-converter/cmd"
)

func main() {
	cmd.Execute()
}
