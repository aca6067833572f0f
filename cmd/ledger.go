package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"zipcull.dev/pkg/zipcull/internal/adapter"
)

const ledgerLongDescription = `Show the archives recorded in the ledger. Every path listed here is
skipped by future runs; delete the ledger file to re-check everything.`

// ledgerCmd represents the ledger command.
var ledgerCmd = newLedgerCmd()

func newLedgerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ledger",
		Short: "Show already-processed archives",
		Long:  ledgerLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger := adapter.NewFileLedger(viper.GetString(ledgerFlagName))

			entries, err := ledger.Load()
			if err != nil {
				return fmt.Errorf("load ledger: %w", err)
			}

			if len(entries) == 0 {
				cmd.Printf("Ledger %s is empty\n", ledger.Path())
				return nil
			}

			paths := make([]string, 0, len(entries))
			for path := range entries {
				paths = append(paths, string(path))
			}

			// Simple sort by string comparison
			for i := 0; i < len(paths); i++ {
				for j := i + 1; j < len(paths); j++ {
					if paths[i] > paths[j] {
						paths[i], paths[j] = paths[j], paths[i]
					}
				}
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Processed Archive"})
			table.SetBorder(false)
			table.SetCenterSeparator("")
			table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT})

			for _, path := range paths {
				table.Append([]string{path})
			}

			table.SetFooter([]string{fmt.Sprintf("Total %d", len(paths))})
			table.Render()

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
}
