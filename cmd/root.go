// Package cmd provides the root command and CLI setup for zipcull.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ledgerPathFlag is a root-level flag shared by commands that read/write the
// ledger.
var ledgerPathFlag string

// verboseFlag enables debug logging when set.
var verboseFlag bool

const rootLongDescription = `Zipcull sweeps a directory tree for zip archives, asks a remote
text-completion service which language each filename suggests, and deletes
archives whose language is not in the keep-set you choose. Every processed
path is recorded in an append-only ledger so interrupted or repeated runs
skip it.

Deletion is unconditional once an archive is classified as not kept: there
is no dry-run, no confirmation and no undo.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zipcull",
		Short: "Remove archives not in your chosen languages",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(
			&ledgerPathFlag, ledgerFlagName,
			viper.GetString(ledgerFlagName),
			"ledger file recording already-processed archives",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(ledgerFlagName), ledgerFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v",
		viper.GetBool(logVerboseKey), "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
