package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"zipcull.dev/pkg/zipcull/internal/adapter"
	"zipcull.dev/pkg/zipcull/internal/controller"
	"zipcull.dev/pkg/zipcull/internal/domain"
	m "zipcull.dev/pkg/zipcull/internal/model"
)

const runLongDescription = `Sweep the given root (default: current directory) for zip archives and
remove every archive whose filename the remote service classifies outside
the chosen languages.

Pick the keep-set interactively, or pass it with --language to skip the
checklist. Selecting no language exits immediately without touching the
filesystem. Already-ledgered archives are skipped without a service call.`

// workflow is the sweep implementation. Tests swap it for a mock; when nil
// the run command wires the real adapters.
var workflow domain.Workflow

var runLanguagesFlag []string
var runPlainFlag bool

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [root]",
		Short: "Sweep archives and remove unwanted languages",
		Long:  runLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogger("", viper.GetBool(logVerboseKey))

			root := m.Path(".")
			if len(args) == 1 {
				root = m.Path(args[0])
			}

			ui := selectUI(cmd, runPlainFlag)

			keep, err := resolveKeepSet(cmd.Context(), ui, runLanguagesFlag)
			if err != nil {
				return err
			}

			if keep.Empty() {
				cmd.Println("No languages selected. Exiting...")
				return nil
			}

			ui.DisplaySelection(cmd.Context(), keep)

			wf := workflow
			if wf == nil {
				wf = newSweeper(ui)
			}

			_, err = wf.Sweep(cmd.Context(), domain.SweepArgs{
				Root:       root,
				Keep:       keep,
				Extensions: viper.GetStringSlice(extensionsConfigKey),
			})

			return err
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&runLanguagesFlag, languageFlagName, "L", nil,
		"language to keep; repeatable, skips the interactive checklist")
	cmd.Flags().BoolVar(&runPlainFlag, plainFlagName, false,
		"force the plain numbered prompt instead of the full-screen checklist")
}

// selectUI picks the interactive checklist on a terminal and the plain
// prompt everywhere else.
func selectUI(cmd *cobra.Command, plain bool) controller.UI {
	if plain || !controller.IsTTY(os.Stdout) {
		return controller.NewSimpleUI(cmd, cmd.InOrStdin())
	}

	return controller.NewTUI(cmd.OutOrStdout(), nil)
}

// resolveKeepSet builds the keep-set from the --language flags, falling back
// to the interactive selector.
func resolveKeepSet(ctx context.Context, ui controller.UI, flagged []string) (m.LanguageSet, error) {
	if len(flagged) > 0 {
		return m.NewLanguageSet(flagged...), nil
	}

	chosen, err := ui.SelectLanguages(ctx, m.KnownLanguages)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(chosen))
	for _, label := range chosen {
		labels = append(labels, string(label))
	}

	return m.NewLanguageSet(labels...), nil
}

// newSweeper wires the real filesystem, ledger and remote classifier.
func newSweeper(ui controller.UI) domain.Workflow {
	ledger := adapter.NewFileLedger(viper.GetString(ledgerFlagName))

	classifier := adapter.NewRemoteClassifier(
		viper.GetString(endpointConfigKey),
		viper.GetString(modelConfigKey),
		viper.GetInt(attemptsConfigKey),
		viper.GetDuration(delayConfigKey),
		viper.GetDuration(timeoutConfigKey),
	)

	return domain.NewSweeper(adapter.NewLocalArchiveFS(), ledger, classifier, ui)
}
