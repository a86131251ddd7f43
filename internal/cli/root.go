package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"condactl/internal/reconcile"
)

var (
	configFlag string
	outputJSON bool
)

// Execute runs the root cobra command. Fatal preconditions exit 1 with
// remediation hints; everything else degrades to report entries.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var fatal *reconcile.FatalError
		if errors.As(err, &fatal) {
			for _, hint := range fatal.Hints {
				fmt.Fprintln(os.Stderr, "  "+hint)
			}
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "condactl",
		Short: "Conda environment reconciler for the FER demo stack",
	}

	cmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to condactl.yaml")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")

	cmd.AddCommand(newUpCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newVerifyCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newEnvCmd())

	return cmd
}
