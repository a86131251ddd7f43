package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"condactl/internal/logx"
	"condactl/internal/tools"
	"condactl/internal/verify"
)

var verifyStrict bool

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Probe the expected imports inside the environment",
		RunE:  runVerify,
	}

	cmd.Flags().BoolVar(&verifyStrict, "strict", false, "fail when any import probe fails")

	return cmd
}

func runVerify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, closer, err := logx.New()
	if err != nil {
		return err
	}
	defer closer.Close()

	cfgPath, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Printf("condactl verify: env=%s config=%s", cfg.Environment.Name, cfgPath)

	ctx = tools.WithMinimums(ctx, cfg.ToolMinimums())
	client, err := resolveClient(ctx, logger)
	if err != nil {
		return err
	}
	client.SetLogOutput(closer)

	env := cfg.Environment.Name
	exists, err := client.EnvExists(ctx, env)
	if err != nil {
		return fmt.Errorf("list environments: %w", err)
	}
	if !exists {
		return fmt.Errorf("environment %q does not exist; run `condactl up` first", env)
	}

	report := verify.Run(ctx, client, env)

	if outputJSON {
		if err := report.WriteJSON(cmd.OutOrStdout()); err != nil {
			return err
		}
	} else {
		report.WriteText(cmd.OutOrStdout())
	}

	if verifyStrict && !report.AllOK() {
		return fmt.Errorf("%d of %d import probes failed", report.FailureCount(), len(report.Results))
	}
	return nil
}
