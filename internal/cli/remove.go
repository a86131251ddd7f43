package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"condactl/internal/logx"
	"condactl/internal/reconcile"
	"condactl/internal/tools"
)

var removeYes bool

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Delete the named environment",
		RunE:  runRemove,
	}

	cmd.Flags().BoolVar(&removeYes, "yes", false, "Answer yes to the confirmation prompt")

	return cmd
}

func runRemove(cmd *cobra.Command, _ []string) error {
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
	logger.Printf("condactl remove: env=%s config=%s", cfg.Environment.Name, cfgPath)

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
		cmd.Printf("environment %q does not exist; nothing to remove\n", env)
		return nil
	}

	if !removeYes {
		ok := askConfirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
			fmt.Sprintf("Remove environment %q and all of its packages?", env))
		if !ok {
			cmd.Println("aborted")
			return nil
		}
	}

	if err := client.RemoveEnv(ctx, env); err != nil {
		return &reconcile.FatalError{
			State:  reconcile.StateProbeExisting,
			Reason: fmt.Sprintf("failed to remove environment %q", env),
			Err:    err,
		}
	}

	cmd.Printf("environment %q removed\n", env)
	return nil
}
