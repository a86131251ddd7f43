package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"condactl/internal/condaenv"
	"condactl/internal/config"
	"condactl/internal/paths"
	"condactl/internal/reconcile"
	"condactl/internal/tools"
)

func loadConfig() (string, config.Config, error) {
	cfgPath, err := paths.ResolveConfig(configFlag)
	if err != nil {
		return "", config.Config{}, err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return "", config.Config{}, err
	}
	return cfgPath, cfg, nil
}

// ensureValid aborts on validation errors and surfaces warnings on stderr.
func ensureValid(cfg config.Config, cfgPath string, warn func(format string, v ...any)) error {
	var errs []string
	for _, v := range cfg.ValidateStrict(cfgPath) {
		switch v.Level {
		case "warning":
			warn("warning: %s", v.Message)
		case "error":
			errs = append(errs, v.Message)
		}
	}
	if len(errs) > 0 {
		return errors.New("config validation failed: " + strings.Join(errs, "; "))
	}
	return nil
}

func buildDescriptor(cfgPath string, cfg config.Config) reconcile.Descriptor {
	return reconcile.Descriptor{
		Name:         cfg.Environment.Name,
		Python:       cfg.Environment.Python,
		ManifestPath: paths.ResolveRelative(cfgPath, strings.TrimSpace(cfg.Manifest)),
		Channels:     cfg.Channels,
		Core:         cfg.Packages.Core,
		Pip:          cfg.Packages.Pip,
	}
}

// resolveClient probes for conda and builds a client against it. Used by the
// commands that talk to an existing environment without running the full
// reconciler.
func resolveClient(ctx context.Context, logger condaenv.Logger) (*condaenv.Client, error) {
	st, err := tools.Resolve(ctx, "conda")
	if err != nil {
		return nil, err
	}
	if !st.Found || !st.Satisfied {
		reason := "conda is not installed"
		if st.Found {
			reason = st.Error
		}
		return nil, &reconcile.FatalError{
			State:  reconcile.StateProbeTools,
			Reason: reason,
			Hints:  st.Hints,
		}
	}
	client, err := condaenv.NewClient(st.Path, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize conda client: %w", err)
	}
	return client, nil
}
