package cli

import (
	"context"
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"condactl/internal/condaenv"
	"condactl/internal/logx"
	"condactl/internal/paths"
	"condactl/internal/reconcile"
	"condactl/internal/tools"
	"condactl/internal/tui"
)

var (
	upRecreate   bool
	upSkipVerify bool
	upYes        bool
	upNoProgress bool
)

func newUpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Reconcile the environment against the descriptor",
		RunE:  runUp,
	}

	cmd.Flags().BoolVar(&upRecreate, "recreate", false, "Remove and recreate the environment without prompting")
	cmd.Flags().BoolVar(&upSkipVerify, "skip-verify", false, "Skip the import verification step")
	cmd.Flags().BoolVar(&upYes, "yes", false, "Answer yes to all prompts")
	cmd.Flags().BoolVar(&upNoProgress, "no-progress", false, "Disable interactive progress output")

	return cmd
}

func runUp(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, logFile, err := logx.New()
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger.Printf("condactl up: recreate=%v skip-verify=%v yes=%v", upRecreate, upSkipVerify, upYes)

	cfgPath, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Printf("loaded config %s version=%d", cfgPath, cfg.Version)

	if err := ensureValid(cfg, cfgPath, func(format string, v ...any) {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", v...)
	}); err != nil {
		return err
	}

	desc := buildDescriptor(cfgPath, cfg)
	ctx = tools.WithMinimums(ctx, cfg.ToolMinimums())

	rec := reconcile.New(logger)
	rec.LogOutput = logFile

	opts := reconcile.Options{
		ForceRecreate:    upRecreate,
		SkipVerification: upSkipVerify,
		AssumeYes:        upYes,
	}

	// Resolve the recreate prompt up front, before bubbletea owns stdin.
	answered, answer := false, false
	if !opts.ForceRecreate && !opts.AssumeYes {
		if client, cerr := resolveClient(ctx, logger); cerr == nil {
			client.SetLogOutput(logFile)
			rec.NewClient = func(string) (reconcile.Client, error) { return client, nil }
			if exists, eerr := client.EnvExists(ctx, desc.Name); eerr == nil && exists {
				answer = askConfirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
					fmt.Sprintf("Environment %q already exists. Remove and recreate it?", desc.Name))
				answered = true
			}
		}
	}
	rec.Confirm = func(prompt string) bool {
		if answered {
			return answer
		}
		return askConfirm(cmd.InOrStdin(), cmd.ErrOrStderr(), prompt)
	}

	mode := tui.DetectMode(cmd.OutOrStdout(), upNoProgress, outputJSON)

	var result reconcile.Result
	var runErr error

	switch mode {
	case tui.ModeTUI:
		model := buildUpModel(desc)
		teaErr := tui.RunWithWork(cmd.OutOrStdout(), model, func(send func(tea.Msg)) {
			rec.OnEvent = func(ev reconcile.Event) {
				send(tui.RowUpdateMsg{Key: ev.Key, Fields: map[string]string{
					"STATUS": ev.Status,
					"DETAIL": tui.TruncateWithEllipsis(ev.Detail, 48),
				}})
			}
			result, runErr = rec.Reconcile(ctx, desc, opts)
			if runErr != nil {
				send(tui.ErrorMsg{Err: runErr})
				return
			}
			for _, msg := range finalRowUpdates(desc, result) {
				send(msg)
			}
		})
		if runErr == nil {
			runErr = teaErr
		}

	case tui.ModePlain:
		rec.OnState = func(state reconcile.State) {
			fmt.Fprintf(cmd.ErrOrStderr(), "==> %s\n", state)
		}
		rec.OnEvent = func(ev reconcile.Event) {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %s\n", ev.Key, ev.Status)
		}
		result, runErr = rec.Reconcile(ctx, desc, opts)

	default: // ModeJSON
		result, runErr = rec.Reconcile(ctx, desc, opts)
	}

	if runErr != nil {
		return runErr
	}
	return writeUpResult(cmd, desc.Name, result)
}

// buildUpModel pre-populates one row per install step. Rows the run never
// touches are marked skipped at the end.
func buildUpModel(desc reconcile.Descriptor) tui.ProgressModel {
	model := tui.NewProgressModel("condactl up", []tui.Column{
		{Header: "STEP", Width: 18},
		{Header: "STATUS", Width: 10},
		{Header: "DETAIL", Width: 48},
	})

	model.AddRow("env", []string{desc.Name, "pending", ""})
	if manifestPresent(desc) {
		model.AddRow("manifest", []string{"manifest", "pending", desc.ManifestPath})
	}
	if len(desc.Core) > 0 {
		model.AddRow("core", []string{"core packages", "pending", ""})
	}
	for _, p := range desc.Pip {
		model.AddRow(p.Name, []string{p.Name, "pending", ""})
	}
	return model
}

func manifestPresent(desc reconcile.Descriptor) bool {
	if desc.ManifestPath == "" {
		return false
	}
	exists, err := paths.FileExists(desc.ManifestPath)
	return err == nil && exists
}

func finalRowUpdates(desc reconcile.Descriptor, result reconcile.Result) []tea.Msg {
	status := func(key, status string) tea.Msg {
		return tui.RowUpdateMsg{Key: key, Fields: map[string]string{"STATUS": status}}
	}

	var msgs []tea.Msg
	switch result.Path {
	case reconcile.PathDeclarative:
		msgs = append(msgs, status("env", "created"))
		if len(desc.Core) > 0 {
			msgs = append(msgs, status("core", "skipped"))
		}
		for _, p := range desc.Pip {
			msgs = append(msgs, status(p.Name, "skipped"))
		}
	case reconcile.PathExisting:
		msgs = append(msgs, status("env", "kept"))
		if manifestPresent(desc) {
			msgs = append(msgs, status("manifest", "skipped"))
		}
		if len(desc.Core) > 0 {
			msgs = append(msgs, status("core", "skipped"))
		}
		for _, p := range desc.Pip {
			msgs = append(msgs, status(p.Name, "skipped"))
		}
	}
	return msgs
}

type outcomePayload struct {
	Kind    string `json:"kind"`
	Package string `json:"package,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func writeUpResult(cmd *cobra.Command, env string, result reconcile.Result) error {
	if outputJSON {
		payload := struct {
			Environment string           `json:"environment"`
			Path        string           `json:"path"`
			Recreated   bool             `json:"recreated"`
			Outcomes    []outcomePayload `json:"outcomes,omitempty"`
			Report      any              `json:"report"`
		}{
			Environment: env,
			Path:        string(result.Path),
			Recreated:   result.Recreated,
			Report:      result.Report,
		}
		for _, o := range result.Outcomes {
			payload.Outcomes = append(payload.Outcomes, outcomePayload{
				Kind:    outcomeKindString(o),
				Package: o.Package,
				Reason:  o.Reason,
			})
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	bold := lipgloss.NewStyle().Bold(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bold.Render("Environment:")+" "+env+" ("+string(result.Path)+")")

	for _, o := range result.Outcomes {
		fmt.Fprintln(out, yellow.Render("warning: ")+o.String())
	}

	result.Report.WriteText(out)
	return nil
}

func outcomeKindString(o condaenv.Outcome) string {
	switch o.Kind {
	case condaenv.OutcomeSuccess:
		return "success"
	case condaenv.OutcomeDeclarativeFailed:
		return "declarative-failed"
	case condaenv.OutcomePackageFailed:
		return "package-failed"
	default:
		return "unknown"
	}
}
