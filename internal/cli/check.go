package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"condactl/internal/logx"
	"condactl/internal/tools"
)

var checkStrict bool

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check external tool availability",
		RunE:  runCheck,
	}

	cmd.Flags().BoolVar(&checkStrict, "strict", false, "fail when required tools are missing or outdated")

	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, closer, err := logx.New()
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Printf("condactl check")

	cfgPath, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Printf("loaded config %s version=%d", cfgPath, cfg.Version)

	detectCtx := tools.WithMinimums(ctx, cfg.ToolMinimums())
	statuses, err := tools.Detect(detectCtx)
	if err != nil {
		return err
	}

	for _, st := range statuses {
		logger.Printf("tool %s: found=%v version=%s satisfied=%v error=%s", st.Tool, st.Found, st.Version, st.Satisfied, st.Error)
	}

	if checkStrict {
		if err := ensureStrict(statuses); err != nil {
			return err
		}
	}

	if outputJSON {
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printCheckResult(cmd, statuses)
	return nil
}

func printCheckResult(cmd *cobra.Command, statuses []tools.Status) {
	bold := lipgloss.NewStyle().Bold(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	faint := lipgloss.NewStyle().Faint(true)

	for _, st := range statuses {
		switch {
		case st.Found && st.Satisfied:
			headline := green.Render("✓") + " " + bold.Render(st.Tool)
			if st.Version != "" {
				headline += " v" + st.Version
			}
			if st.Minimum != "" {
				headline += faint.Render(" (minimum: " + st.Minimum + ")")
			}
			cmd.Println(headline)

			detail := st.Path
			if st.Executable != "" && st.Executable != st.Tool {
				detail = st.Executable + " · " + detail
			}
			cmd.Println(faint.Render("  " + detail))

		case !st.Required:
			headline := yellow.Render("–") + " " + bold.Render(st.Tool)
			if st.Error != "" {
				headline += faint.Render(" (" + st.Error + ")")
			}
			cmd.Println(headline)
			for _, hint := range st.Hints {
				cmd.Println(faint.Render("  " + hint))
			}

		default:
			headline := red.Render("✗") + " " + bold.Render(st.Tool)
			if st.Error != "" {
				headline += red.Render(" (" + st.Error + ")")
			}
			cmd.Println(headline)
			for _, hint := range st.Hints {
				cmd.Println(faint.Render("  " + hint))
			}
		}
		cmd.Println()
	}
}

func ensureStrict(statuses []tools.Status) error {
	var failures []string
	for _, st := range statuses {
		if !st.Required || (st.Found && st.Satisfied) {
			continue
		}
		msg := st.Tool
		if st.Error != "" {
			msg = fmt.Sprintf("%s (%s)", st.Tool, st.Error)
		}
		failures = append(failures, msg)
	}
	if len(failures) == 0 {
		return nil
	}
	return errors.New("tool check failed: " + strings.Join(failures, ", "))
}
