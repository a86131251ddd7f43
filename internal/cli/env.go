package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"condactl/internal/config"
	"condactl/internal/paths"
	"condactl/pkg/envfile"
)

func newEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Inspect the effective environment descriptor",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the descriptor the next `up` run will reconcile against",
		RunE:  runEnvShow,
	})

	return cmd
}

type envShowPayload struct {
	Config      string            `json:"config"`
	Environment string            `json:"environment"`
	Python      string            `json:"python"`
	Channels    []string          `json:"channels"`
	Core        []string          `json:"core,omitempty"`
	Pip         []string          `json:"pip,omitempty"`
	Manifest    *manifestPayload  `json:"manifest,omitempty"`
	Minimums    map[string]string `json:"toolMinimums,omitempty"`
}

type manifestPayload struct {
	Path     string   `json:"path"`
	Name     string   `json:"name,omitempty"`
	Channels []string `json:"channels,omitempty"`
	Conda    []string `json:"conda,omitempty"`
	Pip      []string `json:"pip,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func runEnvShow(cmd *cobra.Command, _ []string) error {
	cfgPath, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	payload := envShowPayload{
		Config:      cfgPath,
		Environment: cfg.Environment.Name,
		Python:      cfg.Environment.Python,
		Channels:    cfg.Channels,
		Core:        specStrings(cfg.Packages.Core, config.Package.CondaSpec),
		Pip:         specStrings(cfg.Packages.Pip, config.Package.PipSpec),
		Minimums:    cfg.ToolMinimums(),
	}

	if manifest := paths.ResolveRelative(cfgPath, cfg.Manifest); cfg.Manifest != "" {
		payload.Manifest = loadManifestPayload(manifest)
	}

	if outputJSON {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printEnvShow(cmd, payload)
	return nil
}

func loadManifestPayload(path string) *manifestPayload {
	payload := &manifestPayload{Path: path}

	exists, err := paths.FileExists(path)
	if err != nil {
		payload.Error = err.Error()
		return payload
	}
	if !exists {
		payload.Error = "not found; imperative install path will be used"
		return payload
	}

	file, err := envfile.Load(path)
	if err != nil {
		payload.Error = err.Error()
	}
	payload.Name = file.Name
	payload.Channels = file.Channels
	payload.Conda = file.Conda
	payload.Pip = file.Pip
	return payload
}

func specStrings(pkgs []config.Package, spec func(config.Package) string) []string {
	var out []string
	for _, p := range pkgs {
		out = append(out, spec(p))
	}
	return out
}

func printEnvShow(cmd *cobra.Command, payload envShowPayload) {
	bold := lipgloss.NewStyle().Bold(true)
	faint := lipgloss.NewStyle().Faint(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	cmd.Println(bold.Render("Environment:") + " " + payload.Environment + " (python " + payload.Python + ")")
	cmd.Println(faint.Render("  config: " + payload.Config))
	if len(payload.Channels) > 0 {
		cmd.Println(bold.Render("Channels:"))
		for _, ch := range payload.Channels {
			cmd.Println("  " + ch)
		}
	}
	if len(payload.Core) > 0 {
		cmd.Println(bold.Render("Core packages:"))
		for _, spec := range payload.Core {
			cmd.Println("  " + spec)
		}
	}
	if len(payload.Pip) > 0 {
		cmd.Println(bold.Render("Pip packages:"))
		for _, spec := range payload.Pip {
			cmd.Println("  " + spec)
		}
	}
	if len(payload.Minimums) > 0 {
		cmd.Println(bold.Render("Tool minimums:"))
		for tool, min := range payload.Minimums {
			cmd.Println("  " + tool + " >= " + min)
		}
	}

	if payload.Manifest == nil {
		return
	}
	m := payload.Manifest
	cmd.Println(bold.Render("Manifest:") + " " + m.Path)
	if m.Error != "" {
		cmd.Println(yellow.Render("  " + m.Error))
		return
	}
	if m.Name != "" {
		cmd.Println(faint.Render("  name: " + m.Name))
	}
	for _, spec := range m.Conda {
		cmd.Println("  " + spec)
	}
	for _, spec := range m.Pip {
		cmd.Println("  pip: " + spec)
	}
}
