package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const uiDir = "internal/ui"

func GenCmd() *cobra.Command {
	var force bool

	gen := &cobra.Command{
		Use:   "gen",
		Short: "Generate Go code from the templ components",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(force)
		},
	}

	gen.Flags().BoolVarP(&force, "force", "f", false, "regenerate even when the generated files are current")
	return gen
}

func runGen(force bool) error {
	stale, err := staleTemplates(uiDir)
	if err != nil {
		return err
	}
	if !force && len(stale) == 0 {
		fmt.Println("[templ] skipped, generated code is current")
		return nil
	}

	start := time.Now()
	// templ is pinned with a tool directive in go.mod
	templ := exec.Command("go", "tool", "templ", "generate", "-path", uiDir)
	templ.Stdout = os.Stdout
	templ.Stderr = os.Stderr
	if err := templ.Run(); err != nil {
		return fmt.Errorf("templ generate: %w", err)
	}

	fmt.Printf("[templ] done (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// staleTemplates lists .templ files under root whose _templ.go output is
// missing or older than the source.
func staleTemplates(root string) ([]string, error) {
	var stale []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".templ") {
			return nil
		}

		src, err := d.Info()
		if err != nil {
			return err
		}
		out, err := os.Stat(strings.TrimSuffix(path, ".templ") + "_templ.go")
		if err != nil || src.ModTime().After(out.ModTime()) {
			stale = append(stale, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return stale, nil
}
