package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-drift/pagestatus/cmd/pagestatus/internal/config"
	"github.com/go-drift/pagestatus/cmd/pagestatus/internal/templates"
)

func init() {
	RegisterCommand(&cobra.Command{
		Use:   "init <directory>",
		Short: "Create a project with a starter scenario",
		Long: `Create a pagestatus project in a new directory.

This command creates:
  - pagestatus.yaml with the default window size
  - scenarios/<name>.yaml, a starter scenario

The project name is derived from the directory basename.

Examples:
  pagestatus init inbox
  pagestatus init ./projects/inbox`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), args)
		},
	})
}

// runInit creates a new project. The project name is derived from the
// directory's basename.
func runInit(w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("directory is required\n\nUsage: pagestatus init <directory>")
	}

	raw := args[0]
	if strings.HasPrefix(raw, "~") {
		return fmt.Errorf("tilde (~) is not expanded by pagestatus; use an absolute path or $HOME instead")
	}
	dir := filepath.Clean(raw)
	if err := validateDirectory(dir); err != nil {
		return err
	}
	name := filepath.Base(dir)
	if err := validateProjectName(name); err != nil {
		return fmt.Errorf("invalid project name %q (derived from directory basename): %w", name, err)
	}
	if err := scaffoldProject(w, dir, name); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Next steps:\n")
	fmt.Fprintf(w, "  cd %s\n", dir)
	fmt.Fprintf(w, "  pagestatus render %s\n", name)
	return nil
}

// scaffoldProject creates the project directory and writes the template
// files. It has no side effects beyond the filesystem.
func scaffoldProject(w io.Writer, dir, name string) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("directory %q already exists", dir)
	}

	fmt.Fprintf(w, "Creating pagestatus project: %s\n", name)

	if err := os.MkdirAll(filepath.Join(dir, "scenarios"), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data := &templates.TemplateData{
		Name:   name,
		Width:  config.DefaultWidth,
		Height: config.DefaultHeight,
	}

	initFiles := []struct {
		templatePath string
		destName     string
	}{
		{"init/pagestatus.yaml.tmpl", config.FileName},
		{"init/scenario.yaml.tmpl", filepath.Join("scenarios", name+".yaml")},
	}

	for _, f := range initFiles {
		if err := writeInitTemplate(dir, f.templatePath, f.destName, data); err != nil {
			safeRemoveAll(dir)
			return err
		}
		fmt.Fprintf(w, "  Created %s\n", f.destName)
	}

	return nil
}

func writeInitTemplate(projectDir, templatePath, destName string, data *templates.TemplateData) error {
	content, err := templates.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", templatePath, err)
	}

	out, err := templates.ProcessTemplate(string(content), data)
	if err != nil {
		return fmt.Errorf("failed to process template %s: %w", templatePath, err)
	}

	destPath := filepath.Join(projectDir, destName)
	if err := os.WriteFile(destPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", destName, err)
	}

	return nil
}

// validateDirectory rejects directory paths that would be dangerous to create or
// clean up: filesystem roots, the current and parent directory, and root-level
// absolute paths such as /etc.
func validateDirectory(dir string) error {
	switch dir {
	case "", "/", ".", "..":
		return fmt.Errorf("directory %q is not a valid project location", dir)
	}
	if isVolumeRoot(dir) {
		return fmt.Errorf("directory %q is not a valid project location", dir)
	}
	if filepath.IsAbs(dir) && isVolumeRoot(filepath.Dir(dir)) {
		return fmt.Errorf("refusing to create project at root-level path %q", dir)
	}
	return nil
}

// isVolumeRoot reports whether dir is a filesystem root. On Unix this is "/",
// on Windows this covers drive roots like "C:\" and the bare root "\".
func isVolumeRoot(dir string) bool {
	return dir == filepath.VolumeName(dir)+string(filepath.Separator)
}

// safeRemoveAll removes a directory only if the path passes validateDirectory.
// It is called on cleanup paths, so it never reports an error.
func safeRemoveAll(dir string) {
	if validateDirectory(dir) != nil {
		return
	}
	os.RemoveAll(dir)
}

var validProjectName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// validateProjectName checks that a project name starts with a letter and
// contains only letters, digits, underscores and hyphens.
func validateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("project name cannot start with a dot")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("project name cannot start with a hyphen")
	}
	if !validProjectName.MatchString(name) {
		return fmt.Errorf("project name must start with a letter and contain only letters, numbers, underscores, and hyphens")
	}
	return nil
}
