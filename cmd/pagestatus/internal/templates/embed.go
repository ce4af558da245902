// Package templates provides the embedded demo scenarios and the files
// written by pagestatus init.
package templates

import (
	"embed"
	"io/fs"
	"path"
	"strings"
	"text/template"
)

//go:embed scenarios/*.yaml init/*
var FS embed.FS

// TemplateData contains the data for init template substitution.
type TemplateData struct {
	Name   string  // e.g., "inbox"
	Width  float64 // root width in pixels
	Height float64 // root height in pixels
}

// ProcessTemplate processes a template string with the given data.
func ProcessTemplate(content string, data *TemplateData) (string, error) {
	tmpl, err := template.New("").Parse(content)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// ListFiles returns all files in the embedded filesystem under the given path.
func ListFiles(root string) ([]string, error) {
	var files []string

	err := fs.WalkDir(FS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})

	return files, err
}

// ReadFile reads a file from the embedded filesystem.
func ReadFile(name string) ([]byte, error) {
	return FS.ReadFile(name)
}

// DemoScenarios lists the demo panes in display order.
var DemoScenarios = []string{"linear", "frame", "constraint", "coordinator"}

// ScenarioPath returns the embedded path of a demo scenario.
func ScenarioPath(name string) string {
	return path.Join("scenarios", name+".yaml")
}

// GetScenarioFiles returns the list of embedded scenario files.
func GetScenarioFiles() ([]string, error) {
	return ListFiles("scenarios")
}

// GetInitFiles returns the list of init template files.
func GetInitFiles() ([]string, error) {
	return ListFiles("init")
}

// OutputName returns the file an init template is written to.
func OutputName(name string) string {
	return strings.TrimSuffix(path.Base(name), ".tmpl")
}
