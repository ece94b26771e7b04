// file.go parses the project's compose file to discover service names
// and the compose project name. Service discovery lets the CLI reject a
// typoed service argument with the list of valid choices instead of a
// raw compose error, and the project name drives the Docker API label
// filter used by status and clean.
package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/mailgram/internal/model"
)

// File is the subset of a compose file this tool inspects. Everything
// else in the YAML is intentionally ignored.
type File struct {
	// Name is the optional top-level compose project name.
	Name string `yaml:"name"`

	// Services maps service names to their (unparsed) definitions.
	Services map[string]yaml.Node `yaml:"services"`

	// path is the file the definition was read from.
	path string
}

// ParseFile reads and parses a compose file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read compose file %q", path), err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid compose file %q", path), err)
	}
	if len(f.Services) == 0 {
		return nil, model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("compose file %q defines no services", path))
	}
	f.path = path
	return &f, nil
}

// ServiceNames returns the declared service names in sorted order.
func (f *File) ServiceNames() []string {
	names := make([]string, 0, len(f.Services))
	for name := range f.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasService reports whether the compose file declares the service.
func (f *File) HasService(name string) bool {
	_, ok := f.Services[name]
	return ok
}

// ResolveService validates a service argument against the compose file,
// returning an error that lists the valid services on a miss.
func (f *File) ResolveService(name string) error {
	if err := model.ValidateServiceName(name); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid service argument", err)
	}
	if !f.HasService(name) {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("service %q not found in %s (services: %s)",
				name, filepath.Base(f.path), strings.Join(f.ServiceNames(), ", ")))
	}
	return nil
}

// ProjectName returns the compose project name: the top-level name field
// when present, otherwise the normalized base name of the project
// directory, matching compose's own default.
func (f *File) ProjectName(projectDir string) string {
	if f.Name != "" {
		return f.Name
	}
	return NormalizeProjectName(filepath.Base(projectDir))
}

// NormalizeProjectName applies compose's project name normalization:
// lowercase, with characters outside [a-z0-9_-] replaced by "-".
func NormalizeProjectName(name string) string {
	name = strings.ToLower(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
