package module

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional project-level `solis.yaml` file the resolver
// consults for a stdlib root override, extra search paths, and a prelude
// root (spec.md §6's resolver priority list; SPEC_FULL.md A.3). Absence
// of the file is not an error: LoadConfig returns the zero Config, which
// resolveModule falls back to built-in defaults for.
type Config struct {
	StdlibRoot   string   `yaml:"stdlibRoot"`
	SearchPaths  []string `yaml:"searchPaths"`
	PreludeRoot  string   `yaml:"preludeRoot"`
}

// LoadConfig reads solis.yaml from dir, if present.
func LoadConfig(dir string) (Config, error) {
	path := dir + string(os.PathSeparator) + "solis.yaml"
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
