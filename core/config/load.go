package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Path returns where the configuration is read from: $RASH_CONFIG if set,
// otherwise config.yaml in the user's config directory.
func Path(getenv func(string) string) string {
	if p := getenv(EnvConfig); p != "" {
		return p
	}
	home := getenv("HOME")
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "rash", ConfigurationName)
}

// Load reads the configuration at path from fsys. Values missing from the
// file keep their defaults. A missing file isn't an error.
func Load(fsys afero.Fs, path string) (*Configuration, error) {
	out := Default()
	if path == "" {
		return out, nil
	}

	// If given a directory, look for config.yaml inside it.
	if info, err := fsys.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, ConfigurationName)
	}

	configContents, err := afero.ReadFile(fsys, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return out, nil
	case err != nil:
		return nil, err
	}

	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadFromEnv loads the configuration from the OS filesystem using the
// process environment to find it.
func LoadFromEnv() (*Configuration, error) {
	return Load(afero.NewOsFs(), Path(os.Getenv))
}
