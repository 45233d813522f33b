// Package profile loads container creation presets from a YAML file.
package profile

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Profile is one named creation preset applied when a container is created.
type Profile struct {
	Name        string            `yaml:"-"`
	Privileged  bool              `yaml:"privileged"`
	NetworkHost bool              `yaml:"network_host"`
	Volumes     []string          `yaml:"volumes"` // "host:container" pairs
	Devices     []string          `yaml:"devices"`
	Envs        map[string]string `yaml:"envs"`
	Caps        []string          `yaml:"capabilities"`
}

// Default is the profile used when the user selects none.
func Default() Profile {
	return Profile{Name: "default", NetworkHost: true}
}

// Load reads the profile file at path. A missing file yields only the
// default profile; that is not an error.
func Load(path string) (map[string]Profile, error) {
	profiles := map[string]Profile{"default": Default()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return profiles, nil
		}
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}

	var parsed map[string]Profile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}
	for name, p := range parsed {
		p.Name = name
		profiles[name] = p
	}
	return profiles, nil
}

// EnvList flattens the Envs map into KEY=VALUE pairs in stable order.
func (p Profile) EnvList() []string {
	keys := make([]string, 0, len(p.Envs))
	for k := range p.Envs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	envs := make([]string, 0, len(keys))
	for _, k := range keys {
		envs = append(envs, fmt.Sprintf("%s=%s", k, p.Envs[k]))
	}
	return envs
}
