// Copyright 2026 The midlc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional `.midlc.yaml` sitting next to a schema root. CLI
// flags always win over whatever it sets; see Options.
type Config struct {
	Package string `yaml:"package"`
	Format  bool   `yaml:"format"`
	Color   string `yaml:"color"` // "never" disables color; any other value colors only a terminal
}

func defaultConfig() Config {
	return Config{Format: true, Color: "auto"}
}

// loadConfig reads explicitPath if given, otherwise "<schema dir>/.midlc.yaml"
// if it exists. A missing implicit config is not an error; a missing
// explicit one is.
func loadConfig(explicitPath, schemaPath string) (Config, error) {
	cfg := defaultConfig()

	path := explicitPath
	if path == "" {
		path = filepath.Join(filepath.Dir(schemaPath), ".midlc.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && explicitPath == "" {
			return cfg, nil
		}
		return cfg, fmt.Errorf("driver: reading config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("driver: parsing config %q: %w", path, err)
	}
	return cfg, nil
}
