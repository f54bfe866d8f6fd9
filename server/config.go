/*
 * Copyright 2026 The Inkwell Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package server

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/inkwell-team/inkwell/server/backend/ai"
	"github.com/inkwell-team/inkwell/server/profiling"
)

// Below are the default values of the Inkwell config.
const (
	DefaultPort          = 8080
	DefaultProfilingPort = 8081
)

// Config is the configuration for creating an Inkwell instance.
type Config struct {
	// Port is the port the HTTP and websocket endpoints listen on.
	Port int `yaml:"Port"`

	Profiling *profiling.Config `yaml:"Profiling"`
	AI        *ai.Config        `yaml:"AI"`
}

// NewConfig returns a Config struct with the default values.
func NewConfig() *Config {
	return newConfig(DefaultPort, DefaultProfilingPort)
}

// NewConfigFromFile returns a Config struct for the given config file.
func NewConfigFromFile(path string) (*Config, error) {
	conf := &Config{}
	bytes, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(bytes, conf); err != nil {
		return nil, fmt.Errorf("unmarshal config file %s: %w", path, err)
	}

	conf.ensureDefaultValue()
	return conf, nil
}

// Validate returns an error if the given config is invalid.
func (c *Config) Validate() error {
	if c.Port < 1 || 65535 < c.Port {
		return fmt.Errorf("must be between 1 and 65535, given %d: invalid port number", c.Port)
	}

	if c.Profiling != nil {
		if err := c.Profiling.Validate(); err != nil {
			return err
		}
	}
	if c.AI != nil {
		if err := c.AI.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Addr returns the listen address of the server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ensureDefaultValue sets the value of the option to which the default value
// should be applied when the user does not input it.
func (c *Config) ensureDefaultValue() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Profiling != nil && c.Profiling.Port == 0 {
		c.Profiling.Port = DefaultProfilingPort
	}
	if c.AI == nil {
		c.AI = &ai.Config{}
	}
	if c.AI.Model == "" {
		c.AI.Model = ai.DefaultModel
	}
}

func newConfig(port int, profilingPort int) *Config {
	return &Config{
		Port: port,
		Profiling: &profiling.Config{
			Port: profilingPort,
		},
		AI: &ai.Config{
			Model: ai.DefaultModel,
		},
	}
}
