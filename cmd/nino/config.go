// Copyright 2026 The Nino Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// serverConfig is the YAML configuration consumed by `nino serve`.
type serverConfig struct {
	Addr           string `yaml:"addr"`
	PublicDir      string `yaml:"public_dir"`
	DevMode        bool   `yaml:"dev_mode"`
	RequestTimeout string `yaml:"request_timeout"`
	ServerHeader   string `yaml:"server_header"`
	H2C            bool   `yaml:"h2c"`
	Metrics        bool   `yaml:"metrics"`
}

func defaultServerConfig() *serverConfig {
	return &serverConfig{
		Addr: ":8080",
	}
}

// loadServerConfig reads a YAML config file. A missing file at the
// default location is not an error; an unreadable or malformed file is.
func loadServerConfig(path string, required bool) (*serverConfig, error) {
	cfg := defaultServerConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	return cfg, nil
}

// requestTimeout parses the configured timeout, "" meaning none.
func (c *serverConfig) requestTimeout() (time.Duration, error) {
	if c.RequestTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("parse request_timeout: %w", err)
	}
	return d, nil
}
