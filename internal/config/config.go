// seehuhn.de/go/barcode - ISBN barcodes as Encapsulated PostScript
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config provides configuration management for the barcode tools.
package config

import (
	"os"
	"path/filepath"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config represents the configuration file.
type Config struct {
	Language string        `yaml:"language"` // language for user-facing messages
	Barcode  BarcodeConfig `yaml:"barcode"`
	Output   OutputConfig  `yaml:"output"`
	Server   ServerConfig  `yaml:"server"`
}

// BarcodeConfig contains the defaults for generated barcodes.
type BarcodeConfig struct {
	BarHeightMM   float64 `yaml:"bar_height_mm"`
	DPI           int     `yaml:"dpi"`
	AddOnOffsetMM float64 `yaml:"addon_offset_mm"`
}

// OutputConfig controls where documents are saved.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// ServerConfig contains the settings of the HTTP server.
type ServerConfig struct {
	Listen    string  `yaml:"listen"`
	RateLimit float64 `yaml:"rate_limit"` // requests per second, 0 for unlimited
	Burst     int     `yaml:"burst"`
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Language: "ko",
		Barcode: BarcodeConfig{
			BarHeightMM:   15,
			DPI:           300,
			AddOnOffsetMM: 0,
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Server: ServerConfig{
			Listen:    "localhost:8320",
			RateLimit: 10,
			Burst:     20,
		},
	}
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	return filepath.Join(configDir, "isbn-barcode", "config.yaml")
}

// Load loads the configuration from a file.
// Settings missing from the file keep their default values.
// If the file does not exist, the default configuration is returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves the configuration to a file.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = DefaultPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Tag returns the language for user-facing messages.
// Unknown or malformed language names fall back to Korean.
func (c *Config) Tag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Korean
	}
	return tag
}
