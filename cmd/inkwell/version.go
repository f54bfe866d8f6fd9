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

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inkwell-team/inkwell/internal/version"
)

var output string

type versionDetail struct {
	Version   string `json:"version" yaml:"version"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	BuildDate string `json:"buildDate,omitempty" yaml:"buildDate,omitempty"`
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of Inkwell",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutputOpts(); err != nil {
				return err
			}

			detail := versionDetail{
				Version:   version.Version,
				GoVersion: runtime.Version(),
				BuildDate: version.BuildDate,
			}

			switch output {
			case "":
				cmd.Printf("Inkwell: %s\n", detail.Version)
				cmd.Printf("Go: %s\n", detail.GoVersion)
				if detail.BuildDate != "" {
					cmd.Printf("Build date: %s\n", detail.BuildDate)
				}
			case "json":
				marshalled, err := json.MarshalIndent(detail, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal version information: %w", err)
				}
				cmd.Println(string(marshalled))
			case "yaml":
				marshalled, err := yaml.Marshal(detail)
				if err != nil {
					return fmt.Errorf("marshal version information: %w", err)
				}
				cmd.Print(string(marshalled))
			}

			return nil
		},
	}
}

// validateOutputOpts validates the output options.
func validateOutputOpts() error {
	if output != "" && output != "json" && output != "yaml" {
		return errors.New(`--output must be "", "json" or "yaml"`)
	}

	return nil
}

func init() {
	cmd := newVersionCmd()
	cmd.Flags().StringVarP(
		&output,
		"output",
		"o",
		"",
		"One of 'json' or 'yaml'.",
	)
	rootCmd.AddCommand(cmd)
}
