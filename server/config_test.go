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

package server_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-team/inkwell/server"
	"github.com/inkwell-team/inkwell/server/backend/ai"
)

func TestConfig(t *testing.T) {
	t.Run("default config test", func(t *testing.T) {
		conf := server.NewConfig()
		assert.NoError(t, conf.Validate())
		assert.Equal(t, server.DefaultPort, conf.Port)
		assert.Equal(t, server.DefaultProfilingPort, conf.Profiling.Port)
		assert.Equal(t, ai.DefaultModel, conf.AI.Model)
	})

	t.Run("invalid port test", func(t *testing.T) {
		conf := server.NewConfig()
		conf.Port = -1
		assert.Error(t, conf.Validate())

		conf = server.NewConfig()
		conf.Profiling.Port = 70000
		assert.Error(t, conf.Validate())
	})

	t.Run("config from file applies defaults test", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("Port: 9090\n"), 0o600))

		conf, err := server.NewConfigFromFile(path)
		require.NoError(t, err)
		assert.NoError(t, conf.Validate())
		assert.Equal(t, 9090, conf.Port)
		assert.Equal(t, ai.DefaultModel, conf.AI.Model)

		_, err = server.NewConfigFromFile(filepath.Join(t.TempDir(), "missing.yml"))
		assert.Error(t, err)
	})
}
