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

package delta_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-team/inkwell/pkg/delta"
)

func TestDelta(t *testing.T) {
	t.Run("append keeps the literal order test", func(t *testing.T) {
		d := delta.New()
		d.Append([]delta.Operation{
			{Insert: "Hello"},
			{Retain: 5, Attributes: delta.Attributes{"bold": true}},
			{Insert: " world"},
			{Delete: 3},
		})

		assert.Len(t, d.Ops, 4)
		assert.Equal(t, "Hello", d.Ops[0].Insert)
		assert.Equal(t, 5, d.Ops[1].Retain)
		assert.Equal(t, " world", d.Ops[2].Insert)
		assert.Equal(t, 3, d.Ops[3].Delete)
	})

	t.Run("append drops unknown shapes test", func(t *testing.T) {
		d := delta.New()
		d.Append([]delta.Operation{{}, {Insert: "a"}, {}})
		assert.Len(t, d.Ops, 1)
	})

	t.Run("append initializes nil ops test", func(t *testing.T) {
		var d delta.Delta
		d.Append([]delta.Operation{{Insert: "x"}})
		assert.Len(t, d.Ops, 1)
	})

	t.Run("plain text test", func(t *testing.T) {
		d := delta.New()
		d.Append([]delta.Operation{
			{Insert: "Hello"},
			{Insert: map[string]any{"image": "cat.png"}},
			{Insert: " world"},
			{Delete: 2},
		})
		assert.Equal(t, "Hello world", d.PlainText())
	})

	t.Run("blank test", func(t *testing.T) {
		assert.True(t, delta.New().IsBlank())

		d := delta.New()
		d.Append([]delta.Operation{{Insert: " \n\t"}})
		assert.True(t, d.IsBlank())

		d.Append([]delta.Operation{{Insert: "a"}})
		assert.False(t, d.IsBlank())
	})

	t.Run("json round trip test", func(t *testing.T) {
		d := delta.New()
		d.Append([]delta.Operation{
			{Insert: "hi", Attributes: delta.Attributes{"italic": true}},
			{Retain: 2},
		})

		encoded, err := json.Marshal(d)
		assert.NoError(t, err)

		var decoded delta.Delta
		assert.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Len(t, decoded.Ops, 2)
		assert.Equal(t, "hi", decoded.Ops[0].Insert)
		assert.Equal(t, 2, decoded.Ops[1].Retain)
	})

	t.Run("deep copy test", func(t *testing.T) {
		d := delta.New()
		d.Append([]delta.Operation{{Insert: "a"}})

		cp := d.DeepCopy()
		cp.Append([]delta.Operation{{Insert: "b"}})
		assert.Len(t, d.Ops, 1)
		assert.Len(t, cp.Ops, 2)
	})
}
