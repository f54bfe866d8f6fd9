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

// Package delta provides the rich-text document representation: an ordered
// sequence of insert, delete and retain operations with optional formatting
// attributes.
package delta

import "strings"

// Attributes carries optional formatting of an operation, such as bold or
// heading level.
type Attributes map[string]any

// Operation is a single entry of a Delta. Exactly one of Insert, Delete or
// Retain is meaningful. Insert is a string for text or an arbitrary object
// for embeds.
type Operation struct {
	Insert     any        `json:"insert,omitempty"`
	Delete     int        `json:"delete,omitempty"`
	Retain     int        `json:"retain,omitempty"`
	Attributes Attributes `json:"attributes,omitempty"`
}

// IsInsert reports whether the operation is an insert.
func (o Operation) IsInsert() bool {
	return o.Insert != nil
}

// IsDelete reports whether the operation is a delete.
func (o Operation) IsDelete() bool {
	return o.Insert == nil && o.Delete > 0
}

// IsRetain reports whether the operation is a retain.
func (o Operation) IsRetain() bool {
	return o.Insert == nil && o.Delete == 0 && o.Retain > 0
}

// Delta is the canonical content of a document.
type Delta struct {
	Ops []Operation `json:"ops"`
}

// New creates an empty Delta.
func New() Delta {
	return Delta{Ops: []Operation{}}
}

// Append appends the given operations to the delta in the literal order
// given. Entries that are neither insert, delete nor retain are dropped.
// There is no transform step against concurrent edits: callers are expected
// to serialize appends per document.
func (d *Delta) Append(ops []Operation) {
	if d.Ops == nil {
		d.Ops = []Operation{}
	}
	for _, op := range ops {
		switch {
		case op.IsInsert():
			d.Ops = append(d.Ops, Operation{Insert: op.Insert, Attributes: op.Attributes})
		case op.IsDelete():
			d.Ops = append(d.Ops, Operation{Delete: op.Delete})
		case op.IsRetain():
			d.Ops = append(d.Ops, Operation{Retain: op.Retain, Attributes: op.Attributes})
		}
	}
}

// PlainText flattens the delta to plain text. Only string inserts contribute;
// embeds, deletes and retains are ignored.
func (d Delta) PlainText() string {
	var sb strings.Builder
	for _, op := range d.Ops {
		if s, ok := op.Insert.(string); ok {
			sb.WriteString(s)
		}
	}
	return sb.String()
}

// IsBlank reports whether the delta flattens to an empty or whitespace-only
// string.
func (d Delta) IsBlank() bool {
	return strings.TrimSpace(d.PlainText()) == ""
}

// DeepCopy returns a copy of the delta with its own operation slice.
func (d Delta) DeepCopy() Delta {
	if d.Ops == nil {
		return Delta{}
	}
	ops := make([]Operation, len(d.Ops))
	copy(ops, d.Ops)
	return Delta{Ops: ops}
}
