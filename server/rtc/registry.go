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

package rtc

import (
	"github.com/inkwell-team/inkwell/pkg/cmap"
)

// Registry tracks the open connections of this server.
type Registry struct {
	connections *cmap.Map[string, *Connection]
}

// NewRegistry creates a new instance of Registry.
func NewRegistry() *Registry {
	return &Registry{
		connections: cmap.New[string, *Connection](),
	}
}

// Add adds the given connection.
func (r *Registry) Add(conn *Connection) {
	r.connections.Set(conn.ID(), conn)
}

// Remove removes the given connection.
func (r *Registry) Remove(conn *Connection) {
	r.connections.Delete(conn.ID(), func(_ *Connection, exists bool) bool {
		return exists
	})
}

// Len returns the number of open connections.
func (r *Registry) Len() int {
	return r.connections.Len()
}
