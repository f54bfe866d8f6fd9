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

// Package cmap provides a sharded concurrent map.
package cmap

import (
	"fmt"
	"hash/fnv"
	"sync"
)

// numShards is the number of shards the map is split into to reduce lock
// contention.
const numShards = 16

type shard[K comparable, V any] struct {
	sync.RWMutex
	items map[K]V
}

// Map is a map that is safe for concurrent use by multiple goroutines.
type Map[K comparable, V any] struct {
	shards [numShards]shard[K, V]
}

// New creates a new Map.
func New[K comparable, V any]() *Map[K, V] {
	m := &Map[K, V]{}
	for i := range m.shards {
		m.shards[i].items = make(map[K]V)
	}
	return m
}

func (m *Map[K, V]) shardFor(key K) *shard[K, V] {
	var idx uint32
	switch k := any(key).(type) {
	case int64:
		idx = uint32(k)
	case int:
		idx = uint32(k)
	case string:
		h := fnv.New32a()
		_, _ = h.Write([]byte(k))
		idx = h.Sum32()
	default:
		h := fnv.New32a()
		_, _ = h.Write([]byte(fmt.Sprintf("%v", key)))
		idx = h.Sum32()
	}
	return &m.shards[idx%numShards]
}

// Set stores the value under the given key.
func (m *Map[K, V]) Set(key K, value V) {
	s := m.shardFor(key)

	s.Lock()
	defer s.Unlock()

	s.items[key] = value
}

// Get returns the value stored under the given key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	s := m.shardFor(key)

	s.RLock()
	defer s.RUnlock()

	value, ok := s.items[key]
	return value, ok
}

// Has reports whether the given key is present.
func (m *Map[K, V]) Has(key K) bool {
	s := m.shardFor(key)

	s.RLock()
	defer s.RUnlock()

	_, ok := s.items[key]
	return ok
}

// UpsertFunc computes the value to store given the current value, if any.
type UpsertFunc[V any] func(value V, exists bool) V

// Upsert inserts or updates the value under the given key while holding the
// shard lock, and returns the stored value.
func (m *Map[K, V]) Upsert(key K, fn UpsertFunc[V]) V {
	s := m.shardFor(key)

	s.Lock()
	defer s.Unlock()

	value, ok := s.items[key]
	stored := fn(value, ok)
	s.items[key] = stored
	return stored
}

// DeleteFunc decides whether the entry should be removed given the current
// value, if any.
type DeleteFunc[V any] func(value V, exists bool) bool

// Delete removes the entry under the given key if fn approves the removal.
// It returns whether the removal was approved.
func (m *Map[K, V]) Delete(key K, fn DeleteFunc[V]) bool {
	s := m.shardFor(key)

	s.Lock()
	defer s.Unlock()

	value, ok := s.items[key]
	del := fn(value, ok)
	if del && ok {
		delete(s.items, key)
	}
	return del
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	count := 0
	for i := range m.shards {
		s := &m.shards[i]
		s.RLock()
		count += len(s.items)
		s.RUnlock()
	}
	return count
}

// Keys returns all keys in the map, in no particular order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0)
	for i := range m.shards {
		s := &m.shards[i]
		s.RLock()
		for k := range s.items {
			keys = append(keys, k)
		}
		s.RUnlock()
	}
	return keys
}

// Values returns all values in the map, in no particular order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0)
	for i := range m.shards {
		s := &m.shards[i]
		s.RLock()
		for _, v := range s.items {
			values = append(values, v)
		}
		s.RUnlock()
	}
	return values
}
