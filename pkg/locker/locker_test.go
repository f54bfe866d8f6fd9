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

package locker_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-team/inkwell/pkg/locker"
)

func TestLocker(t *testing.T) {
	t.Run("serializes access per key test", func(t *testing.T) {
		l := locker.New[int64]()

		counters := [2]int{}
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			for key := int64(1); key <= 2; key++ {
				wg.Add(1)
				go func(key int64) {
					defer wg.Done()
					l.Lock(key)
					counters[key-1]++
					_ = l.Unlock(key)
				}(key)
			}
		}
		wg.Wait()

		assert.Equal(t, 100, counters[0])
		assert.Equal(t, 100, counters[1])
	})

	t.Run("unlock of unknown key test", func(t *testing.T) {
		l := locker.New[string]()
		assert.ErrorIs(t, l.Unlock("missing"), locker.ErrNoSuchLock)
	})
}
