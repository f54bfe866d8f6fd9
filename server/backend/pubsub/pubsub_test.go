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

package pubsub_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-team/inkwell/server/backend/pubsub"
)

func TestPubSub(t *testing.T) {
	ctx := context.Background()

	t.Run("publish with publisher exclusion test", func(t *testing.T) {
		ps := pubsub.New()
		subA := ps.Subscribe(ctx, 1, 5)
		subB := ps.Subscribe(ctx, 2, 5)

		ps.Publish(ctx, pubsub.Event{
			DocumentID:       5,
			Publisher:        1,
			ExcludePublisher: true,
			Payload:          "cursor",
		})

		select {
		case event := <-subB.Events():
			assert.Equal(t, "cursor", event.Payload)
		case <-time.After(time.Second):
			t.Fatal("subscriber B did not receive the event")
		}

		select {
		case <-subA.Events():
			t.Fatal("publisher received its own event")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("publish to all including publisher test", func(t *testing.T) {
		ps := pubsub.New()
		subA := ps.Subscribe(ctx, 1, 5)
		subB := ps.Subscribe(ctx, 2, 5)

		ps.Publish(ctx, pubsub.Event{DocumentID: 5, Publisher: 1, Payload: "status"})

		for _, sub := range []*pubsub.Subscription{subA, subB} {
			select {
			case event := <-sub.Events():
				assert.Equal(t, "status", event.Payload)
			case <-time.After(time.Second):
				t.Fatal("subscriber did not receive the event")
			}
		}
	})

	t.Run("publish scoped to document test", func(t *testing.T) {
		ps := pubsub.New()
		subOther := ps.Subscribe(ctx, 3, 9)

		ps.Publish(ctx, pubsub.Event{DocumentID: 5, Publisher: 1, Payload: "edit"})

		select {
		case <-subOther.Events():
			t.Fatal("subscriber of another document received the event")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("closed subscription does not abort delivery test", func(t *testing.T) {
		ps := pubsub.New()
		subA := ps.Subscribe(ctx, 1, 5)
		subB := ps.Subscribe(ctx, 2, 5)
		subA.Close()

		ps.Publish(ctx, pubsub.Event{DocumentID: 5, Publisher: 3, Payload: "edit"})

		select {
		case event := <-subB.Events():
			assert.Equal(t, "edit", event.Payload)
		case <-time.After(time.Second):
			t.Fatal("remaining subscriber did not receive the event")
		}
	})

	t.Run("subscribe during unsubscribe of the last subscription test", func(t *testing.T) {
		ps := pubsub.New()

		for i := 0; i < 1000; i++ {
			first := ps.Subscribe(ctx, 1, 42)

			done := make(chan struct{})
			go func() {
				ps.Unsubscribe(ctx, 42, first)
				close(done)
			}()

			second := ps.Subscribe(ctx, 2, 42)
			<-done

			ps.Publish(ctx, pubsub.Event{DocumentID: 42, Publisher: 1, Payload: i})

			select {
			case _, ok := <-second.Events():
				assert.True(t, ok)
			case <-time.After(time.Second):
				t.Fatal("new subscription missed the publish")
			}
			ps.Unsubscribe(ctx, 42, second)
		}
	})

	t.Run("unsubscribe closes the subscription test", func(t *testing.T) {
		ps := pubsub.New()
		sub := ps.Subscribe(ctx, 1, 5)
		ps.Unsubscribe(ctx, 5, sub)

		_, ok := <-sub.Events()
		assert.False(t, ok)
	})
}
