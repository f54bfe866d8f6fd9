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

// Package pubsub provides the document-scoped broadcast router. Connections
// joined to a document subscribe to it; state-changing events are fanned out
// to every subscription, optionally excluding the publisher.
package pubsub

import (
	"context"
	"sync"
	gotime "time"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/inkwell-team/inkwell/pkg/cmap"
	"github.com/inkwell-team/inkwell/server/logging"
)

// publishTimeout is the timeout for publishing an event to one subscriber.
const publishTimeout = 100 * gotime.Millisecond

// Event is a document-scoped event delivered to subscribers. Payload is the
// protocol frame to write to each recipient.
type Event struct {
	// DocumentID is the document the event belongs to.
	DocumentID int64

	// Publisher is the ID of the user that caused the event.
	Publisher int64

	// ExcludePublisher skips subscriptions of the publishing user.
	ExcludePublisher bool

	// Payload is the frame delivered to each recipient.
	Payload any
}

// Subscription represents a subscription of one connection to one document.
type Subscription struct {
	id         string
	subscriber int64
	mu         sync.Mutex
	closed     bool
	events     chan Event
}

// NewSubscription creates a new instance of Subscription.
func NewSubscription(subscriber int64) *Subscription {
	return &Subscription{
		id:         xid.New().String(),
		subscriber: subscriber,
		events:     make(chan Event, 8),
	}
}

// ID returns the ID of this subscription.
func (s *Subscription) ID() string {
	return s.id
}

// Events returns the event channel of this subscription.
func (s *Subscription) Events() chan Event {
	return s.events
}

// Subscriber returns the user ID of the subscriber.
func (s *Subscription) Subscriber() int64 {
	return s.subscriber
}

// Close closes all resources of this Subscription.
func (s *Subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.events)
	}
}

// Publish publishes the given event to the subscriber. Delivery is
// best-effort: a closed or unresponsive subscriber is reported as false and
// skipped by the caller.
func (s *Subscription) Publish(event Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.events <- event:
		return true
	case <-gotime.After(publishTimeout):
		return false
	}
}

// Subscriptions is the set of subscriptions on one document.
type Subscriptions struct {
	documentID  int64
	internalMap *cmap.Map[string, *Subscription]
}

func newSubscriptions(documentID int64) *Subscriptions {
	return &Subscriptions{
		documentID:  documentID,
		internalMap: cmap.New[string, *Subscription](),
	}
}

// Set adds the given subscription.
func (s *Subscriptions) Set(sub *Subscription) {
	s.internalMap.Set(sub.ID(), sub)
}

// Values returns the subscriptions in this set.
func (s *Subscriptions) Values() []*Subscription {
	return s.internalMap.Values()
}

// Publish delivers the event to every subscription in this set, honoring
// publisher exclusion. Failed deliveries never abort the loop.
func (s *Subscriptions) Publish(ctx context.Context, event Event) {
	for _, sub := range s.internalMap.Values() {
		if event.ExcludePublisher && sub.Subscriber() == event.Publisher {
			continue
		}
		if ok := sub.Publish(event); !ok {
			logging.From(ctx).Debugf(
				"PUB: document %d: subscription %s dropped an event",
				s.documentID, sub.ID(),
			)
		}
	}
}

// Delete deletes the subscription of the given ID.
func (s *Subscriptions) Delete(id string) {
	s.internalMap.Delete(id, func(sub *Subscription, exists bool) bool {
		if exists {
			sub.Close()
		}
		return exists
	})
}

// Len returns the number of subscriptions in this set.
func (s *Subscriptions) Len() int {
	return s.internalMap.Len()
}

// PubSub is an in-process broadcast router keyed by document ID.
type PubSub struct {
	subscriptionsMap *cmap.Map[int64, *Subscriptions]
}

// New creates an instance of PubSub.
func New() *PubSub {
	return &PubSub{
		subscriptionsMap: cmap.New[int64, *Subscriptions](),
	}
}

// Subscribe subscribes the given user to the given document.
func (m *PubSub) Subscribe(ctx context.Context, subscriber int64, documentID int64) *Subscription {
	if logging.Enabled(zap.DebugLevel) {
		logging.From(ctx).Debugf("SUB: document %d, user %d", documentID, subscriber)
	}

	// The subscription is added inside the callback, while the shard is still
	// locked. Otherwise a concurrent Unsubscribe of the document's last
	// subscription could prune the set before the new one lands in it.
	sub := NewSubscription(subscriber)
	m.subscriptionsMap.Upsert(documentID, func(subs *Subscriptions, exists bool) *Subscriptions {
		if !exists {
			subs = newSubscriptions(documentID)
		}
		subs.Set(sub)
		return subs
	})
	return sub
}

// Unsubscribe removes the given subscription from the document.
func (m *PubSub) Unsubscribe(ctx context.Context, documentID int64, sub *Subscription) {
	if logging.Enabled(zap.DebugLevel) {
		logging.From(ctx).Debugf("UNSUB: document %d, user %d", documentID, sub.Subscriber())
	}

	sub.Close()

	if subs, ok := m.subscriptionsMap.Get(documentID); ok {
		subs.Delete(sub.ID())

		m.subscriptionsMap.Delete(documentID, func(subs *Subscriptions, exists bool) bool {
			return exists && subs.Len() == 0
		})
	}
}

// Publish fans the given event out to the subscribers of its document.
func (m *PubSub) Publish(ctx context.Context, event Event) {
	if subs, ok := m.subscriptionsMap.Get(event.DocumentID); ok {
		subs.Publish(ctx, event)
	}
}
