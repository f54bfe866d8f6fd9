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

// Package prometheus provides a Prometheus metrics exporter.
package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/inkwell-team/inkwell/internal/version"
)

const (
	namespace        = "inkwell"
	messageTypeLabel = "message_type"
	eventTypeLabel   = "event_type"
	resultLabel      = "result"
)

// Metrics manages the metric information that Inkwell is trying to measure.
type Metrics struct {
	registry *prometheus.Registry

	serverVersion *prometheus.GaugeVec

	connectionsTotal      prometheus.Gauge
	messagesReceivedTotal *prometheus.CounterVec
	eventsPublishedTotal  *prometheus.CounterVec

	suggestionGenerationsTotal *prometheus.CounterVec
}

// NewMetrics creates a new instance of Metrics.
func NewMetrics() (*Metrics, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}

	metrics := &Metrics{
		registry: reg,
		serverVersion: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "version",
			Help:      "Which version is running. 1 for 'server_version' label with current version.",
		}, []string{"server_version"}),
		connectionsTotal: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "rtc",
			Name:      "connections_total",
			Help:      "The current number of open websocket connections.",
		}),
		messagesReceivedTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rtc",
			Name:      "messages_received_total",
			Help:      "The total count of messages received over websocket connections.",
		}, []string{messageTypeLabel}),
		eventsPublishedTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rtc",
			Name:      "events_published_total",
			Help:      "The total count of events fanned out to document subscribers.",
		}, []string{eventTypeLabel}),
		suggestionGenerationsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "suggestions",
			Name:      "generations_total",
			Help:      "The total count of suggestion generation requests by result.",
		}, []string{resultLabel}),
	}

	metrics.serverVersion.With(prometheus.Labels{
		"server_version": version.Version,
	}).Set(1)

	return metrics, nil
}

// AddConnection increases the number of open connections.
func (m *Metrics) AddConnection() {
	m.connectionsTotal.Inc()
}

// RemoveConnection decreases the number of open connections.
func (m *Metrics) RemoveConnection() {
	m.connectionsTotal.Dec()
}

// AddReceivedMessage adds the number of received messages of the given type.
func (m *Metrics) AddReceivedMessage(messageType string) {
	m.messagesReceivedTotal.With(prometheus.Labels{
		messageTypeLabel: messageType,
	}).Inc()
}

// AddPublishedEvent adds the number of published events of the given type.
func (m *Metrics) AddPublishedEvent(eventType string) {
	m.eventsPublishedTotal.With(prometheus.Labels{
		eventTypeLabel: eventType,
	}).Inc()
}

// AddSuggestionGeneration adds the number of suggestion generations with the
// given result.
func (m *Metrics) AddSuggestionGeneration(result string) {
	m.suggestionGenerationsTotal.With(prometheus.Labels{
		resultLabel: result,
	}).Inc()
}

// Registry returns the registry of this metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
