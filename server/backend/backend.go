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

// Package backend provides the backend implementation of Inkwell. This
// package is responsible for managing the database and other resources
// required to run the server.
package backend

import (
	"github.com/inkwell-team/inkwell/pkg/locker"
	"github.com/inkwell-team/inkwell/server/backend/ai"
	"github.com/inkwell-team/inkwell/server/backend/database"
	memdb "github.com/inkwell-team/inkwell/server/backend/database/memory"
	"github.com/inkwell-team/inkwell/server/backend/pubsub"
	"github.com/inkwell-team/inkwell/server/logging"
	"github.com/inkwell-team/inkwell/server/profiling/prometheus"
)

// Backend manages Inkwell's backend such as Database, PubSub and the
// suggestion generator.
type Backend struct {
	// DB is the database instance.
	DB database.Database
	// PubSub is used to publish/subscribe events to/from clients.
	PubSub *pubsub.PubSub
	// Lockers is used to serialize content updates per document.
	Lockers *locker.Locker[int64]
	// AI is used to generate writing suggestions.
	AI ai.Generator
	// Metrics is used to expose metrics.
	Metrics *prometheus.Metrics
}

// New creates a new instance of Backend.
func New(aiConf *ai.Config, metrics *prometheus.Metrics) (*Backend, error) {
	db, err := memdb.New()
	if err != nil {
		return nil, err
	}

	logging.DefaultLogger().Infof("backend created: db: memory")

	return &Backend{
		DB:      db,
		PubSub:  pubsub.New(),
		Lockers: locker.New[int64](),
		AI:      ai.NewClient(aiConf),
		Metrics: metrics,
	}, nil
}

// Shutdown closes all resources of this instance.
func (b *Backend) Shutdown() error {
	if err := b.DB.Close(); err != nil {
		return err
	}

	logging.DefaultLogger().Infof("backend stopped")
	return nil
}
