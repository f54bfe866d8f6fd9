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

// Package server provides the Inkwell server which is the main entry point
// of the system. The server hosts the realtime websocket endpoint and the
// REST API on one port, and optionally a profiling server on another.
package server

import (
	"context"
	"net/http"
	gosync "sync"

	"github.com/gorilla/mux"

	"github.com/inkwell-team/inkwell/server/backend"
	"github.com/inkwell-team/inkwell/server/httpapi"
	"github.com/inkwell-team/inkwell/server/logging"
	"github.com/inkwell-team/inkwell/server/profiling"
	"github.com/inkwell-team/inkwell/server/profiling/prometheus"
	"github.com/inkwell-team/inkwell/server/rtc"
)

// Inkwell is a server of Inkwell. The server receives edits from clients
// over websocket connections, reconciles them into canonical documents, and
// propagates them to the other participants of each document.
type Inkwell struct {
	lock gosync.Mutex

	conf            *Config
	backend         *backend.Backend
	rtcServer       *rtc.Server
	httpServer      *http.Server
	profilingServer *profiling.Server

	shutdown   bool
	shutdownCh chan struct{}
}

// New creates a new instance of Inkwell.
func New(conf *Config) (*Inkwell, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	metrics, err := prometheus.NewMetrics()
	if err != nil {
		return nil, err
	}

	be, err := backend.New(conf.AI, metrics)
	if err != nil {
		return nil, err
	}

	rtcServer := rtc.NewServer(be)

	router := mux.NewRouter()
	router.Handle("/ws", rtcServer)
	httpapi.NewServer(be).RegisterRoutes(router.PathPrefix("/api").Subrouter())

	var profilingServer *profiling.Server
	if conf.Profiling != nil {
		profilingServer = profiling.NewServer(conf.Profiling, metrics)
	}

	return &Inkwell{
		conf:            conf,
		backend:         be,
		rtcServer:       rtcServer,
		httpServer:      &http.Server{Addr: conf.Addr(), Handler: router},
		profilingServer: profilingServer,
		shutdownCh:      make(chan struct{}),
	}, nil
}

// Start starts the server by opening the listeners.
func (r *Inkwell) Start() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.profilingServer != nil {
		if err := r.profilingServer.Start(); err != nil {
			return err
		}
	}

	go func() {
		logging.DefaultLogger().Infof("serving API and websocket on %s", r.conf.Addr())
		if err := r.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logging.DefaultLogger().Errorf("HTTP server ListenAndServe: %v", err)
		}
	}()
	return nil
}

// Shutdown shuts down this server.
func (r *Inkwell) Shutdown(graceful bool) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.shutdown {
		return nil
	}
	r.shutdown = true

	if graceful {
		if err := r.httpServer.Shutdown(context.Background()); err != nil {
			logging.DefaultLogger().Errorf("HTTP server Shutdown: %v", err)
		}
	} else {
		if err := r.httpServer.Close(); err != nil {
			logging.DefaultLogger().Errorf("HTTP server close: %v", err)
		}
	}

	if r.profilingServer != nil {
		r.profilingServer.Shutdown(graceful)
	}

	if err := r.backend.Shutdown(); err != nil {
		return err
	}

	close(r.shutdownCh)
	return nil
}

// ShutdownCh returns the shutdown channel.
func (r *Inkwell) ShutdownCh() <-chan struct{} {
	return r.shutdownCh
}
