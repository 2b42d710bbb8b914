// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"net/http"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/app"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

// addDataServices registers the dataset loader and the maintenance loops.
func addDataServices(tree *supervisor.SupervisorTree, cfg *config.Config, c *app.Components) {
	tree.AddDataService(services.NewDatasetService(
		c.Source,
		c.Engine,
		cfg.Supervisor.DatasetReloadInterval,
		logging.WithComponent("dataset"),
	))

	if c.Store != nil {
		tree.AddDataService(services.NewSnapshotGCService(
			c.Store,
			cfg.Supervisor.SnapshotGCInterval,
			logging.WithComponent("snapshot"),
		))
	}

	if cfg.Recommend.CacheEnabled {
		tree.AddDataService(services.NewCachePurgeService(
			c.Engine,
			cfg.Supervisor.CachePurgeInterval,
			logging.WithComponent("recommend"),
		))
	}
}

// addAPIServices registers the HTTP server.
func addAPIServices(tree *supervisor.SupervisorTree, cfg *config.Config, c *app.Components) {
	router := api.NewRouter(
		api.NewHandler(c.Engine),
		api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security)),
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree.AddAPIService(services.NewHTTPServerService(
		server,
		cfg.Supervisor.ShutdownTimeout,
		logging.WithComponent("api"),
	))
}
