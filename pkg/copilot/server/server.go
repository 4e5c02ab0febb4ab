/*
Copyright 2023 The Koordinator Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package server exposes the live state of a tracked run over HTTP while
// the run is in flight: health, run status and prometheus metrics.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"

	"github.com/koordinator-sh/spark-copilot/pkg/spark/tracker"
)

// StatusSource is implemented by tracker.Tracker.
type StatusSource interface {
	Status() tracker.Status
}

type CopilotServer struct {
	endpoint string
	source   StatusSource
	engine   *gin.Engine
}

func NewCopilotServer(source StatusSource, endpoint string) *CopilotServer {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	s := &CopilotServer{endpoint: endpoint, source: source, engine: engine}

	engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	engine.GET("/v1/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.source.Status())
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return s
}

// Run serves until ctx is cancelled.
func (s *CopilotServer) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.endpoint, Handler: s.engine}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			klog.Warningf("shutdown status server failed: %v", err)
		}
	}()
	klog.Infof("status server listening on %v", s.endpoint)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Handler exposes the engine for tests.
func (s *CopilotServer) Handler() http.Handler {
	return s.engine
}
