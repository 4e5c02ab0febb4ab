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

package tracker

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	statusPollsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "spark_copilot_status_polls_total",
		Help: "status requests issued against the RM",
	})
	statusPollRetriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "spark_copilot_status_poll_retries_total",
		Help: "failed status requests counted against the retry ceiling",
	})
	logPagesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "spark_copilot_log_pages_total",
		Help: "log viewer pages fetched",
	})
	runsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spark_copilot_runs_total",
		Help: "finished runs by result",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(statusPollsTotal, statusPollRetriesTotal, logPagesTotal, runsTotal)
}
