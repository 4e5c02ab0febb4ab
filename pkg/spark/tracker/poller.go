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
	"context"
	"errors"
	"fmt"
	"time"

	"k8s.io/klog/v2"

	yarnclient "github.com/koordinator-sh/spark-copilot/pkg/yarn/client"
)

// Poller rediscovers the state of a detached cluster application through the
// RM REST API. Cluster jobs outlive the launching process's direct
// visibility, polling is the only mechanism the RM offers.
type Poller struct {
	apps         yarnclient.ApplicationClient
	interval     time.Duration
	maxWait      time.Duration
	retryCeiling int
}

func NewPoller(apps yarnclient.ApplicationClient, interval, maxWait time.Duration, retryCeiling int) *Poller {
	return &Poller{apps: apps, interval: interval, maxWait: maxWait, retryCeiling: retryCeiling}
}

// Poll blocks until the application reaches a terminal state and returns the
// last RM report. Transient faults are retried on the same fixed cadence,
// more than retryCeiling consecutive failures surface ErrStatusPollExhausted.
// Malformed answers are structural and surface immediately, unretried.
// ErrStatusPollTimeout is returned when maxWait elapses without a terminal
// state, ctx.Err() when the owning task is cancelled.
func (p *Poller) Poll(ctx context.Context, appID string) (ClusterState, *yarnclient.AppInfo, error) {
	deadline := time.Now().Add(p.maxWait)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	failures := 0
	state := StateUnknown
	var last *yarnclient.AppInfo
	for {
		statusPollsTotal.Inc()
		app, err := p.apps.GetApplication(ctx, appID)
		if err != nil {
			if ctx.Err() != nil {
				return state, last, ctx.Err()
			}
			if errors.Is(err, yarnclient.ErrMalformedResponse) {
				// structural, the next answer would be just as broken
				return StateUnknown, last, err
			}
			failures++
			statusPollRetriesTotal.Inc()
			klog.Warningf("status poll %v failed (%d consecutive): %v", appID, failures, err)
			if failures > p.retryCeiling {
				return StateUnknown, last, fmt.Errorf("%w: last error: %v", ErrStatusPollExhausted, err)
			}
		} else {
			failures = 0
			last = app
			state = StateFromYarn(app.State)
			klog.V(3).Infof("application %v state %v (rm state %v)", appID, state, app.State)
			if state.IsTerminal() {
				return state, last, nil
			}
		}

		if time.Now().After(deadline) {
			return state, last, fmt.Errorf("%w: no terminal state within %v", ErrStatusPollTimeout, p.maxWait)
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return state, last, ctx.Err()
		}
	}
}
