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

// Resolver locates the log viewer pages of a finished application. Only
// called once the cluster state is terminal.
type Resolver struct {
	history      yarnclient.HistoryClient
	interval     time.Duration
	retryCeiling int
}

func NewResolver(history yarnclient.HistoryClient, interval time.Duration, retryCeiling int) *Resolver {
	return &Resolver{history: history, interval: interval, retryCeiling: retryCeiling}
}

// Resolve returns one LogReference per attempt the history server retains,
// in reported order. The history server replicates from the RM with a lag,
// so a missing record is re-requested on the poll cadence before giving up.
// A persistently missing record means the logs are gone (aggregation
// disabled or expired) and yields an empty result, not an error. Transport
// faults past the retry ceiling surface ErrHistoryServerUnreachable,
// malformed answers surface immediately.
func (r *Resolver) Resolve(ctx context.Context, appID string) ([]LogReference, error) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for attempt := 0; ; attempt++ {
		attempts, err := r.history.GetApplicationAttempts(ctx, appID)
		if err == nil {
			refs := make([]LogReference, 0, len(attempts))
			for _, a := range attempts {
				if a.LogsLink == "" {
					klog.V(4).Infof("attempt %v of %v has no log link, skipping", a.Id, appID)
					continue
				}
				refs = append(refs, LogReference{ContainerID: a.ContainerId, ViewerURL: a.LogsLink})
			}
			return refs, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, yarnclient.ErrMalformedResponse) {
			return nil, err
		}
		if attempt >= r.retryCeiling {
			if errors.Is(err, yarnclient.ErrApplicationNotRetained) {
				klog.Warningf("history server never caught up with %v, logs unavailable", appID)
				return nil, nil
			}
			return nil, fmt.Errorf("%w: last error: %v", ErrHistoryServerUnreachable, err)
		}
		klog.V(3).Infof("resolve log locations for %v failed, retrying: %v", appID, err)
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
