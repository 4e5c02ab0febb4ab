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

package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"k8s.io/klog/v2"
)

const historyAppsPath = "/ws/v1/history/apps/{appid}"

// ErrApplicationNotRetained means the history server has no record of the
// application yet. The RM and history server replicate asynchronously, a
// just finished application may appear only after a delay, so callers
// re-resolve on their poll cadence instead of failing.
var ErrApplicationNotRetained = errors.New("application not retained by history server")

// HistoryClient lists the attempts of a finished application together with
// their log viewer links.
type HistoryClient interface {
	GetApplicationAttempts(ctx context.Context, appID string) ([]AppAttempt, error)
}

type historyClient struct {
	client *resty.Client
}

func NewHistoryClient(historyWebAppAddress string, timeout time.Duration) HistoryClient {
	client := resty.New().
		SetBaseURL(webAppURL(historyWebAppAddress)).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &historyClient{client: client}
}

// GetApplicationAttempts returns the attempts in the order the history
// server reports them. An application with no retained logs yields an empty
// slice, which is not an error.
func (c *historyClient) GetApplicationAttempts(ctx context.Context, appID string) ([]AppAttempt, error) {
	res := &historyAppResponse{}
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(res).
		SetPathParam("appid", appID).
		Get(historyAppsPath)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrApplicationNotRetained
	}
	if resp.IsError() {
		return nil, &StatusError{Operation: "get application attempts", AppID: appID, Code: resp.StatusCode()}
	}
	if res.App == nil {
		return nil, fmt.Errorf("%w: history answer for %v misses the app field", ErrMalformedResponse, appID)
	}
	klog.V(4).Infof("history server reports %d attempts for %v", len(res.App.Attempts), appID)
	return res.App.Attempts, nil
}
