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
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"k8s.io/klog/v2"
)

const appsPath = "/ws/v1/cluster/apps/{appid}"

// ErrMalformedResponse means the server answered 2xx but the body did not
// carry the expected fields. A structural fault, retrying the same request
// cannot help, so callers surface it immediately.
var ErrMalformedResponse = errors.New("malformed response")

// ApplicationClient reads application status from the RM REST API. One call
// per poll tick, no retry inside the client, the caller owns retry budgets.
type ApplicationClient interface {
	GetApplication(ctx context.Context, appID string) (*AppInfo, error)
	KillApplication(ctx context.Context, appID string) error
}

type applicationClient struct {
	client *resty.Client
}

// NewApplicationClient creates a client against the RM webapp address, e.g.
// "rm-host:8088". Every request carries the given per-call timeout.
func NewApplicationClient(rmWebAppAddress string, timeout time.Duration) ApplicationClient {
	client := resty.New().
		SetBaseURL(webAppURL(rmWebAppAddress)).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &applicationClient{client: client}
}

func (c *applicationClient) GetApplication(ctx context.Context, appID string) (*AppInfo, error) {
	res := &appResponse{}
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(res).
		SetPathParam("appid", appID).
		Get(appsPath)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, &StatusError{Operation: "get application", AppID: appID, Code: resp.StatusCode()}
	}
	if res.App == nil {
		return nil, fmt.Errorf("%w: RM answer for %v misses the app field", ErrMalformedResponse, appID)
	}
	klog.V(5).Infof("application %v state %v finalStatus %v", appID, res.App.State, res.App.FinalStatus)
	return res.App, nil
}

func (c *applicationClient) KillApplication(ctx context.Context, appID string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&appStateBody{State: "KILLED"}).
		SetPathParam("appid", appID).
		Put(appsPath + "/state")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &StatusError{Operation: "kill application", AppID: appID, Code: resp.StatusCode()}
	}
	klog.Infof("requested KILLED state for application %v", appID)
	return nil
}

// StatusError is a non-2xx answer from the RM or history server.
type StatusError struct {
	Operation string
	AppID     string
	Code      int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v %v failed with http status %d", e.Operation, e.AppID, e.Code)
}

func webAppURL(address string) string {
	if strings.HasPrefix(address, "http://") || strings.HasPrefix(address, "https://") {
		return address
	}
	return "http://" + address
}
