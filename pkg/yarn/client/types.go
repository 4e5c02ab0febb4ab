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

// AppInfo is the RM view of one application, from
// GET /ws/v1/cluster/apps/{appid}.
type AppInfo struct {
	Id              string  `json:"id"`
	Name            string  `json:"name"`
	User            string  `json:"user"`
	Queue           string  `json:"queue"`
	State           string  `json:"state"`
	FinalStatus     string  `json:"finalStatus"`
	Progress        float64 `json:"progress"`
	Diagnostics     string  `json:"diagnostics"`
	TrackingUrl     string  `json:"trackingUrl"`
	AmContainerLogs string  `json:"amContainerLogs"`
	StartedTime     int64   `json:"startedTime"`
	FinishedTime    int64   `json:"finishedTime"`
}

type appResponse struct {
	App *AppInfo `json:"app"`
}

// AppAttempt is one attempt of a finished application as reported by the
// history server, carrying the link to its log viewer page.
type AppAttempt struct {
	Id          string `json:"id"`
	ContainerId string `json:"containerId"`
	LogsLink    string `json:"logsLink"`
}

type historyApp struct {
	Id       string       `json:"id"`
	Attempts []AppAttempt `json:"attempts"`
}

type historyAppResponse struct {
	App *historyApp `json:"app"`
}

type appStateBody struct {
	State string `json:"state"`
}
