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
	"strings"
	"sync"
)

// ClusterState is the internal view of a YARN application state.
type ClusterState string

const (
	StateAccepted ClusterState = "ACCEPTED"
	StateRunning  ClusterState = "RUNNING"
	StateFinished ClusterState = "FINISHED"
	StateFailed   ClusterState = "FAILED"
	StateKilled   ClusterState = "KILLED"
	StateUnknown  ClusterState = "UNKNOWN"
)

// yarnStateMapping maps RM native application states to the internal enum.
// States before the application starts running all count as ACCEPTED.
var yarnStateMapping = map[string]ClusterState{
	"NEW":        StateAccepted,
	"NEW_SAVING": StateAccepted,
	"SUBMITTED":  StateAccepted,
	"ACCEPTED":   StateAccepted,
	"RUNNING":    StateRunning,
	"FINISHED":   StateFinished,
	"FAILED":     StateFailed,
	"KILLED":     StateKilled,
}

// StateFromYarn maps an RM state string to a ClusterState. Unmapped values
// become UNKNOWN so that polling can continue across RM version differences.
func StateFromYarn(state string) ClusterState {
	if s, ok := yarnStateMapping[strings.ToUpper(strings.TrimSpace(state))]; ok {
		return s
	}
	return StateUnknown
}

func (s ClusterState) IsTerminal() bool {
	return s == StateFinished || s == StateFailed || s == StateKilled
}

// DeployMode of the spark-submit invocation.
type DeployMode string

const (
	DeployModeClient  DeployMode = "client"
	DeployModeCluster DeployMode = "cluster"
)

// JobHandle identifies one spark-submit run. The application id is observed
// asynchronously from the subprocess output and written exactly once.
type JobHandle struct {
	RunID      string
	Command    string
	DeployMode DeployMode

	mtx   sync.RWMutex
	appID string
}

func NewJobHandle(runID, maskedCommand string, mode DeployMode) *JobHandle {
	return &JobHandle{RunID: runID, Command: maskedCommand, DeployMode: mode}
}

// SetApplicationID records the application id the first time it is observed.
// An application keeps one id for its lifetime, later calls are ignored.
func (h *JobHandle) SetApplicationID(appID string) {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	if h.appID == "" {
		h.appID = appID
	}
}

func (h *JobHandle) ApplicationID() (string, bool) {
	h.mtx.RLock()
	defer h.mtx.RUnlock()
	return h.appID, h.appID != ""
}

// LogReference points at one log viewer page of a finished application.
type LogReference struct {
	ContainerID string
	ViewerURL   string
}

// LogBundle is the reconstructed log text of one run, one segment per log
// reference, in the order the history server reported them.
type LogBundle []string

func (b LogBundle) String() string {
	return strings.Join(b, "")
}

// Outcome is the terminal artifact of one run. Exactly one of the subprocess
// exit code (client mode) or the cluster state (cluster mode) decides Success.
type Outcome struct {
	Success   bool
	ExitState ClusterState
	ExitCode  int
	Logs      LogBundle
	Reason    string
	Warnings  []string
}
