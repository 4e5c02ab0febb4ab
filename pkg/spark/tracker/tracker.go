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

// Package tracker drives one spark-submit run to a definite outcome: it
// launches the subprocess, captures the application id from its output,
// polls the RM until the application terminates, reconstructs the driver log
// from the history server, and fires the injected callbacks exactly once.
package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"k8s.io/klog/v2"

	yarnclient "github.com/koordinator-sh/spark-copilot/pkg/yarn/client"
)

// RunState is the phase of one tracked run.
type RunState string

const (
	RunStateSubmitted      RunState = "SUBMITTED"
	RunStateAwaitingID     RunState = "AWAITING_ID"
	RunStateClientRunning  RunState = "CLIENT_RUNNING"
	RunStateClusterPolling RunState = "CLUSTER_POLLING"
	RunStateResolvingLogs  RunState = "RESOLVING_LOGS"
	RunStateDone           RunState = "DONE"
	RunStateFailed         RunState = "FAILED"
)

// how often the extractor is checked for a captured id while the subprocess
// is still running
const idCheckInterval = 200 * time.Millisecond

// CommandRunner launches the spark-submit subprocess and blocks until it
// terminates. Satisfied by launcher.Launcher.
type CommandRunner interface {
	Run(ctx context.Context, argv []string, env map[string]string) (int, error)
	Kill()
}

// AppIDSource reports the application id once it was observed in the
// subprocess output. Satisfied by launcher.IDExtractor.
type AppIDSource interface {
	AppID() (string, bool)
}

// LogFetcher turns one log viewer URL into log text. Satisfied by
// logs.Scraper.
type LogFetcher interface {
	Fetch(ctx context.Context, viewerURL string) (string, error)
}

// Config carries the tracking budgets. Fixed-interval cadence by design,
// cluster jobs run on the order of minutes.
type Config struct {
	PollInterval time.Duration
	MaxWait      time.Duration
	RetryCeiling int
}

// Status is the live view of a run, served by the observability endpoint.
type Status struct {
	RunID         string     `json:"runID"`
	State         RunState   `json:"state"`
	ApplicationID string     `json:"applicationID,omitempty"`
	DeployMode    DeployMode `json:"deployMode"`
}

type Tracker struct {
	handle   *JobHandle
	runner   CommandRunner
	appIDs   AppIDSource
	output   *OutputBuffer
	apps     yarnclient.ApplicationClient
	fetcher  LogFetcher
	poller   *Poller
	resolver *Resolver
	notifier Notifier

	mtx   sync.RWMutex
	state RunState
}

func NewTracker(handle *JobHandle, runner CommandRunner, appIDs AppIDSource, output *OutputBuffer,
	apps yarnclient.ApplicationClient, history yarnclient.HistoryClient, fetcher LogFetcher,
	notifier Notifier, cfg Config) *Tracker {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Tracker{
		handle:   handle,
		runner:   runner,
		appIDs:   appIDs,
		output:   output,
		apps:     apps,
		fetcher:  fetcher,
		poller:   NewPoller(apps, cfg.PollInterval, cfg.MaxWait, cfg.RetryCeiling),
		resolver: NewResolver(history, cfg.PollInterval, cfg.RetryCeiling),
		notifier: notifier,
		state:    RunStateSubmitted,
	}
}

// Run executes argv and tracks it to completion. It always returns a
// definite outcome and invokes the notifier exactly once.
func (t *Tracker) Run(ctx context.Context, argv []string, env map[string]string) *Outcome {
	klog.Infof("run %v starting: %v", t.handle.RunID, t.handle.Command)
	t.setState(RunStateAwaitingID)

	exitCh := make(chan exitResult, 1)
	go func() {
		code, err := t.runner.Run(ctx, argv, env)
		exitCh <- exitResult{code: code, err: err}
	}()

	var outcome *Outcome
	if t.handle.DeployMode == DeployModeCluster {
		outcome = t.trackCluster(ctx, exitCh)
	} else {
		outcome = t.trackClient(ctx, exitCh)
	}
	t.finish(outcome)
	return outcome
}

func (t *Tracker) Status() Status {
	appID, _ := t.handle.ApplicationID()
	t.mtx.RLock()
	defer t.mtx.RUnlock()
	return Status{
		RunID:         t.handle.RunID,
		State:         t.state,
		ApplicationID: appID,
		DeployMode:    t.handle.DeployMode,
	}
}

type exitResult struct {
	code int
	err  error
}

// trackClient awaits the attached driver process, its exit code is the job
// outcome and its captured output is the log bundle.
func (t *Tracker) trackClient(ctx context.Context, exitCh chan exitResult) *Outcome {
	t.setState(RunStateClientRunning)
	select {
	case res := <-exitCh:
		if res.err != nil {
			return &Outcome{
				Success:   false,
				ExitState: StateUnknown,
				ExitCode:  res.code,
				Logs:      t.capturedLogs(),
				Reason:    fmt.Sprintf("launch spark-submit failed: %v", res.err),
			}
		}
		if res.code != 0 {
			return &Outcome{
				Success:   false,
				ExitState: StateFailed,
				ExitCode:  res.code,
				Logs:      t.capturedLogs(),
				Reason:    fmt.Sprintf("spark-submit exited with code %d", res.code),
			}
		}
		return &Outcome{Success: true, ExitState: StateFinished, ExitCode: 0, Logs: t.capturedLogs()}
	case <-ctx.Done():
		t.runner.Kill()
		<-exitCh
		return &Outcome{
			Success:   false,
			ExitState: StateUnknown,
			ExitCode:  -1,
			Logs:      t.capturedLogs(),
			Reason:    "run cancelled",
		}
	}
}

// trackCluster follows the detached driver through the RM. The subprocess
// exit code carries no success signal here, only the cluster state does.
func (t *Tracker) trackCluster(ctx context.Context, exitCh chan exitResult) *Outcome {
	appID, launchFailure := t.awaitApplicationID(ctx, exitCh)
	if launchFailure != nil {
		return launchFailure
	}
	// the submitter process is of no further interest once the id is known
	defer t.runner.Kill()

	t.handle.SetApplicationID(appID)
	t.setState(RunStateClusterPolling)

	state, app, err := t.poller.Poll(ctx, appID)
	if err != nil {
		if ctx.Err() != nil {
			return t.cancelledOutcome(ctx, appID)
		}
		// exhausted or timed out, the true state is unknown and no log
		// location can be trusted
		return &Outcome{Success: false, ExitState: StateUnknown, Logs: LogBundle{}, Reason: err.Error()}
	}

	outcome := &Outcome{Success: state == StateFinished, ExitState: state}
	if !outcome.Success {
		outcome.Reason = fmt.Sprintf("cluster reported %v", state)
		if app != nil && app.Diagnostics != "" {
			outcome.Reason = fmt.Sprintf("%v: %v", outcome.Reason, app.Diagnostics)
		}
	}

	t.setState(RunStateResolvingLogs)
	logs, warnings, resolveErr := t.assembleLogs(ctx, appID)
	outcome.Logs = logs
	outcome.Warnings = warnings
	if resolveErr != nil {
		if ctx.Err() != nil {
			return t.cancelledOutcome(ctx, appID)
		}
		if outcome.Success {
			outcome.Success = false
			outcome.ExitState = state
			outcome.Reason = resolveErr.Error()
		} else {
			outcome.Warnings = append(outcome.Warnings, resolveErr.Error())
		}
	}
	return outcome
}

// awaitApplicationID watches the extractor until an id shows up or the
// subprocess ends without one. In cluster mode a missing id is fatal, no
// further progress can be made.
func (t *Tracker) awaitApplicationID(ctx context.Context, exitCh chan exitResult) (string, *Outcome) {
	ticker := time.NewTicker(idCheckInterval)
	defer ticker.Stop()
	for {
		if appID, ok := t.appIDs.AppID(); ok {
			return appID, nil
		}
		select {
		case res := <-exitCh:
			// output stream is fully consumed before Run returns, one
			// final check
			if appID, ok := t.appIDs.AppID(); ok {
				return appID, nil
			}
			reason := ErrApplicationIDNotFound.Error()
			if res.err != nil {
				reason = fmt.Sprintf("launch spark-submit failed: %v", res.err)
			} else if res.code != 0 {
				reason = fmt.Sprintf("spark-submit exited with code %d before an application id appeared", res.code)
			}
			return "", &Outcome{
				Success:   false,
				ExitState: StateUnknown,
				ExitCode:  res.code,
				Logs:      t.capturedLogs(),
				Reason:    reason,
			}
		case <-ticker.C:
		case <-ctx.Done():
			t.runner.Kill()
			<-exitCh
			return "", &Outcome{
				Success:   false,
				ExitState: StateUnknown,
				ExitCode:  -1,
				Logs:      t.capturedLogs(),
				Reason:    "run cancelled",
			}
		}
	}
}

// assembleLogs resolves the viewer pages and scrapes them in order. Fetch
// and parse faults only degrade the bundle, the outcome is already decided.
func (t *Tracker) assembleLogs(ctx context.Context, appID string) (LogBundle, []string, error) {
	refs, err := t.resolver.Resolve(ctx, appID)
	if err != nil {
		return LogBundle{}, nil, err
	}
	if len(refs) == 0 {
		klog.Infof("no retained logs for %v", appID)
		return LogBundle{}, nil, nil
	}

	logs := make(LogBundle, 0, len(refs))
	var warnings []string
	for _, ref := range refs {
		text, ferr := t.fetcher.Fetch(ctx, ref.ViewerURL)
		logPagesTotal.Inc()
		if ferr != nil {
			if ctx.Err() != nil {
				return logs, warnings, ctx.Err()
			}
			warnings = append(warnings, fmt.Sprintf("fetch logs of container %v failed: %v", ref.ContainerID, ferr))
			klog.Warningf("fetch logs of container %v failed: %v", ref.ContainerID, ferr)
		}
		if text != "" {
			logs = append(logs, text)
		}
	}
	return logs, warnings, nil
}

// cancelledOutcome kills the subprocess and asks the RM to kill the
// detached application, best effort, then reports the cancelled run.
func (t *Tracker) cancelledOutcome(ctx context.Context, appID string) *Outcome {
	t.runner.Kill()
	if appID != "" {
		// the run context is already cancelled, give the kill request its
		// own short deadline
		killCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := t.apps.KillApplication(killCtx, appID); err != nil {
			klog.Warningf("kill application %v on cluster failed: %v", appID, err)
		}
	}
	return &Outcome{
		Success:   false,
		ExitState: StateUnknown,
		ExitCode:  -1,
		Logs:      LogBundle{},
		Reason:    "run cancelled",
	}
}

func (t *Tracker) finish(outcome *Outcome) {
	if outcome.Success {
		t.setState(RunStateDone)
		runsTotal.WithLabelValues("success").Inc()
		if err := t.notifier.NotifySuccess(outcome.Logs); err != nil {
			klog.Errorf("success callback failed: %v", err)
		}
		return
	}
	t.setState(RunStateFailed)
	runsTotal.WithLabelValues("failure").Inc()
	if err := t.notifier.NotifyFailure(outcome.Reason, outcome.Logs); err != nil {
		klog.Errorf("failure callback failed: %v", err)
	}
}

func (t *Tracker) setState(state RunState) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	klog.V(3).Infof("run %v: %v -> %v", t.handle.RunID, t.state, state)
	t.state = state
}

func (t *Tracker) capturedLogs() LogBundle {
	if t.output == nil {
		return LogBundle{}
	}
	if text := t.output.Text(); text != "" {
		return LogBundle{text}
	}
	return LogBundle{}
}
