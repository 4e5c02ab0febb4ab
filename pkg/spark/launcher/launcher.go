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

package launcher

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"k8s.io/klog/v2"
)

// LaunchError means the spark-submit subprocess could not be started at all,
// e.g. the binary is missing. Never retried.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot launch %v: %v", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// LineObserver receives each combined stdout/stderr line of the subprocess
// as it arrives.
type LineObserver interface {
	ObserveLine(line string)
}

// Launcher runs one spark-submit subprocess, streaming its merged output
// line by line to the registered observers.
type Launcher struct {
	observers []LineObserver

	mtx sync.Mutex
	cmd *exec.Cmd
}

func NewLauncher(observers ...LineObserver) *Launcher {
	return &Launcher{observers: observers}
}

// Run starts argv as a subprocess with the parent environment plus env
// overrides, blocks until it terminates, and returns its exit code. The
// subprocess is killed when ctx is cancelled.
func (l *Launcher) Run(ctx context.Context, argv []string, env map[string]string) (int, error) {
	if len(argv) == 0 {
		return -1, &LaunchError{Err: fmt.Errorf("empty command")}
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = mergedEnv(env)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return -1, &LaunchError{Command: argv[0], Err: err}
	}
	// spark-submit writes its launch progress to stderr, merge it with stdout
	// so observers see one stream in arrival order.
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return -1, &LaunchError{Command: argv[0], Err: err}
	}
	l.mtx.Lock()
	l.cmd = cmd
	l.mtx.Unlock()

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		for _, o := range l.observers {
			o.ObserveLine(line)
		}
	}
	if err := scanner.Err(); err != nil {
		klog.Warningf("read spark-submit output failed: %v", err)
	}

	err = cmd.Wait()
	if ctx.Err() != nil {
		return -1, ctx.Err()
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}

// Kill sends a kill signal to a still running subprocess, if any. Safe to
// call concurrently with Run: os.Process serializes Kill against Wait, an
// already exited process reports os.ErrProcessDone.
func (l *Launcher) Kill() {
	l.mtx.Lock()
	cmd := l.cmd
	l.mtx.Unlock()
	if cmd == nil || cmd.Process == nil {
		return
	}
	klog.Infof("sending kill signal to %v", cmd.Path)
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		klog.Warningf("kill %v failed: %v", cmd.Path, err)
	}
}

func mergedEnv(env map[string]string) []string {
	merged := os.Environ()
	for k, v := range env {
		merged = append(merged, fmt.Sprintf("%s=%s", k, v))
	}
	return merged
}
