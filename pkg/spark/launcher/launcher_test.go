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
	"context"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type lineRecorder struct {
	mtx   sync.Mutex
	lines []string
}

func (r *lineRecorder) ObserveLine(line string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.lines = append(r.lines, line)
}

func (r *lineRecorder) Lines() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return append([]string{}, r.lines...)
}

func skipWithoutShell(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test needs /bin/sh")
	}
}

func TestRunStreamsOutput(t *testing.T) {
	skipWithoutShell(t)
	rec := &lineRecorder{}
	l := NewLauncher(rec)

	code, err := l.Run(context.Background(), []string{"/bin/sh", "-c", "echo line1; echo line2 1>&2; echo line3"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.ElementsMatch(t, []string{"line1", "line2", "line3"}, rec.Lines())
}

func TestRunReturnsExitCode(t *testing.T) {
	skipWithoutShell(t)
	l := NewLauncher()
	code, err := l.Run(context.Background(), []string{"/bin/sh", "-c", "exit 3"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestRunPassesEnv(t *testing.T) {
	skipWithoutShell(t)
	rec := &lineRecorder{}
	l := NewLauncher(rec)
	code, err := l.Run(context.Background(), []string{"/bin/sh", "-c", "echo $COPILOT_TEST_VAR"}, map[string]string{"COPILOT_TEST_VAR": "from-env"})
	assert.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"from-env"}, rec.Lines())
}

func TestRunMissingBinary(t *testing.T) {
	l := NewLauncher()
	_, err := l.Run(context.Background(), []string{"/nonexistent/spark-submit-binary"}, nil)
	launchErr := &LaunchError{}
	assert.ErrorAs(t, err, &launchErr)
}

func TestRunEmptyCommand(t *testing.T) {
	l := NewLauncher()
	_, err := l.Run(context.Background(), nil, nil)
	launchErr := &LaunchError{}
	assert.ErrorAs(t, err, &launchErr)
}

func TestKillConcurrentWithRun(t *testing.T) {
	skipWithoutShell(t)
	l := NewLauncher()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// the exit carries no signal here, Kill decides when the process ends
		_, _ = l.Run(context.Background(), []string{"/bin/sh", "-c", "sleep 60"}, nil)
	}()

	// hammer Kill while Run is inside Wait, including after the process died
	deadline := time.After(2 * time.Second)
	for i := 0; ; i++ {
		l.Kill()
		select {
		case <-done:
			return
		case <-deadline:
			t.Fatal("subprocess still running after kill")
		default:
		}
		if i%10 == 0 {
			time.Sleep(time.Millisecond)
		}
	}
}

func TestKillBeforeRunIsNoop(t *testing.T) {
	l := NewLauncher()
	l.Kill()
}

func TestRunKilledOnContextCancel(t *testing.T) {
	skipWithoutShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLauncher()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := l.Run(ctx, []string{"/bin/sh", "-c", "sleep 60"}, nil)
		assert.Error(t, err)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("subprocess not killed on context cancellation")
	}
}
