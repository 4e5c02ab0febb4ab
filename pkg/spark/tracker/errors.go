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
	"errors"
)

var (
	// ErrApplicationIDNotFound means the subprocess output ended without an
	// application id. Fatal in cluster mode, expected in client mode.
	ErrApplicationIDNotFound = errors.New("no application id found in spark-submit output")

	// ErrStatusPollExhausted means the configured retry ceiling was exceeded
	// by consecutive failed status requests.
	ErrStatusPollExhausted = errors.New("status poll retries exhausted")

	// ErrStatusPollTimeout means the wait budget elapsed before the
	// application reached a terminal state.
	ErrStatusPollTimeout = errors.New("status poll wait budget exceeded")

	// ErrHistoryServerUnreachable means log locations could not be resolved
	// from the history server within the retry ceiling.
	ErrHistoryServerUnreachable = errors.New("history server unreachable")
)
