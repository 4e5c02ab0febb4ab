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
	"k8s.io/klog/v2"
)

// Notifier receives the outcome of one run, exactly once. The orchestration
// task injects its success and failure callbacks behind this interface.
type Notifier interface {
	NotifySuccess(logs LogBundle) error
	NotifyFailure(reason string, partialLogs LogBundle) error
}

// LogNotifier writes the outcome to the log, the default when the task
// injects no callbacks.
type LogNotifier struct{}

func (LogNotifier) NotifySuccess(logs LogBundle) error {
	klog.Infof("job succeeded, %d log segments", len(logs))
	for _, segment := range logs {
		klog.Info(segment)
	}
	return nil
}

func (LogNotifier) NotifyFailure(reason string, partialLogs LogBundle) error {
	klog.Errorf("job failed: %v", reason)
	for _, segment := range partialLogs {
		klog.Info(segment)
	}
	return nil
}
