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
	"regexp"
	"sync"

	"k8s.io/klog/v2"
)

// RM assigns ids of the form application_<cluster timestamp>_<sequence>.
var appIDPattern = regexp.MustCompile(`application_[0-9]+_[0-9]+`)

// IDExtractor scans subprocess output for the RM assigned application id.
// The first match wins, an application keeps one id for its lifetime.
type IDExtractor struct {
	mtx   sync.RWMutex
	appID string
}

func NewIDExtractor() *IDExtractor {
	return &IDExtractor{}
}

func (e *IDExtractor) ObserveLine(line string) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	if e.appID != "" {
		return
	}
	if match := appIDPattern.FindString(line); match != "" {
		e.appID = match
		klog.Infof("identified spark application id: %v", match)
	}
}

// AppID returns the extracted application id, or false if none was seen yet.
func (e *IDExtractor) AppID() (string, bool) {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	return e.appID, e.appID != ""
}
