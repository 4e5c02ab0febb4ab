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

	"k8s.io/klog/v2"
)

// OutputBuffer captures the subprocess output stream. In client deploy mode
// this is the driver log itself.
type OutputBuffer struct {
	mtx   sync.Mutex
	lines []string
}

func NewOutputBuffer() *OutputBuffer {
	return &OutputBuffer{}
}

func (b *OutputBuffer) ObserveLine(line string) {
	klog.V(2).Info(line)
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.lines = append(b.lines, line)
}

// Text returns the captured output with line breaks restored.
func (b *OutputBuffer) Text() string {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return strings.Join(b.lines, "\n")
}
