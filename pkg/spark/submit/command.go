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

package submit

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const DefaultSparkBinary = "spark-submit"

// Options describes one spark-submit invocation. Cmd is the opaque tail of
// the command line configured by the task, everything else maps to a
// spark-submit flag.
type Options struct {
	SparkBinary    string
	SparkHome      string
	Master         string
	DeployMode     string
	Name           string
	Queue          string
	Conf           map[string]string
	Files          string
	PyFiles        string
	Archives       string
	Jars           string
	JavaClass      string
	Packages       string
	DriverMemory   string
	ExecutorMemory string
	ExecutorCores  int
	NumExecutors   int
	ProxyUser      string
	Verbose        bool
	Cmd            string
}

// Build assembles the spark-submit argv. The opaque Cmd tail is split on
// whitespace and appended last, matching how the task configures it.
func (o *Options) Build() []string {
	argv := []string{o.binaryPath()}
	if o.Master != "" {
		argv = append(argv, "--master", o.Master)
	}
	if o.DeployMode != "" {
		argv = append(argv, "--deploy-mode", o.DeployMode)
	}
	if o.Name != "" {
		argv = append(argv, "--name", o.Name)
	}
	if o.Queue != "" {
		argv = append(argv, "--queue", o.Queue)
	}
	for _, k := range sortedKeys(o.Conf) {
		argv = append(argv, "--conf", fmt.Sprintf("%s=%s", k, o.Conf[k]))
	}
	if o.Files != "" {
		argv = append(argv, "--files", o.Files)
	}
	if o.PyFiles != "" {
		argv = append(argv, "--py-files", o.PyFiles)
	}
	if o.Archives != "" {
		argv = append(argv, "--archives", o.Archives)
	}
	if o.Jars != "" {
		argv = append(argv, "--jars", o.Jars)
	}
	if o.JavaClass != "" {
		argv = append(argv, "--class", o.JavaClass)
	}
	if o.Packages != "" {
		argv = append(argv, "--packages", o.Packages)
	}
	if o.DriverMemory != "" {
		argv = append(argv, "--driver-memory", o.DriverMemory)
	}
	if o.ExecutorMemory != "" {
		argv = append(argv, "--executor-memory", o.ExecutorMemory)
	}
	if o.ExecutorCores > 0 {
		argv = append(argv, "--executor-cores", fmt.Sprintf("%d", o.ExecutorCores))
	}
	if o.NumExecutors > 0 {
		argv = append(argv, "--num-executors", fmt.Sprintf("%d", o.NumExecutors))
	}
	if o.ProxyUser != "" {
		argv = append(argv, "--proxy-user", o.ProxyUser)
	}
	if o.Verbose {
		argv = append(argv, "--verbose")
	}
	if o.Cmd != "" {
		argv = append(argv, strings.Fields(o.Cmd)...)
	}
	return argv
}

// IsClusterDeploy reports whether the invocation runs the driver on the
// cluster. When DeployMode is unset it is detected from the opaque Cmd tail.
func (o *Options) IsClusterDeploy() bool {
	if o.DeployMode != "" {
		return o.DeployMode == "cluster"
	}
	fields := strings.Fields(o.Cmd)
	for i, f := range fields {
		if f == "--deploy-mode" && i+1 < len(fields) {
			return fields[i+1] == "cluster"
		}
		if strings.HasPrefix(f, "--deploy-mode=") {
			return strings.TrimPrefix(f, "--deploy-mode=") == "cluster"
		}
	}
	return false
}

func (o *Options) binaryPath() string {
	binary := o.SparkBinary
	if binary == "" {
		binary = DefaultSparkBinary
	}
	if o.SparkHome != "" {
		return filepath.Join(o.SparkHome, "bin", binary)
	}
	return binary
}

var secretPattern = regexp.MustCompile(`(?i)(\S*?(?:secret|password)\S*?\s*=\s*')[^']*(')`)

// MaskSecrets masks password'ish key value pairs in application arguments,
// e.g. HivePassword='abc' becomes HivePassword='******'.
func MaskSecrets(cmd string) string {
	return secretPattern.ReplaceAllString(cmd, "${1}******${2}")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
