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

package options

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

const (
	DefaultSparkBinary    = "spark-submit"
	DefaultName           = "spark-copilot"
	DefaultPollInterval   = time.Second
	DefaultMaxWait        = 60 * time.Minute
	DefaultRetryCeiling   = 10
	DefaultCallTimeout    = 30 * time.Second
	DefaultServerEndpoint = "127.0.0.1:9316"

	envHadoopConfDir = "HADOOP_CONF_DIR"
)

type Configuration struct {
	Cmd        string
	Master     string
	DeployMode string
	Name       string
	Queue      string

	SparkBinary   string
	SparkHome     string
	HadoopConfDir string
	ClusterID     string
	EnvVars       []string

	PollInterval time.Duration
	MaxWait      time.Duration
	RetryCeiling int
	CallTimeout  time.Duration

	RMWebAppAddress      string
	HistoryWebAppAddress string

	EnableServer   bool
	ServerEndpoint string

	Verbose bool
}

func NewConfiguration() *Configuration {
	return &Configuration{
		SparkBinary:    DefaultSparkBinary,
		Name:           DefaultName,
		HadoopConfDir:  os.Getenv(envHadoopConfDir),
		PollInterval:   DefaultPollInterval,
		MaxWait:        DefaultMaxWait,
		RetryCeiling:   DefaultRetryCeiling,
		CallTimeout:    DefaultCallTimeout,
		ServerEndpoint: DefaultServerEndpoint,
	}
}

func (c *Configuration) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Cmd, "cmd", c.Cmd, "command line appended to spark-submit, opaque to the tracker")
	fs.StringVar(&c.Master, "master", c.Master, "spark master, e.g. yarn")
	fs.StringVar(&c.DeployMode, "deploy-mode", c.DeployMode, "client or cluster, detected from --cmd when empty")
	fs.StringVar(&c.Name, "name", c.Name, "spark application name")
	fs.StringVar(&c.Queue, "queue", c.Queue, "yarn queue to submit to")
	fs.StringVar(&c.SparkBinary, "spark-binary", c.SparkBinary, "spark submit binary, some distros use spark2-submit")
	fs.StringVar(&c.SparkHome, "spark-home", c.SparkHome, "spark home, the binary is resolved under its bin directory when set")
	fs.StringVar(&c.HadoopConfDir, "hadoop-conf-dir", c.HadoopConfDir, "directory holding yarn-site.xml, defaults to $HADOOP_CONF_DIR")
	fs.StringVar(&c.ClusterID, "cluster-id", c.ClusterID, "yarn cluster id for prefixed yarn-site.xml resources")
	fs.StringSliceVar(&c.EnvVars, "env", c.EnvVars, "KEY=VALUE environment overrides for the subprocess")
	fs.DurationVar(&c.PollInterval, "status-poll-interval", c.PollInterval, "interval between status polls in cluster mode")
	fs.DurationVar(&c.MaxWait, "max-wait", c.MaxWait, "maximum time to wait for a terminal application state")
	fs.IntVar(&c.RetryCeiling, "retry-ceiling", c.RetryCeiling, "consecutive transient faults tolerated per stage")
	fs.DurationVar(&c.CallTimeout, "call-timeout", c.CallTimeout, "timeout of one REST call")
	fs.StringVar(&c.RMWebAppAddress, "rm-webapp-address", c.RMWebAppAddress, "resource manager webapp address, overrides yarn-site.xml")
	fs.StringVar(&c.HistoryWebAppAddress, "history-webapp-address", c.HistoryWebAppAddress, "history server webapp address, overrides yarn-site.xml")
	fs.BoolVar(&c.EnableServer, "enable-status-server", c.EnableServer, "serve /healthz, /v1/status and /metrics while the run is in flight")
	fs.StringVar(&c.ServerEndpoint, "server-endpoint", c.ServerEndpoint, "status server listen address")
	fs.BoolVar(&c.Verbose, "verbose", c.Verbose, "pass --verbose to spark-submit")
}

func (c *Configuration) Validate() error {
	if strings.TrimSpace(c.Cmd) == "" {
		return fmt.Errorf("--cmd is required")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("--status-poll-interval must be positive")
	}
	if c.MaxWait <= 0 {
		return fmt.Errorf("--max-wait must be positive")
	}
	if c.RetryCeiling < 0 {
		return fmt.Errorf("--retry-ceiling must not be negative")
	}
	if c.DeployMode != "" && c.DeployMode != "client" && c.DeployMode != "cluster" {
		return fmt.Errorf("--deploy-mode must be client or cluster, got %v", c.DeployMode)
	}
	return nil
}

// Env returns the KEY=VALUE overrides as a map.
func (c *Configuration) Env() (map[string]string, error) {
	env := map[string]string{}
	for _, kv := range c.EnvVars {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("malformed --env entry %q, want KEY=VALUE", kv)
		}
		env[parts[0]] = parts[1]
	}
	return env, nil
}
