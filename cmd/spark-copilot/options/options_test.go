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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Configuration)
		wantErr bool
	}{
		{
			name:   "defaults with cmd",
			mutate: func(c *Configuration) { c.Cmd = "--master yarn app.py" },
		},
		{
			name:    "missing cmd",
			mutate:  func(c *Configuration) {},
			wantErr: true,
		},
		{
			name: "zero poll interval",
			mutate: func(c *Configuration) {
				c.Cmd = "app.py"
				c.PollInterval = 0
			},
			wantErr: true,
		},
		{
			name: "negative retry ceiling",
			mutate: func(c *Configuration) {
				c.Cmd = "app.py"
				c.RetryCeiling = -1
			},
			wantErr: true,
		},
		{
			name: "bad deploy mode",
			mutate: func(c *Configuration) {
				c.Cmd = "app.py"
				c.DeployMode = "detached"
			},
			wantErr: true,
		},
		{
			name: "cluster deploy mode",
			mutate: func(c *Configuration) {
				c.Cmd = "app.py"
				c.DeployMode = "cluster"
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := NewConfiguration()
			tt.mutate(conf)
			err := conf.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnv(t *testing.T) {
	conf := NewConfiguration()
	conf.EnvVars = []string{"HADOOP_CONF_DIR=/etc/hadoop/conf", "JAVA_HOME=/usr/lib/jvm"}
	env, err := conf.Env()
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{
		"HADOOP_CONF_DIR": "/etc/hadoop/conf",
		"JAVA_HOME":       "/usr/lib/jvm",
	}, env)

	conf.EnvVars = []string{"MALFORMED"}
	_, err = conf.Env()
	assert.Error(t, err)
}

func TestNewConfigurationDefaults(t *testing.T) {
	conf := NewConfiguration()
	assert.Equal(t, DefaultSparkBinary, conf.SparkBinary)
	assert.Equal(t, time.Second, conf.PollInterval)
	assert.Equal(t, DefaultRetryCeiling, conf.RetryCeiling)
	assert.Equal(t, DefaultServerEndpoint, conf.ServerEndpoint)
}
