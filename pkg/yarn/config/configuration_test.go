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

package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeResource(t *testing.T, dir, name, content string) {
	t.Helper()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

const yarnSiteXML = `<?xml version="1.0"?>
<configuration>
  <property>
    <name>yarn.resourcemanager.webapp.address</name>
    <value>rm-host:8088</value>
  </property>
  <property>
    <name>spark.history.webapp.address</name>
    <value>history-host:18088</value>
  </property>
  <property>
    <name>yarn.copilot.test.int</name>
    <value>42</value>
  </property>
</configuration>`

func TestYarnConfigurationFromSite(t *testing.T) {
	dir := t.TempDir()
	writeResource(t, dir, "yarn-site.xml", yarnSiteXML)

	yc, err := NewYarnConfiguration(dir, "")
	assert.NoError(t, err)

	rm, err := yc.GetRMWebAppAddress()
	assert.NoError(t, err)
	assert.Equal(t, "rm-host:8088", rm)

	history, err := yc.GetHistoryWebAppAddress()
	assert.NoError(t, err)
	assert.Equal(t, "history-host:18088", history)

	n, err := yc.GetInt("yarn.copilot.test.int", 0)
	assert.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestYarnConfigurationDefaults(t *testing.T) {
	yc, err := NewYarnConfiguration(t.TempDir(), "")
	assert.NoError(t, err)

	rm, err := yc.GetRMWebAppAddress()
	assert.NoError(t, err)
	assert.Equal(t, DEFAULT_RM_WEBAPP_ADDRESS, rm)

	history, err := yc.GetHistoryWebAppAddress()
	assert.NoError(t, err)
	assert.Equal(t, DEFAULT_SPARK_HISTORY_WEBAPP_ADDRESS, history)
}

func TestLaterResourceOverrides(t *testing.T) {
	dir := t.TempDir()
	writeResource(t, dir, "yarn-default.xml", `<configuration>
  <property><name>yarn.resourcemanager.webapp.address</name><value>default-host:8088</value></property>
</configuration>`)
	writeResource(t, dir, "yarn-site.xml", `<configuration>
  <property><name>yarn.resourcemanager.webapp.address</name><value>site-host:8088</value></property>
</configuration>`)

	yc, err := NewYarnConfiguration(dir, "")
	assert.NoError(t, err)
	rm, err := yc.GetRMWebAppAddress()
	assert.NoError(t, err)
	assert.Equal(t, "site-host:8088", rm)
}

func TestClusterIDPrefixedResource(t *testing.T) {
	dir := t.TempDir()
	writeResource(t, dir, "yarn-site.xml", `<configuration>
  <property><name>yarn.resourcemanager.webapp.address</name><value>shared-host:8088</value></property>
</configuration>`)
	writeResource(t, dir, "blue.yarn-site.xml", `<configuration>
  <property><name>yarn.resourcemanager.webapp.address</name><value>blue-host:8088</value></property>
</configuration>`)

	yc, err := NewYarnConfiguration(dir, "blue")
	assert.NoError(t, err)
	rm, err := yc.GetRMWebAppAddress()
	assert.NoError(t, err)
	assert.Equal(t, "blue-host:8088", rm)
}

func TestSetOverridesValue(t *testing.T) {
	yc, err := NewYarnConfiguration(t.TempDir(), "")
	assert.NoError(t, err)
	assert.NoError(t, yc.Set(RM_WEBAPP_ADDRESS, "explicit:8088"))
	rm, err := yc.GetRMWebAppAddress()
	assert.NoError(t, err)
	assert.Equal(t, "explicit:8088", rm)
}
