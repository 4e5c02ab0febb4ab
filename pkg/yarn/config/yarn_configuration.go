/*
Copyright 2013 The Cloudera Inc.
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

var (
	YARN_DEFAULT Resource = Resource{"yarn-default.xml", false}
	YARN_SITE    Resource = Resource{"yarn-site.xml", false}
)

const (
	YARN_PREFIX       = "yarn."
	RM_PREFIX         = YARN_PREFIX + "resourcemanager."
	RM_WEBAPP_ADDRESS = RM_PREFIX + "webapp.address"

	SPARK_HISTORY_WEBAPP_ADDRESS = "spark.history.webapp.address"

	DEFAULT_RM_WEBAPP_ADDRESS            = "0.0.0.0:8088"
	DEFAULT_SPARK_HISTORY_WEBAPP_ADDRESS = "0.0.0.0:18088"
)

type yarn_configuration struct {
	conf Configuration
}

// YarnConfiguration resolves the web endpoints the job tracker talks to, the
// RM status REST API and the history server, from Hadoop style XML resources.
type YarnConfiguration interface {
	GetRMWebAppAddress() (string, error)
	GetHistoryWebAppAddress() (string, error)

	Get(key string, defaultValue string) (string, error)
	GetInt(key string, defaultValue int) (int, error)

	Set(key string, value string) error
	SetInt(key string, value int) error
}

func (yarnConf *yarn_configuration) Get(key string, defaultValue string) (string, error) {
	return yarnConf.conf.Get(key, defaultValue)
}

func (yarnConf *yarn_configuration) GetInt(key string, defaultValue int) (int, error) {
	return yarnConf.conf.GetInt(key, defaultValue)
}

func (yarnConf *yarn_configuration) GetRMWebAppAddress() (string, error) {
	return yarnConf.conf.Get(RM_WEBAPP_ADDRESS, DEFAULT_RM_WEBAPP_ADDRESS)
}

func (yarnConf *yarn_configuration) GetHistoryWebAppAddress() (string, error) {
	return yarnConf.conf.Get(SPARK_HISTORY_WEBAPP_ADDRESS, DEFAULT_SPARK_HISTORY_WEBAPP_ADDRESS)
}

func (yarnConf *yarn_configuration) Set(key string, value string) error {
	return yarnConf.conf.Set(key, value)
}

func (yarnConf *yarn_configuration) SetInt(key string, value int) error {
	return yarnConf.conf.SetInt(key, value)
}

func NewYarnConfiguration(hadoopConfDir string, clusterID string) (YarnConfiguration, error) {
	// for yarn-site.xml with cluster id, read from clusterid.yarn-site.xml
	c, err := NewConfigurationResources(hadoopConfDir, []Resource{YARN_DEFAULT, YARN_SITE}, configPrefix(clusterID))
	return &yarn_configuration{conf: c}, err
}

func configPrefix(clusterID string) string {
	if clusterID != "" {
		return clusterID + "."
	}
	return ""
}
