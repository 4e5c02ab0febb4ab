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

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"k8s.io/klog/v2"
)

// Resource names one Hadoop configuration file. A missing required resource
// fails configuration loading, optional resources are skipped silently.
type Resource struct {
	Name     string
	Required bool
}

type Configuration interface {
	Get(key string, defaultValue string) (string, error)
	GetInt(key string, defaultValue int) (int, error)
	GetBool(key string, defaultValue bool) (bool, error)

	Set(key string, value string) error
	SetInt(key string, value int) error
}

type hadoopProperty struct {
	Name  string `xml:"name"`
	Value string `xml:"value"`
}

type hadoopConfigurationFile struct {
	XMLName    xml.Name         `xml:"configuration"`
	Properties []hadoopProperty `xml:"property"`
}

type configuration struct {
	mtx        sync.RWMutex
	properties map[string]string
}

// NewConfigurationResources loads Hadoop XML resources from confDir in order,
// later resources overriding earlier ones. Resource file names are looked up
// with the given prefix first (e.g. "clusterid.yarn-site.xml").
func NewConfigurationResources(confDir string, resources []Resource, prefix string) (Configuration, error) {
	c := &configuration{properties: map[string]string{}}
	for _, res := range resources {
		path := filepath.Join(confDir, prefix+res.Name)
		if prefix != "" {
			if _, err := os.Stat(path); err != nil {
				path = filepath.Join(confDir, res.Name)
			}
		}
		if err := c.loadResource(path); err != nil {
			if res.Required {
				return nil, fmt.Errorf("load required resource %v failed: %v", path, err)
			}
			klog.V(4).Infof("skip optional resource %v: %v", path, err)
		}
	}
	return c, nil
}

func (c *configuration) loadResource(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	parsed := &hadoopConfigurationFile{}
	if err := xml.Unmarshal(data, parsed); err != nil {
		return fmt.Errorf("parse %v failed: %v", path, err)
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	for _, prop := range parsed.Properties {
		if prop.Name == "" {
			continue
		}
		c.properties[prop.Name] = prop.Value
	}
	klog.V(4).Infof("loaded %d properties from %v", len(parsed.Properties), path)
	return nil
}

func (c *configuration) Get(key string, defaultValue string) (string, error) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	if v, ok := c.properties[key]; ok && v != "" {
		return v, nil
	}
	return defaultValue, nil
}

func (c *configuration) GetInt(key string, defaultValue int) (int, error) {
	v, err := c.Get(key, strconv.Itoa(defaultValue))
	if err != nil {
		return defaultValue, err
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, fmt.Errorf("value of %v is not an int: %v", key, err)
	}
	return parsed, nil
}

func (c *configuration) GetBool(key string, defaultValue bool) (bool, error) {
	v, err := c.Get(key, strconv.FormatBool(defaultValue))
	if err != nil {
		return defaultValue, err
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue, fmt.Errorf("value of %v is not a bool: %v", key, err)
	}
	return parsed, nil
}

func (c *configuration) Set(key string, value string) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.properties[key] = value
	return nil
}

func (c *configuration) SetInt(key string, value int) error {
	return c.Set(key, strconv.Itoa(value))
}
