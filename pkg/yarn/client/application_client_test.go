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

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetApplication(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/v1/cluster/apps/application_1700000000000_0007", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
			"app": map[string]interface{}{
				"id":              "application_1700000000000_0007",
				"state":           "RUNNING",
				"finalStatus":     "UNDEFINED",
				"progress":        42.5,
				"amContainerLogs": "http://nm-host:8042/node/containerlogs/container_01/user",
			},
		}))
	}))
	defer srv.Close()

	c := NewApplicationClient(srv.URL, time.Second)
	app, err := c.GetApplication(context.Background(), "application_1700000000000_0007")
	assert.NoError(t, err)
	assert.Equal(t, "RUNNING", app.State)
	assert.Equal(t, "UNDEFINED", app.FinalStatus)
	assert.Equal(t, "http://nm-host:8042/node/containerlogs/container_01/user", app.AmContainerLogs)
}

func TestGetApplicationServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewApplicationClient(srv.URL, time.Second)
	_, err := c.GetApplication(context.Background(), "application_1_1")
	statusErr := &StatusError{}
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
}

func TestGetApplicationMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewApplicationClient(srv.URL, time.Second)
	_, err := c.GetApplication(context.Background(), "application_1_1")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGetApplicationConnectionRefused(t *testing.T) {
	c := NewApplicationClient("127.0.0.1:1", 200*time.Millisecond)
	_, err := c.GetApplication(context.Background(), "application_1_1")
	assert.Error(t, err)
}

func TestKillApplication(t *testing.T) {
	var gotBody appStateBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/ws/v1/cluster/apps/application_1_1/state", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewApplicationClient(srv.URL, time.Second)
	assert.NoError(t, c.KillApplication(context.Background(), "application_1_1"))
	assert.Equal(t, "KILLED", gotBody.State)
}

func TestWebAppURL(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
	}{
		{name: "bare host port", address: "rm-host:8088", want: "http://rm-host:8088"},
		{name: "http scheme kept", address: "http://rm-host:8088", want: "http://rm-host:8088"},
		{name: "https scheme kept", address: "https://rm-host:8088", want: "https://rm-host:8088"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, webAppURL(tt.address))
		})
	}
}
