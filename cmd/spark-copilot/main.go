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

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	uuid "github.com/nu7hatch/gouuid"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/koordinator-sh/spark-copilot/cmd/spark-copilot/options"
	"github.com/koordinator-sh/spark-copilot/pkg/copilot/server"
	"github.com/koordinator-sh/spark-copilot/pkg/spark/launcher"
	"github.com/koordinator-sh/spark-copilot/pkg/spark/submit"
	"github.com/koordinator-sh/spark-copilot/pkg/spark/tracker"
	yarnclient "github.com/koordinator-sh/spark-copilot/pkg/yarn/client"
	yarnconf "github.com/koordinator-sh/spark-copilot/pkg/yarn/config"
	"github.com/koordinator-sh/spark-copilot/pkg/yarn/logs"
)

func main() {
	conf := options.NewConfiguration()
	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	conf.AddFlags(fs)
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	fs.AddGoFlagSet(klogFlags)
	if err := fs.Parse(os.Args[1:]); err != nil {
		klog.Fatal(err)
	}
	defer klog.Flush()

	if err := conf.Validate(); err != nil {
		klog.Fatal(err)
	}
	env, err := conf.Env()
	if err != nil {
		klog.Fatal(err)
	}
	fs.VisitAll(func(f *pflag.Flag) {
		klog.V(2).Infof("args: %s = %s", f.Name, f.Value)
	})

	submitOpts := &submit.Options{
		SparkBinary: conf.SparkBinary,
		SparkHome:   conf.SparkHome,
		Master:      conf.Master,
		DeployMode:  conf.DeployMode,
		Name:        conf.Name,
		Queue:       conf.Queue,
		Verbose:     conf.Verbose,
		Cmd:         conf.Cmd,
	}
	argv := submitOpts.Build()
	mode := tracker.DeployModeClient
	if submitOpts.IsClusterDeploy() {
		mode = tracker.DeployModeCluster
	}

	rmAddress, historyAddress, err := resolveAddresses(conf)
	if err != nil {
		klog.Fatal(err)
	}
	klog.Infof("resource manager %v, history server %v, deploy mode %v", rmAddress, historyAddress, mode)

	runID, err := uuid.NewV4()
	if err != nil {
		klog.Fatal(err)
	}
	handle := tracker.NewJobHandle(runID.String(), submit.MaskSecrets(conf.Cmd), mode)

	extractor := launcher.NewIDExtractor()
	output := tracker.NewOutputBuffer()
	run := launcher.NewLauncher(extractor, output)

	t := tracker.NewTracker(
		handle,
		run,
		extractor,
		output,
		yarnclient.NewApplicationClient(rmAddress, conf.CallTimeout),
		yarnclient.NewHistoryClient(historyAddress, conf.CallTimeout),
		logs.NewScraper(conf.CallTimeout),
		tracker.LogNotifier{},
		tracker.Config{
			PollInterval: conf.PollInterval,
			MaxWait:      conf.MaxWait,
			RetryCeiling: conf.RetryCeiling,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if conf.EnableServer {
		go func() {
			if err := server.NewCopilotServer(t, conf.ServerEndpoint).Run(ctx); err != nil {
				klog.Errorf("status server failed: %v", err)
			}
		}()
	}

	outcome := t.Run(ctx, argv, env)
	if !outcome.Success {
		klog.Flush()
		os.Exit(1)
	}
}

// resolveAddresses prefers the flags, then yarn-site.xml, then defaults.
func resolveAddresses(conf *options.Configuration) (string, string, error) {
	rm, history := conf.RMWebAppAddress, conf.HistoryWebAppAddress
	if rm != "" && history != "" {
		return rm, history, nil
	}
	yc, err := yarnconf.NewYarnConfiguration(conf.HadoopConfDir, conf.ClusterID)
	if err != nil {
		return "", "", err
	}
	if rm == "" {
		if rm, err = yc.GetRMWebAppAddress(); err != nil {
			return "", "", err
		}
	}
	if history == "" {
		if history, err = yc.GetHistoryWebAppAddress(); err != nil {
			return "", "", err
		}
	}
	return rm, history, nil
}
