/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/asgardeo/cloudinit/internal/metadata"
	"github.com/asgardeo/cloudinit/internal/state"
	"github.com/asgardeo/cloudinit/internal/system/config"
	"github.com/asgardeo/cloudinit/internal/system/database/provider"
	"github.com/asgardeo/cloudinit/internal/system/log"
	"github.com/asgardeo/cloudinit/internal/system/metrics"
	"github.com/asgardeo/cloudinit/internal/userdata"
	"github.com/asgardeo/cloudinit/internal/userdata/constants"
	"github.com/asgardeo/cloudinit/internal/userdata/model"
	"github.com/asgardeo/cloudinit/internal/userdata/plugins"
	"github.com/asgardeo/cloudinit/internal/userdata/plugins/parthandler"
	"github.com/asgardeo/cloudinit/internal/userdata/plugins/shellscript"
	"github.com/asgardeo/cloudinit/internal/userdata/script"
)

const loggerComponentName = "Agent"

// agent wires the components taking part in a user data execution.
type agent struct {
	home       string
	cfg        *config.Config
	source     metadata.SourceInterface
	service    userdata.UserDataServiceInterface
	collector  *metrics.Collector
	dbProvider provider.DBProviderInterface
	store      state.ExecutionStoreInterface
	logger     *log.Logger
}

// runOutcome is the result of the run command.
type runOutcome struct {
	result  model.ExecutionResult
	skipped bool
	runID   string
}

// newAgent creates an agent from the runtime configuration.
func newAgent(runtime *config.AgentRuntime) (*agent, error) {
	cfg := runtime.Config

	source, err := metadata.NewSource(cfg.Metadata)
	if err != nil {
		return nil, err
	}

	executor := script.NewExecutor(cfg.Script)
	loader := plugins.NewLoader(cfg.UserData.Plugins)
	loader.RegisterFactory(constants.ShellScriptContentType, shellscript.NewFactory(executor))
	loader.RegisterFactory(constants.PartHandlerContentType, parthandler.NewFactory())

	collector := metrics.NewCollector()
	a := &agent{
		home:      runtime.AgentHome,
		cfg:       &cfg,
		source:    source,
		service:   userdata.NewUserDataService(cfg.Metadata.Namespace, loader, executor, collector),
		collector: collector,
		logger:    log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)),
	}

	if cfg.State.Enabled {
		dbProvider := provider.NewDBProvider(runtime.AgentHome, cfg.State.DataSource)
		a.dbProvider = dbProvider
		a.store = state.NewExecutionStore(dbProvider)
	}
	return a, nil
}

// close releases the resources held by the agent.
func (a *agent) close() {
	if a.dbProvider == nil {
		return
	}
	if err := a.dbProvider.Close(); err != nil {
		a.logger.Error("Failed to close database provider", log.Error(err))
	}
}

// run processes the user data. When the state store is enabled, user data already completed
// for the instance is skipped unless force is set, and the outcome of the run is recorded.
func (a *agent) run(ctx context.Context, force bool) (runOutcome, error) {
	instanceID := a.getInstanceID(ctx)

	if a.store != nil && instanceID != "" && !force {
		last, err := a.store.GetLastExecution(instanceID)
		if err != nil {
			return runOutcome{}, err
		}
		if last != nil && last.IsCompleted() {
			a.logger.Info("User data already executed", log.String("instanceId", instanceID),
				log.String(log.LoggerKeyRunID, last.RunID))
			return runOutcome{result: model.DoneResult(), skipped: true, runID: last.RunID}, nil
		}
	}

	result, err := a.service.Execute(ctx, a.source)
	if err != nil {
		return runOutcome{}, err
	}
	outcome := runOutcome{result: result}

	if a.store != nil && instanceID != "" {
		record, err := a.store.RecordExecution(instanceID, result)
		if err != nil {
			return runOutcome{}, err
		}
		outcome.runID = record.RunID
	}

	a.writeMetrics()
	return outcome, nil
}

// status returns the last execution recorded for the instance.
func (a *agent) status(ctx context.Context) (string, *state.ExecutionRecord, error) {
	if a.store == nil {
		return "", nil, errors.New("execution state store is not enabled")
	}
	instanceID := a.getInstanceID(ctx)
	if instanceID == "" {
		return "", nil, errors.New("instance id is not available")
	}

	record, err := a.store.GetLastExecution(instanceID)
	if err != nil {
		return instanceID, nil, err
	}
	return instanceID, record, nil
}

// getInstanceID returns the instance id from the metadata source, or an empty string when
// it is not available.
func (a *agent) getInstanceID(ctx context.Context) string {
	instanceID, err := a.source.GetInstanceID(ctx, a.cfg.Metadata.Namespace)
	if err != nil {
		a.logger.Warn("Instance id is not available, execution state is not tracked", log.Error(err))
		return ""
	}
	return instanceID
}

// writeMetrics writes the collected metrics to the configured textfile.
func (a *agent) writeMetrics() {
	path := a.cfg.Metrics.TextFile
	if path == "" {
		return
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.home, path)
	}
	if err := a.collector.WriteToTextfile(path); err != nil {
		a.logger.Error("Failed to write metrics", log.String("path", path), log.Error(err))
	}
}

// runUserData runs the user data and prints the outcome.
func runUserData(ctx context.Context, out io.Writer, force bool) error {
	a, err := newAgent(config.GetAgentRuntime())
	if err != nil {
		return err
	}
	defer a.close()

	outcome, err := a.run(ctx, force)
	if err != nil {
		return err
	}

	if outcome.skipped {
		_, err = fmt.Fprintf(out, "skipped: already executed in run %s\n", outcome.runID)
		return err
	}
	_, err = fmt.Fprintf(out, "status: %s\nreboot: %t\n", outcome.result.Status, outcome.result.Reboot)
	return err
}

// showStatus prints the last recorded execution.
func showStatus(ctx context.Context, out io.Writer) error {
	a, err := newAgent(config.GetAgentRuntime())
	if err != nil {
		return err
	}
	defer a.close()

	instanceID, record, err := a.status(ctx)
	if err != nil {
		return err
	}
	if record == nil {
		_, err = fmt.Fprintf(out, "instance: %s\nno execution recorded\n", instanceID)
		return err
	}
	_, err = fmt.Fprintf(out, "instance: %s\nrun: %s\nstatus: %s\nreboot: %t\ntime: %s\n",
		instanceID, record.RunID, record.Status, record.Reboot, record.CreatedAt.Format(time.RFC3339))
	return err
}
