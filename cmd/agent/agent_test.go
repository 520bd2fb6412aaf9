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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/cloudinit/internal/metadata"
	"github.com/asgardeo/cloudinit/internal/system/config"
	"github.com/asgardeo/cloudinit/internal/userdata/model"
)

// fixedResultService returns the same result on every execution and counts the executions.
type fixedResultService struct {
	result model.ExecutionResult
	calls  int
}

func (s *fixedResultService) Execute(ctx context.Context, source metadata.SourceInterface) (
	model.ExecutionResult, error) {
	s.calls++
	return s.result, nil
}

type AgentTestSuite struct {
	suite.Suite
	home      string
	driveRoot string
	runtime   *config.AgentRuntime
}

func TestAgentSuite(t *testing.T) {
	suite.Run(t, new(AgentTestSuite))
}

func (suite *AgentTestSuite) SetupTest() {
	suite.home = suite.T().TempDir()
	suite.driveRoot = filepath.Join(suite.home, "drive")
	suite.Require().NoError(os.MkdirAll(filepath.Join(suite.driveRoot, "openstack", "latest"), 0o750))
	suite.writeDriveFile("meta_data.json", `{"uuid": "instance-1"}`)

	cfg, err := config.DefaultConfig()
	suite.Require().NoError(err)
	cfg.Metadata.Type = "configdrive"
	cfg.Metadata.ConfigDrive.Path = suite.driveRoot
	cfg.Script.WorkDir = suite.T().TempDir()
	cfg.State.Enabled = true
	cfg.State.DataSource = config.DataSource{Type: "sqlite", Path: "data/state.db"}
	cfg.Metrics.TextFile = "metrics/userdata.prom"
	suite.Require().NoError(os.MkdirAll(filepath.Join(suite.home, "metrics"), 0o750))

	suite.runtime = &config.AgentRuntime{AgentHome: suite.home, Config: *cfg}
}

func (suite *AgentTestSuite) writeDriveFile(name, content string) {
	path := filepath.Join(suite.driveRoot, "openstack", "latest", name)
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
}

func (suite *AgentTestSuite) runAgent(force bool) runOutcome {
	a, err := newAgent(suite.runtime)
	suite.Require().NoError(err)
	defer a.close()

	outcome, err := a.run(context.Background(), force)
	suite.Require().NoError(err)
	return outcome
}

func (suite *AgentTestSuite) TestRunWithoutUserData() {
	outcome := suite.runAgent(false)

	assert.False(suite.T(), outcome.skipped)
	assert.Equal(suite.T(), model.DoneResult(), outcome.result)
	assert.NotEmpty(suite.T(), outcome.runID)
}

func (suite *AgentTestSuite) TestRunSkipsCompletedExecution() {
	marker := filepath.Join(suite.home, "marker")
	suite.writeDriveFile("user_data", "#!/bin/sh\necho run >> "+marker+"\n")

	first := suite.runAgent(false)
	assert.False(suite.T(), first.skipped)
	assert.Equal(suite.T(), model.DoneResult(), first.result)

	second := suite.runAgent(false)
	assert.True(suite.T(), second.skipped)
	assert.Equal(suite.T(), first.runID, second.runID)

	forced := suite.runAgent(true)
	assert.False(suite.T(), forced.skipped)
	assert.NotEqual(suite.T(), first.runID, forced.runID)

	content, err := os.ReadFile(marker)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "run\nrun\n", string(content))
}

func (suite *AgentTestSuite) bootWithService(service *fixedResultService) runOutcome {
	a, err := newAgent(suite.runtime)
	suite.Require().NoError(err)
	defer a.close()
	a.service = service

	outcome, err := a.run(context.Background(), false)
	suite.Require().NoError(err)
	return outcome
}

func (suite *AgentTestSuite) TestRunSkipsExecutionCompletedWithReboot() {
	service := &fixedResultService{result: model.ExecutionResult{Status: model.ExecutionStatusDone, Reboot: true}}

	first := suite.bootWithService(service)
	assert.False(suite.T(), first.skipped)
	assert.Equal(suite.T(), service.result, first.result)

	for boot := 0; boot < 2; boot++ {
		next := suite.bootWithService(service)
		assert.True(suite.T(), next.skipped)
		assert.Equal(suite.T(), first.runID, next.runID)
	}
	assert.Equal(suite.T(), 1, service.calls)
}

func (suite *AgentTestSuite) TestRunRepeatsExecuteOnNextBoot() {
	service := &fixedResultService{
		result: model.ExecutionResult{Status: model.ExecutionStatusExecuteOnNextBoot, Reboot: true},
	}

	first := suite.bootWithService(service)
	second := suite.bootWithService(service)

	assert.False(suite.T(), first.skipped)
	assert.False(suite.T(), second.skipped)
	assert.NotEqual(suite.T(), first.runID, second.runID)
	assert.Equal(suite.T(), 2, service.calls)
}

func (suite *AgentTestSuite) TestRunMultipart() {
	marker := filepath.Join(suite.home, "marker")
	suite.writeDriveFile("user_data", "Content-Type: multipart/mixed; boundary=\"b\"\n"+
		"MIME-Version: 1.0\n"+
		"\n"+
		"--b\n"+
		"Content-Type: text/part-handler\n"+
		"\n"+
		"content_types: [text/x-shellscript]\n"+
		"command: /bin/sh\n"+
		"args: [\"-c\", \"echo $0 >> "+marker+"\"]\n"+
		"--b\n"+
		"Content-Type: text/x-shellscript\n"+
		"Content-Disposition: attachment; filename=\"setup.sh\"\n"+
		"\n"+
		"#!/bin/sh\n"+
		"echo script >> "+marker+"\n"+
		"--b--\n")

	outcome := suite.runAgent(false)

	assert.Equal(suite.T(), model.DoneResult(), outcome.result)
	content, err := os.ReadFile(marker)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "__begin__\nscript\n__end__\n", string(content))

	metricsContent, err := os.ReadFile(filepath.Join(suite.home, "metrics", "userdata.prom"))
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), string(metricsContent),
		`userdata_parts_processed_total{content_type="text/x-shellscript",outcome="handled"} 1`)
}

func (suite *AgentTestSuite) TestStatus() {
	a, err := newAgent(suite.runtime)
	suite.Require().NoError(err)
	defer a.close()

	instanceID, record, err := a.status(context.Background())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "instance-1", instanceID)
	assert.Nil(suite.T(), record)

	outcome, err := a.run(context.Background(), false)
	suite.Require().NoError(err)

	_, record, err = a.status(context.Background())
	assert.NoError(suite.T(), err)
	if assert.NotNil(suite.T(), record) {
		assert.Equal(suite.T(), outcome.runID, record.RunID)
		assert.Equal(suite.T(), model.ExecutionStatusDone, record.Status)
	}
}

func (suite *AgentTestSuite) TestStatusWithoutStateStore() {
	suite.runtime.Config.State.Enabled = false
	a, err := newAgent(suite.runtime)
	suite.Require().NoError(err)
	defer a.close()

	_, _, err = a.status(context.Background())
	assert.Error(suite.T(), err)

	outcome, err := a.run(context.Background(), false)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), outcome.runID)
}

func (suite *AgentTestSuite) TestNewAgentInvalidMetadataType() {
	suite.runtime.Config.Metadata.Type = "ec2"

	_, err := newAgent(suite.runtime)

	assert.Error(suite.T(), err)
}

func (suite *AgentTestSuite) TestLoadConfig() {
	cfg, err := loadConfig(suite.home, "")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), config.DefaultMetadataType, cfg.Metadata.Type)

	_, err = loadConfig(suite.home, filepath.Join(suite.home, "missing.yaml"))
	assert.Error(suite.T(), err)

	cfg, err = loadConfig(suite.home, "../../tests/resources/agent.yaml")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "configdrive", cfg.Metadata.Type)
}
