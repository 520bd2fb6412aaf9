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

// Package userdata processes the user data of the instance and decides whether the machine
// must reboot and whether processing must resume on the next boot.
package userdata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asgardeo/cloudinit/internal/metadata"
	"github.com/asgardeo/cloudinit/internal/system/log"
	"github.com/asgardeo/cloudinit/internal/system/metrics"
	"github.com/asgardeo/cloudinit/internal/userdata/constants"
	"github.com/asgardeo/cloudinit/internal/userdata/mime"
	"github.com/asgardeo/cloudinit/internal/userdata/model"
	"github.com/asgardeo/cloudinit/internal/userdata/plugins"
	"github.com/asgardeo/cloudinit/internal/userdata/script"
)

const loggerComponentName = "UserDataService"

// UserDataServiceInterface defines the interface for executing the user data of an instance.
type UserDataServiceInterface interface {
	Execute(ctx context.Context, source metadata.SourceInterface) (model.ExecutionResult, error)
}

// userDataService is the default implementation of the UserDataServiceInterface.
type userDataService struct {
	namespace string
	loader    plugins.LoaderInterface
	executor  script.ExecutorInterface
	metrics   *metrics.Collector
}

// NewUserDataService creates a user data service. The collector may be nil.
func NewUserDataService(namespace string, loader plugins.LoaderInterface, executor script.ExecutorInterface,
	collector *metrics.Collector) UserDataServiceInterface {
	return &userDataService{
		namespace: namespace,
		loader:    loader,
		executor:  executor,
		metrics:   collector,
	}
}

// Execute fetches the user data from the metadata source and processes it. Missing or empty
// user data yields the done result. Errors from the metadata source, the plugin loader, the
// multipart parser or the script executor are returned.
func (s *userDataService) Execute(ctx context.Context, source metadata.SourceInterface) (
	model.ExecutionResult, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	start := time.Now()

	userData, err := source.GetUserData(ctx, s.namespace)
	if err != nil {
		if errors.Is(err, metadata.ErrNotExistingMetadata) {
			logger.Debug("User data not found")
			return model.DoneResult(), nil
		}
		return model.DoneResult(), fmt.Errorf("failed to get user data: %w", err)
	}
	if len(userData) == 0 {
		logger.Debug("User data is empty")
		return model.DoneResult(), nil
	}

	var result model.ExecutionResult
	if bytes.HasPrefix(userData, []byte(constants.MultipartHeaderPrefix)) {
		result, err = s.processMultipart(ctx, userData, logger)
	} else {
		result, err = s.processScript(ctx, userData)
	}
	if err != nil {
		return model.DoneResult(), err
	}

	logger.Info("User data execution completed", log.String("status", result.Status.String()),
		log.Bool("reboot", result.Reboot))
	s.metrics.ObserveExecution(result.Status.String(), result.Reboot, time.Since(start))
	return result, nil
}

// processMultipart walks the parts of a multipart payload in order and stops at the first
// part asking for a reboot.
func (s *userDataService) processMultipart(ctx context.Context, userData []byte, logger *log.Logger) (
	model.ExecutionResult, error) {
	registry, err := s.loader.LoadPlugins(ctx)
	if err != nil {
		return model.DoneResult(), err
	}

	parts, err := mime.Walk(userData)
	if err != nil {
		return model.DoneResult(), err
	}
	logger.Debug("Processing multipart user data", log.Int("parts", len(parts)))

	dispatcher := newPartDispatcher(registry, s.metrics, logger)
	result := model.DoneResult()
	for i := range parts {
		result = dispatcher.dispatch(ctx, &parts[i])
		if result.Reboot {
			break
		}
	}
	return result, nil
}

// processScript runs a non multipart payload as a single script.
func (s *userDataService) processScript(ctx context.Context, userData []byte) (model.ExecutionResult, error) {
	code, err := s.executor.ExecuteScript(ctx, userData)
	if err != nil {
		return model.DoneResult(), err
	}
	return GetExecutionResult(code), nil
}
