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

// Package shellscript provides the user data handler for shell script parts.
package shellscript

import (
	"context"
	"fmt"

	"github.com/asgardeo/cloudinit/internal/system/log"
	"github.com/asgardeo/cloudinit/internal/userdata/model"
	"github.com/asgardeo/cloudinit/internal/userdata/plugins"
	"github.com/asgardeo/cloudinit/internal/userdata/script"
)

const loggerComponentName = "ShellScriptHandler"

// shellScriptHandler runs shell script parts through the script executor.
type shellScriptHandler struct {
	executor script.ExecutorInterface
}

// NewFactory returns a factory creating shell script handlers backed by the given executor.
func NewFactory(executor script.ExecutorInterface) plugins.HandlerFactory {
	return func() (plugins.HandlerInterface, error) {
		if executor == nil {
			return nil, fmt.Errorf("script executor is not configured")
		}
		return &shellScriptHandler{executor: executor}, nil
	}
}

// Process executes the part payload and returns the script exit code.
func (h *shellScriptHandler) Process(ctx context.Context, part *model.Part) (model.HandlerResult, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyFilename, part.Filename))

	logger.Debug("Executing shell script part")
	code, err := h.executor.ExecuteScript(ctx, part.Payload)
	if err != nil {
		return model.HandlerResult{}, fmt.Errorf("failed to execute shell script part %q: %w", part.Filename, err)
	}
	return model.NewReturnCodeResult(code), nil
}
