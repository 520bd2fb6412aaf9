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

package pluginmock

import (
	"context"

	"github.com/asgardeo/cloudinit/internal/userdata/model"
)

// MockHandler is a mock implementation of the HandlerInterface.
type MockHandler struct {
	// MockProcess defines the behavior for the Process method.
	MockProcess func(ctx context.Context, part *model.Part) (model.HandlerResult, error)

	// ProcessCalls tracks the parts passed to Process.
	ProcessCalls []*model.Part
}

// Process mocks the Process method of the HandlerInterface.
func (m *MockHandler) Process(ctx context.Context, part *model.Part) (model.HandlerResult, error) {
	m.ProcessCalls = append(m.ProcessCalls, part)

	if m.MockProcess != nil {
		return m.MockProcess(ctx, part)
	}
	return model.NewReturnCodeResult(0), nil
}
