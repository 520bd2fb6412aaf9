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

// Package scriptmock provides a mock implementation of the script executor.
package scriptmock

import (
	"context"
)

// MockExecutor is a mock implementation of the ExecutorInterface.
type MockExecutor struct {
	// MockExecuteScript defines the behavior for the ExecuteScript method.
	MockExecuteScript func(ctx context.Context, script []byte) (int, error)

	// ExecuteScriptCalls tracks the scripts passed to ExecuteScript.
	ExecuteScriptCalls [][]byte
}

// ExecuteScript mocks the ExecuteScript method of the ExecutorInterface.
func (m *MockExecutor) ExecuteScript(ctx context.Context, script []byte) (int, error) {
	m.ExecuteScriptCalls = append(m.ExecuteScriptCalls, script)

	if m.MockExecuteScript != nil {
		return m.MockExecuteScript(ctx, script)
	}
	return 0, nil
}
