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

// Package pluginmock provides mock implementations of the user data plugin interfaces.
package pluginmock

import (
	"context"

	"github.com/asgardeo/cloudinit/internal/userdata/plugins"
)

// MockLoader is a mock implementation of the LoaderInterface.
type MockLoader struct {
	// MockLoadPlugins defines the behavior for the LoadPlugins method.
	MockLoadPlugins func(ctx context.Context) (*plugins.Registry, error)

	// LoadPluginsCalls tracks the calls to LoadPlugins.
	LoadPluginsCalls int
}

// LoadPlugins mocks the LoadPlugins method of the LoaderInterface.
func (m *MockLoader) LoadPlugins(ctx context.Context) (*plugins.Registry, error) {
	m.LoadPluginsCalls++

	if m.MockLoadPlugins != nil {
		return m.MockLoadPlugins(ctx)
	}
	return plugins.NewRegistry(), nil
}
