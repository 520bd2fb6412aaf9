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

// Package metadatamock provides a mock implementation of the metadata source.
package metadatamock

import (
	"context"
)

// MockSource is a mock implementation of the SourceInterface.
type MockSource struct {
	// MockGetUserData defines the behavior for the GetUserData method.
	MockGetUserData func(ctx context.Context, namespace string) ([]byte, error)

	// MockGetInstanceID defines the behavior for the GetInstanceID method.
	MockGetInstanceID func(ctx context.Context, namespace string) (string, error)

	// GetUserDataCalls tracks the namespaces passed to GetUserData.
	GetUserDataCalls []string

	// GetInstanceIDCalls tracks the namespaces passed to GetInstanceID.
	GetInstanceIDCalls []string
}

// GetUserData mocks the GetUserData method of the SourceInterface.
func (m *MockSource) GetUserData(ctx context.Context, namespace string) ([]byte, error) {
	m.GetUserDataCalls = append(m.GetUserDataCalls, namespace)

	if m.MockGetUserData != nil {
		return m.MockGetUserData(ctx, namespace)
	}
	return nil, nil
}

// GetInstanceID mocks the GetInstanceID method of the SourceInterface.
func (m *MockSource) GetInstanceID(ctx context.Context, namespace string) (string, error) {
	m.GetInstanceIDCalls = append(m.GetInstanceIDCalls, namespace)

	if m.MockGetInstanceID != nil {
		return m.MockGetInstanceID(ctx, namespace)
	}
	return "", nil
}
