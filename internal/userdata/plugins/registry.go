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

// Package plugins provides the registry of user data handlers keyed by content type.
package plugins

import (
	"context"
	"sort"

	"github.com/asgardeo/cloudinit/internal/userdata/model"
)

// HandlerInterface defines the interface of a user data handler for a single content type.
//
// Handlers of normal parts return a return code result. The handler registered for the
// part handler content type returns a registrations result instead.
type HandlerInterface interface {
	Process(ctx context.Context, part *model.Part) (model.HandlerResult, error)
}

// HandlerFunc adapts a function to HandlerInterface.
type HandlerFunc func(ctx context.Context, part *model.Part) (model.HandlerResult, error)

// Process calls f(ctx, part).
func (f HandlerFunc) Process(ctx context.Context, part *model.Part) (model.HandlerResult, error) {
	return f(ctx, part)
}

// Registry maps content types to user data handlers. A registry is built for a single
// execution and is read only once loaded.
type Registry struct {
	handlers map[string]HandlerInterface
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]HandlerInterface),
	}
}

// Register adds a handler for the content type, replacing any existing one.
func (r *Registry) Register(contentType string, handler HandlerInterface) {
	r.handlers[contentType] = handler
}

// GetHandler returns the handler registered for the content type.
func (r *Registry) GetHandler(contentType string) (HandlerInterface, bool) {
	handler, ok := r.handlers[contentType]
	return handler, ok
}

// ContentTypes returns the registered content types in sorted order.
func (r *Registry) ContentTypes() []string {
	contentTypes := make([]string, 0, len(r.handlers))
	for contentType := range r.handlers {
		contentTypes = append(contentTypes, contentType)
	}
	sort.Strings(contentTypes)
	return contentTypes
}
