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

package plugins

import (
	"context"
	"fmt"
	"sort"

	"github.com/asgardeo/cloudinit/internal/system/log"
)

const loggerComponentName = "PluginLoader"

// HandlerFactory constructs a new handler instance.
type HandlerFactory func() (HandlerInterface, error)

// LoaderInterface defines the interface for loading the user data handlers of an execution.
type LoaderInterface interface {
	LoadPlugins(ctx context.Context) (*Registry, error)
}

// Loader builds registries from a set of handler factories.
type Loader struct {
	factories map[string]HandlerFactory
	enabled   []string
}

// NewLoader creates a loader. When enabled is empty every registered factory is loaded,
// otherwise only the listed content types are.
func NewLoader(enabled []string) *Loader {
	return &Loader{
		factories: make(map[string]HandlerFactory),
		enabled:   enabled,
	}
}

// RegisterFactory registers the factory used to build the handler for a content type.
func (l *Loader) RegisterFactory(contentType string, factory HandlerFactory) {
	l.factories[contentType] = factory
}

// LoadPlugins constructs a fresh registry with a new handler instance per content type.
func (l *Loader) LoadPlugins(ctx context.Context) (*Registry, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	registry := NewRegistry()
	for _, contentType := range l.contentTypes() {
		factory, ok := l.factories[contentType]
		if !ok {
			logger.Warn("No user data plugin available for enabled content type",
				log.String(log.LoggerKeyContentType, contentType))
			continue
		}

		handler, err := factory()
		if err != nil {
			return nil, fmt.Errorf("failed to load user data plugin for %s: %w", contentType, err)
		}
		registry.Register(contentType, handler)
	}

	logger.Debug("Loaded user data plugins", log.Any("contentTypes", registry.ContentTypes()))
	return registry, nil
}

// contentTypes returns the content types to load.
func (l *Loader) contentTypes() []string {
	if len(l.enabled) > 0 {
		return l.enabled
	}
	contentTypes := make([]string, 0, len(l.factories))
	for contentType := range l.factories {
		contentTypes = append(contentTypes, contentType)
	}
	sort.Strings(contentTypes)
	return contentTypes
}
