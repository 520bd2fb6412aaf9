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

package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/asgardeo/cloudinit/internal/system/log"
)

// HTTPClientInterface defines the HTTP client operations used by the metadata service source.
type HTTPClientInterface interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPSource reads metadata from a metadata service laid out as <base>/<namespace>/latest/<file>.
type HTTPSource struct {
	baseURL string
	client  HTTPClientInterface
}

// NewHTTPSource creates a metadata service source with the given request timeout.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return NewHTTPSourceWithClient(baseURL, &http.Client{Timeout: timeout})
}

// NewHTTPSourceWithClient creates a metadata service source using the given client.
func NewHTTPSourceWithClient(baseURL string, client HTTPClientInterface) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// GetUserData returns the user data of the namespace.
func (s *HTTPSource) GetUserData(ctx context.Context, namespace string) ([]byte, error) {
	return s.get(ctx, metadataPath(namespace, userDataFile))
}

// GetInstanceID returns the instance uuid from meta_data.json.
func (s *HTTPSource) GetInstanceID(ctx context.Context, namespace string) (string, error) {
	content, err := s.get(ctx, metadataPath(namespace, metaDataFile))
	if err != nil {
		return "", err
	}
	return parseInstanceID(content)
}

// get fetches a metadata file. A 404 response maps to ErrNotExistingMetadata.
func (s *HTTPSource) get(ctx context.Context, relativePath string) ([]byte, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HTTPMetadataSource"))

	url := s.baseURL + "/" + relativePath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata request: %w", err)
	}

	logger.Debug("Requesting metadata", log.String("url", url))
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request metadata %s: %w", relativePath, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotExistingMetadata, relativePath)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status %d while requesting metadata %s", resp.StatusCode, relativePath)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata %s: %w", relativePath, err)
	}
	return body, nil
}
