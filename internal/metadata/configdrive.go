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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ConfigDriveSource reads metadata from a mounted configuration drive laid out as
// <root>/<namespace>/latest/<file>.
type ConfigDriveSource struct {
	root string
}

// NewConfigDriveSource creates a configuration drive source rooted at the given directory.
func NewConfigDriveSource(root string) *ConfigDriveSource {
	return &ConfigDriveSource{root: root}
}

// GetUserData returns the user data of the namespace.
func (s *ConfigDriveSource) GetUserData(ctx context.Context, namespace string) ([]byte, error) {
	return s.read(metadataPath(namespace, userDataFile))
}

// GetInstanceID returns the instance uuid from meta_data.json.
func (s *ConfigDriveSource) GetInstanceID(ctx context.Context, namespace string) (string, error) {
	content, err := s.read(metadataPath(namespace, metaDataFile))
	if err != nil {
		return "", err
	}
	return parseInstanceID(content)
}

// read returns the content of a metadata file. A missing file maps to ErrNotExistingMetadata.
func (s *ConfigDriveSource) read(relativePath string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(relativePath)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotExistingMetadata, relativePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata %s: %w", relativePath, err)
	}
	return content, nil
}
