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

// Package metadata provides the sources user data and instance metadata are read from.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/asgardeo/cloudinit/internal/system/config"
)

const (
	sourceTypeHTTP        = "http"
	sourceTypeConfigDrive = "configdrive"

	userDataFile = "user_data"
	metaDataFile = "meta_data.json"
	latestDir    = "latest"
)

// ErrNotExistingMetadata is returned when the requested metadata does not exist.
var ErrNotExistingMetadata = errors.New("metadata does not exist")

// SourceInterface defines the interface of a provisioning metadata source.
type SourceInterface interface {
	// GetUserData returns the raw user data of the namespace, or ErrNotExistingMetadata.
	GetUserData(ctx context.Context, namespace string) ([]byte, error)
	// GetInstanceID returns the identifier of the instance the metadata belongs to.
	GetInstanceID(ctx context.Context, namespace string) (string, error)
}

// instanceMetadata is the subset of meta_data.json used by the agent.
type instanceMetadata struct {
	UUID string `json:"uuid"`
}

// NewSource creates the metadata source selected in the configuration.
func NewSource(cfg config.MetadataConfig) (SourceInterface, error) {
	switch cfg.Type {
	case sourceTypeHTTP:
		return NewHTTPSource(cfg.HTTP.BaseURL, time.Duration(cfg.HTTP.Timeout)*time.Second), nil
	case sourceTypeConfigDrive:
		if cfg.ConfigDrive.Path == "" {
			return nil, errors.New("config drive path is not configured")
		}
		return NewConfigDriveSource(cfg.ConfigDrive.Path), nil
	default:
		return nil, fmt.Errorf("unsupported metadata source type: %s", cfg.Type)
	}
}

// metadataPath returns the relative path of a metadata file of the namespace.
func metadataPath(namespace, file string) string {
	return path.Join(namespace, latestDir, file)
}

// parseInstanceID extracts the instance identifier from meta_data.json content.
func parseInstanceID(content []byte) (string, error) {
	var meta instanceMetadata
	if err := json.Unmarshal(content, &meta); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", metaDataFile, err)
	}
	if meta.UUID == "" {
		return "", fmt.Errorf("%w: instance uuid", ErrNotExistingMetadata)
	}
	return meta.UUID, nil
}
