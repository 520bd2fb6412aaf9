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

// Package mime decomposes multipart user data into its parts.
package mime

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	stdmime "mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"

	"github.com/asgardeo/cloudinit/internal/system/log"
	"github.com/asgardeo/cloudinit/internal/userdata/model"
)

const (
	loggerComponentName = "MimeWalker"
	defaultContentType  = "text/plain"
)

// ErrMalformedMultipart is returned when a multipart payload cannot be decomposed.
var ErrMalformedMultipart = errors.New("malformed multipart user data")

// Walk parses a multipart message and returns its leaf parts in document order.
// Nested multipart containers are descended into and are not returned themselves.
func Walk(userData []byte) ([]model.Part, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(userData))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMultipart, err)
	}

	parts := make([]model.Part, 0)
	if err := walkEntity(textproto.MIMEHeader(msg.Header), msg.Body, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// walkEntity appends the leaf parts of a single MIME entity to parts.
func walkEntity(header textproto.MIMEHeader, body io.Reader, parts *[]model.Part) error {
	contentType, params := parseContentType(header.Get("Content-Type"))

	if !strings.HasPrefix(contentType, "multipart/") {
		payload, err := readBody(header.Get("Content-Transfer-Encoding"), body)
		if err != nil {
			return fmt.Errorf("%w: failed to read part %s: %w", ErrMalformedMultipart, contentType, err)
		}
		*parts = append(*parts, model.Part{
			ContentType: contentType,
			Filename:    getFilename(header, params),
			Payload:     payload,
		})
		return nil
	}

	boundary := params["boundary"]
	if boundary == "" {
		return fmt.Errorf("%w: no boundary for %s", ErrMalformedMultipart, contentType)
	}

	reader := multipart.NewReader(body, boundary)
	for {
		part, err := reader.NextRawPart()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedMultipart, err)
		}
		if err := walkEntity(part.Header, part, parts); err != nil {
			return err
		}
	}
}

// parseContentType returns the lower cased media type and its parameters. Missing or
// invalid content types fall back to text/plain.
func parseContentType(value string) (string, map[string]string) {
	if value == "" {
		return defaultContentType, map[string]string{}
	}
	mediaType, params, err := stdmime.ParseMediaType(value)
	if err != nil || !strings.Contains(mediaType, "/") {
		return defaultContentType, map[string]string{}
	}
	return mediaType, params
}

// getFilename returns the filename parameter of the Content-Disposition header,
// falling back to the name parameter of the Content-Type header.
func getFilename(header textproto.MIMEHeader, contentTypeParams map[string]string) string {
	if disposition := header.Get("Content-Disposition"); disposition != "" {
		if _, params, err := stdmime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
			return params["filename"]
		}
	}
	return contentTypeParams["name"]
}

// readBody reads a part body and reverses its transfer encoding. A body that does not decode
// is returned as read, leaving it to the part handler.
func readBody(transferEncoding string, body io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	encoding := strings.ToLower(strings.TrimSpace(transferEncoding))
	var decoded []byte
	switch encoding {
	case "base64":
		decoded, err = decodeBase64(raw)
	case "quoted-printable":
		decoded, err = io.ReadAll(quotedprintable.NewReader(bytes.NewReader(raw)))
	default:
		return raw, nil
	}
	if err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Warn("Failed to decode part body, using the raw body",
				log.String("transferEncoding", encoding), log.Error(err))
		return raw, nil
	}
	return decoded, nil
}

func decodeBase64(raw []byte) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, string(raw))
	return base64.StdEncoding.DecodeString(cleaned)
}
