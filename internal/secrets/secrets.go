// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials and contact details from a directory of
// plain-text files. Each file is one secret: the filename is the key and
// the trimmed contents are the value.
//
// Recognized keys: contact-email.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// ContactEmailKey names the file holding the operator's email address.
// arXiv asks automated clients to identify a contact in the User-Agent.
const ContactEmailKey = "contact-email"

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged at warn and skipped.
func Load(dir string, log logrus.FieldLogger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if log != nil {
				log.WithError(err).WithField("secret", name).Warn("could not read secret")
			}
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// UserAgent appends the contact email, when present, to ua:
// "PaperTracker/1.0 (mailto:me@example.com)".
func UserAgent(ua string, secrets map[string]string) string {
	email, ok := secrets[ContactEmailKey]
	if !ok || strings.Contains(ua, "mailto:") {
		return ua
	}
	return fmt.Sprintf("%s (mailto:%s)", ua, email)
}
