// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key
// name and the file contents (trimmed) are the value.
//
// Supported key files: username, password (HTTP basic auth for fetch).
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	UsernameKey = "username"
	PasswordKey = "password"
)

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty map.
// Unreadable files produce a warning on warn but do not abort.
func Load(dir string, warn io.Writer) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Credentials returns the basic-auth pair from s. ok is false unless both
// the username and the password are present. Passwords are trimmed like
// every other secret, so a password with surrounding spaces cannot be
// stored this way.
func Credentials(s map[string]string) (user, pass string, ok bool) {
	user, pass = s[UsernameKey], s[PasswordKey]
	if user == "" || pass == "" {
		return "", "", false
	}
	return user, pass, true
}
