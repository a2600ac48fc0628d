// Copyright (C) 2026 Execsuite Authors.
// See LICENSE for copying information.

package pgutil

import (
	"strings"

	"github.com/google/uuid"
)

// postgres identifiers are truncated beyond 63 bytes
const maxIdentifierLength = 63

// CreateRandomTestingDatabaseName creates a random database name suffix with
// at most n characters. The entropy comes from a fresh uuid, which makes
// collisions between concurrently running test suites against the same server
// negligible.
func CreateRandomTestingDatabaseName(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > 0 && n < len(s) {
		s = s[:n]
	}
	return s
}

// TestDatabaseName returns a working database name composed of the sanitized
// prefix and a random suffix, fitting the postgres identifier limit.
func TestDatabaseName(prefix string) string {
	suffix := CreateRandomTestingDatabaseName(16)

	prefix = sanitizeIdentifier(strings.ToLower(prefix))
	maxPrefixLen := maxIdentifierLength - len(suffix) - 1
	if len(prefix) > maxPrefixLen {
		prefix = prefix[:maxPrefixLen]
	}

	return prefix + "_" + suffix
}

// sanitizeIdentifier replaces anything that is not a lowercase letter, digit
// or underscore, so the name can show up unquoted in logs and psql sessions.
func sanitizeIdentifier(s string) string {
	out := []byte(s)
	for i, b := range out {
		switch {
		case 'a' <= b && b <= 'z':
		case '0' <= b && b <= '9' && i > 0:
		case b == '_':
		default:
			out[i] = '_'
		}
	}
	if len(out) == 0 {
		return "testdb"
	}
	return string(out)
}
