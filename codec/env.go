// Copyright 2026 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// TypeEnv names the environment variable format: one KEY=value pair per
// line, with underscores in keys denoting nesting.
const TypeEnv Type = "env"

func init() {
	Register(TypeEnv, EnvCodec{})
}

// EnvCodec decodes KEY_SUB=value lines into nested maps and encodes nested
// maps back into sorted lines.
//
//	DATABASE_HOST=localhost
//	DATABASE_PORT=5432
//
// decodes to map[string]any{"database": map[string]any{"host": "localhost", "port": "5432"}}.
// Values are always strings; blank lines, lines starting with '#' and lines
// without '=' are skipped.
type EnvCodec struct{}

// Encode flattens a map[string]any into KEY=value lines.
func (EnvCodec) Encode(v any) ([]byte, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("env codec: expected map[string]any, got %T", v)
	}

	var buf bytes.Buffer
	writeEnv(&buf, "", m)

	return buf.Bytes(), nil
}

func writeEnv(buf *bytes.Buffer, prefix string, m map[string]any) {
	for _, key := range slices.Sorted(maps.Keys(m)) {
		name := strings.ToUpper(key)
		if prefix != "" {
			name = prefix + "_" + name
		}
		if nested, ok := m[key].(map[string]any); ok {
			writeEnv(buf, name, nested)
			continue
		}
		fmt.Fprintf(buf, "%s=%v\n", name, m[key])
	}
}

// Decode parses KEY=value lines into v, which must be *map[string]any or *any.
func (EnvCodec) Decode(data []byte, v any) error {
	conf := make(map[string]any)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		parts := make([]string, 0, 4)
		for part := range strings.SplitSeq(strings.ToLower(strings.TrimSpace(key)), "_") {
			if part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) == 0 {
			continue
		}

		current := conf
		for _, part := range parts[:len(parts)-1] {
			next, ok := current[part].(map[string]any)
			if !ok {
				// A scalar at this path is replaced by the nested map.
				next = make(map[string]any)
				current[part] = next
			}
			current = next
		}
		current[parts[len(parts)-1]] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("env codec: %w", err)
	}

	switch ptr := v.(type) {
	case *map[string]any:
		*ptr = conf
	case *any:
		*ptr = conf
	default:
		return fmt.Errorf("env codec: expected *map[string]any, got %T", v)
	}

	return nil
}
