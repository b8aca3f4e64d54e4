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

//go:build !integration

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/convert"
	"rivaas.dev/convert/rules"
)

// newService returns a private service with the default and provider rules.
func newService(t *testing.T) *convert.Service {
	t.Helper()

	svc := convert.MustNew(convert.WithDefaultRules())
	require.NoError(t, rules.Register(svc))

	return svc
}

func TestRegister(t *testing.T) {
	t.Parallel()

	reg := convert.NewRegistry()
	require.NoError(t, rules.Register(reg))
	assert.Equal(t, len(rules.All()), reg.Len())

	names := make(map[string]bool)
	for _, r := range reg.Rules() {
		assert.NotEmpty(t, r.Name)
		assert.False(t, names[r.Name], "duplicate rule name %s", r.Name)
		names[r.Name] = true
	}
	assert.True(t, names["codec-decode"])
	assert.True(t, names["map-to-struct"])
	assert.True(t, names["string-to-uuid"])
	assert.True(t, names["map-to-structpb"])
}
