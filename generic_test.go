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

package convert_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/convert"
)

// sharedOnlyCode is converted only by a rule registered on the shared service.
type sharedOnlyCode struct{ value string }

func TestShared_DefaultRules(t *testing.T) {
	t.Parallel()

	port, ok := convert.As[int]("8080")
	require.True(t, ok)
	assert.Equal(t, 8080, port)

	ids, err := convert.Required[[]int64]("1,2,3")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	assert.Same(t, convert.Shared(), convert.Shared())
}

func TestShared_Register(t *testing.T) {
	t.Parallel()

	require.NoError(t, convert.Register(convert.NewRule(func(s string, _ *convert.Context) (sharedOnlyCode, error) {
		return sharedOnlyCode{value: strings.ToUpper(s)}, nil
	})))

	got, err := convert.Required[sharedOnlyCode]("abc")
	require.NoError(t, err)
	assert.Equal(t, "ABC", got.value)
}

func TestAs_FailureYieldsZero(t *testing.T) {
	t.Parallel()

	got, ok := convert.As[int]("eleven")
	assert.False(t, ok)
	assert.Zero(t, got)

	n, err := convert.Required[int]("eleven")
	require.Error(t, err)
	assert.Zero(t, n)
}

func TestContext_NestedConversion(t *testing.T) {
	t.Parallel()

	type pair struct{ left, right int }

	svc := convert.MustNew(
		convert.WithDefaultRules(),
		convert.WithRules(convert.NewRule(func(s string, cctx *convert.Context) (pair, error) {
			left, right, _ := strings.Cut(s, ":")
			l, err := cctx.Convert(left, convert.TypeOf[int]())
			if err != nil {
				return pair{}, err
			}
			r, err := cctx.Convert(right, convert.TypeOf[int]())
			if err != nil {
				return pair{}, err
			}
			return pair{left: l.(int), right: r.(int)}, nil
		}, convert.Named("pair"))),
	)

	got, err := convert.RequiredWith[pair](svc, "3:4")
	require.NoError(t, err)
	assert.Equal(t, pair{left: 3, right: 4}, got)

	_, err = convert.RequiredWith[pair](svc, "3:x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid integer")
}

func TestContext_Accessors(t *testing.T) {
	t.Parallel()

	target := convert.TypeOf[map[string]int]()
	cctx := convert.NewContext(target,
		convert.WithFormat("yaml"),
		convert.WithLocale("de-DE"),
		convert.WithHint("separator", ";"),
	)

	assert.Equal(t, target, cctx.Target())
	assert.Equal(t, []convert.Type{convert.TypeOf[string](), convert.TypeOf[int]()}, cctx.TypeParams())
	assert.Equal(t, "yaml", cctx.Format())
	assert.Equal(t, "de-DE", cctx.Locale())

	sep, ok := cctx.Hint("separator")
	require.True(t, ok)
	assert.Equal(t, ";", sep)

	_, ok = cctx.Hint("missing")
	assert.False(t, ok)

	_, ok = cctx.Default()
	assert.False(t, ok)

	child := cctx.With(convert.TypeOf[int]())
	assert.Equal(t, "yaml", child.Format())
	assert.Equal(t, convert.TypeOf[int](), child.Target())
	assert.False(t, child.HasErrors())
}
