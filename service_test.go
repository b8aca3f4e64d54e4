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
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/convert"
)

// parseDecimal accepts decimal digits only.
func parseDecimal(s string, _ *convert.Context) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errors.New("bad format")
		}
	}

	return strconv.Atoi(s)
}

func TestService_StringToIntegerScenario(t *testing.T) {
	t.Parallel()

	svc := convert.MustNew(convert.WithRules(convert.NewRule(parseDecimal, convert.Named("decimal"))))
	intType := convert.TypeOf[int]()

	t.Run("valid input converts", func(t *testing.T) {
		t.Parallel()

		got, ok := svc.Convert("42", intType, nil)
		require.True(t, ok)
		assert.Equal(t, 42, got)
	})

	t.Run("invalid input is empty with one recorded rejection", func(t *testing.T) {
		t.Parallel()

		cctx := convert.NewContext(intType)
		got, ok := svc.Convert("abc", intType, cctx)
		assert.False(t, ok)
		assert.Nil(t, got)

		errs := cctx.Errors()
		require.Len(t, errs, 1)
		assert.Equal(t, "decimal", errs[0].Rule)
		assert.Equal(t, reflect.TypeFor[string](), errs[0].Source)
		assert.Equal(t, intType, errs[0].Target)
		assert.Equal(t, "abc", errs[0].Value)
		assert.EqualError(t, errs[0].Err, "bad format")
	})

	t.Run("required surfaces the rule's message", func(t *testing.T) {
		t.Parallel()

		_, err := svc.ConvertRequired("abc", intType)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad format")
		assert.NotErrorIs(t, err, convert.ErrNoConverter)

		var reqErr *convert.RequiredError
		require.ErrorAs(t, err, &reqErr)
		require.NotNil(t, reqErr.Cause)
		assert.Equal(t, "decimal", reqErr.Cause.Rule)
		assert.Equal(t, "conversion_rejected", reqErr.Code())

		var convErr *convert.ConversionError
		require.ErrorAs(t, err, &convErr)
		assert.Equal(t, "conversion_error", convErr.Code())
	})

	t.Run("required returns the value on success", func(t *testing.T) {
		t.Parallel()

		got, err := svc.ConvertRequired("7", intType)
		require.NoError(t, err)
		assert.Equal(t, 7, got)
	})
}

func TestService_NoRules(t *testing.T) {
	t.Parallel()

	svc := convert.MustNew()
	boolType := convert.TypeOf[bool]()

	assert.False(t, svc.CanConvert(convert.TypeOf[string](), boolType))
	assert.False(t, svc.CanConvertType(reflect.TypeFor[string](), reflect.TypeFor[bool]()))
	assert.False(t, convert.CanConvertTo[string, bool](svc))

	got, ok := svc.Convert("true", boolType, nil)
	assert.False(t, ok)
	assert.Nil(t, got)

	_, err := svc.ConvertRequired("true", boolType)
	require.Error(t, err)
	require.ErrorIs(t, err, convert.ErrNoConverter)
	assert.Contains(t, err.Error(), "bool")
	assert.Contains(t, err.Error(), "string")

	var reqErr *convert.RequiredError
	require.ErrorAs(t, err, &reqErr)
	assert.Nil(t, reqErr.Cause)
	assert.Equal(t, "no_converter", reqErr.Code())
}

func TestService_NilInput(t *testing.T) {
	t.Parallel()

	calls := 0
	svc := convert.MustNew(convert.WithRules(convert.Rule{
		Name:   "counting",
		Source: convert.AnySource(),
		Target: convert.AnyTarget(),
		Convert: func(any, *convert.Context) (any, error) {
			calls++
			return 1, nil
		},
	}))

	cctx := convert.NewContext(convert.TypeOf[int]())
	got, ok := svc.Convert(nil, convert.TypeOf[int](), cctx)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.False(t, cctx.HasErrors())

	got, err := svc.ConvertRequired(nil, convert.TypeOf[int]())
	require.NoError(t, err)
	assert.Nil(t, got)

	n, err := convert.RequiredWith[int](svc, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Zero(t, calls)
}

func TestService_Override(t *testing.T) {
	t.Parallel()

	var trail []string
	older := convert.NewRule(func(s string, _ *convert.Context) (int, error) {
		trail = append(trail, "older")
		return 1, nil
	}, convert.Named("older"))

	t.Run("newer rule wins", func(t *testing.T) {
		trail = nil
		svc := convert.MustNew(convert.WithRules(older))
		require.NoError(t, svc.Register(convert.NewRule(func(string, *convert.Context) (int, error) {
			trail = append(trail, "newer")
			return 2, nil
		}, convert.Named("newer"))))

		got, ok := convert.AsWith[int](svc, "x")
		require.True(t, ok)
		assert.Equal(t, 2, got)
		assert.Equal(t, []string{"newer"}, trail)
	})

	t.Run("older rule is the fallback", func(t *testing.T) {
		trail = nil
		svc := convert.MustNew(convert.WithRules(older))
		require.NoError(t, svc.Register(convert.NewRule(func(string, *convert.Context) (int, error) {
			trail = append(trail, "newer")
			return 0, errors.New("newer refuses")
		}, convert.Named("newer"))))

		cctx := convert.NewContext(convert.TypeOf[int]())
		got, ok := svc.ConvertContext("x", cctx)
		require.True(t, ok)
		assert.Equal(t, 1, got)
		assert.Equal(t, []string{"newer", "older"}, trail)
		require.Len(t, cctx.Errors(), 1)
		assert.Equal(t, "newer", cctx.Errors()[0].Rule)
	})
}

func TestService_DuplicateRegistrationShortCircuits(t *testing.T) {
	t.Parallel()

	calls := 0
	rule := convert.NewRule(func(s string, _ *convert.Context) (int, error) {
		calls++
		return len(s), nil
	})

	svc := convert.MustNew(convert.WithRules(rule, rule))
	assert.Equal(t, 2, svc.Registry().Len())

	got, ok := convert.AsWith[int](svc, "abc")
	require.True(t, ok)
	assert.Equal(t, 3, got)
	assert.Equal(t, 1, calls)
}

func TestService_RuleFailuresAreContained(t *testing.T) {
	t.Parallel()

	fallback := convert.NewRule(func(string, *convert.Context) (int, error) {
		return 99, nil
	}, convert.Named("fallback"), convert.WithPriority(-1))

	tests := []struct {
		name    string
		rule    convert.Rule
		wantErr error
	}{
		{
			name: "panic is recovered",
			rule: convert.NewRule(func(string, *convert.Context) (int, error) {
				var m map[string]int
				m["boom"] = 1
				return 0, nil
			}, convert.Named("faulty")),
			wantErr: convert.ErrRulePanic,
		},
		{
			name: "wrong-typed result is rejected",
			rule: convert.Rule{
				Name:    "faulty",
				Source:  convert.ExactSource(reflect.TypeFor[string]()),
				Target:  convert.ExactTarget(convert.TypeOf[int]()),
				Convert: func(any, *convert.Context) (any, error) { return "not an int", nil },
			},
			wantErr: convert.ErrWrongType,
		},
		{
			name: "nil result is rejected",
			rule: convert.Rule{
				Name:    "faulty",
				Source:  convert.ExactSource(reflect.TypeFor[string]()),
				Target:  convert.ExactTarget(convert.TypeOf[int]()),
				Convert: func(any, *convert.Context) (any, error) { return nil, nil },
			},
			wantErr: convert.ErrNilResult,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
			svc := convert.MustNew(convert.WithLogger(logger), convert.WithRules(fallback, tt.rule))

			cctx := convert.NewContext(convert.TypeOf[int]())
			got, ok := svc.ConvertContext("x", cctx)
			require.True(t, ok)
			assert.Equal(t, 99, got)

			last, found := cctx.LastError()
			require.True(t, found)
			assert.Equal(t, "faulty", last.Rule)
			require.ErrorIs(t, last, tt.wantErr)
			assert.Contains(t, logs.String(), "rule=faulty")
		})
	}
}

func TestService_RequiredPrefersLastError(t *testing.T) {
	t.Parallel()

	first := convert.Rule{
		Name:    "first",
		Source:  convert.AnySource(),
		Target:  convert.AnyTarget(),
		Convert: func(any, *convert.Context) (any, error) { return nil, errors.New("first reason") },
	}
	second := convert.Rule{
		Name:     "second",
		Source:   convert.AnySource(),
		Target:   convert.AnyTarget(),
		Priority: -1,
		Convert:  func(any, *convert.Context) (any, error) { return nil, errors.New("second reason") },
	}
	svc := convert.MustNew(convert.WithRules(first, second))

	_, err := convert.RequiredWith[int](svc, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second reason")
	assert.NotContains(t, err.Error(), "first reason")
}

func TestService_ContextDefault(t *testing.T) {
	t.Parallel()

	svc := convert.MustNew(convert.WithDefaultRules())

	t.Run("default replaces empty result", func(t *testing.T) {
		t.Parallel()

		cctx := convert.NewContext(convert.TypeOf[int](), convert.WithDefault(8080))
		got, ok := svc.ConvertContext("not a port", cctx)
		require.True(t, ok)
		assert.Equal(t, 8080, got)
		assert.True(t, cctx.HasErrors(), "rejections stay visible")
	})

	t.Run("default for nil input", func(t *testing.T) {
		t.Parallel()

		got, ok := convert.AsWith[string](svc, nil, convert.WithDefault("fallback"))
		require.True(t, ok)
		assert.Equal(t, "fallback", got)
	})

	t.Run("default of the wrong type is ignored", func(t *testing.T) {
		t.Parallel()

		_, ok := convert.AsWith[int](svc, "nope", convert.WithDefault("not an int"))
		assert.False(t, ok)
	})
}

func TestService_ContextReuse(t *testing.T) {
	t.Parallel()

	svc := convert.MustNew(convert.WithDefaultRules())
	cctx := convert.NewContext(convert.TypeOf[int]())

	_, ok := svc.ConvertContext("x", cctx)
	require.False(t, ok)
	require.True(t, cctx.HasErrors())

	cctx.Reset()
	got, ok := svc.ConvertContext("5", cctx)
	require.True(t, ok)
	assert.Equal(t, 5, got)
	assert.False(t, cctx.HasErrors())
}

func TestService_ConvertUsesTargetArgument(t *testing.T) {
	t.Parallel()

	svc := convert.MustNew(convert.WithDefaultRules())
	cctx := convert.NewContext(convert.TypeOf[string](), convert.WithDefault(-1))

	got, ok := svc.Convert("5", convert.TypeOf[int](), cctx)
	require.True(t, ok)
	assert.Equal(t, 5, got)
	assert.Equal(t, convert.TypeOf[string](), cctx.Target(), "the caller's context keeps its target")
	assert.False(t, cctx.HasErrors())

	got, ok = svc.Convert("five", convert.TypeOf[int](), cctx)
	require.True(t, ok, "the context default still applies")
	assert.Equal(t, -1, got)

	last, found := cctx.LastError()
	require.True(t, found, "rejections are recorded in the caller's context")
	assert.Equal(t, convert.TypeOf[int](), last.Target)
	assert.Equal(t, "scalar-to-int", last.Rule)
	assert.NotErrorIs(t, last, convert.ErrRulePanic)
}

func TestService_ConvertType(t *testing.T) {
	t.Parallel()

	svc := convert.MustNew(convert.WithDefaultRules())
	got, ok := svc.ConvertType("2.5", reflect.TypeFor[float64]())
	require.True(t, ok)
	assert.InDelta(t, 2.5, got, 1e-9)
}

func TestService_NamedTargetNormalization(t *testing.T) {
	t.Parallel()

	svc := convert.MustNew(convert.WithRules(convert.Rule{
		Name:   "unnamed-ints",
		Source: convert.ExactSource(reflect.TypeFor[string]()),
		Target: convert.KindTarget(reflect.Slice),
		Convert: func(any, *convert.Context) (any, error) {
			return []int{1, 2}, nil
		},
	}))

	got, ok := convert.AsWith[IDs](svc, "ignored")
	require.True(t, ok)
	assert.Equal(t, IDs{1, 2}, got)
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := convert.New(convert.WithLogger(nil))
	require.Error(t, err)

	_, err = convert.New(convert.WithTimeLayouts(""))
	require.Error(t, err)

	_, err = convert.New(convert.WithRules(convert.Rule{Name: "broken"}))
	require.ErrorIs(t, err, convert.ErrInvalidRule)

	assert.Panics(t, func() {
		convert.MustNew(convert.WithLogger(nil))
	})
}

func TestService_SharedRegistry(t *testing.T) {
	t.Parallel()

	reg := convert.NewRegistry()
	a := convert.MustNew(convert.WithRegistry(reg))
	b := convert.MustNew(convert.WithRegistry(reg))

	require.NoError(t, a.Register(convert.NewRule(parseDecimal)))
	assert.Same(t, reg, b.Registry())
	assert.True(t, convert.CanConvertTo[string, int](b))
}
