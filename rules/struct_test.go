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
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/convert"
	"rivaas.dev/convert/rules"
)

type limits struct {
	Max int `mapstructure:"max" default:"10"`
}

type settings struct {
	Name    string        `mapstructure:"name" default:"svc"`
	Port    int           `mapstructure:"port"`
	Timeout time.Duration `mapstructure:"timeout" default:"30s"`
	Started time.Time     `mapstructure:"started"`
	Tags    []string      `mapstructure:"tags"`
	ID      uuid.UUID     `mapstructure:"id"`
	Limits  limits        `mapstructure:"limits"`
}

func TestStructRules_MapToStruct(t *testing.T) {
	t.Parallel()

	svc := newService(t)

	got, err := convert.RequiredWith[settings](svc, map[string]any{
		"port":    "8080",
		"timeout": "5s",
		"started": "2024-01-15T10:00:00Z",
		"tags":    "a,b",
		"id":      "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
	})
	require.NoError(t, err)

	assert.Equal(t, "svc", got.Name)
	assert.Equal(t, 8080, got.Port)
	assert.Equal(t, 5*time.Second, got.Timeout)
	assert.True(t, got.Started.Equal(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, []string{"a", "b"}, got.Tags)
	assert.Equal(t, uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), got.ID)
	assert.Equal(t, 10, got.Limits.Max)
}

func TestStructRules_StringMap(t *testing.T) {
	t.Parallel()

	svc := newService(t)

	got, err := convert.RequiredWith[limits](svc, map[string]string{"max": "3"})
	require.NoError(t, err)
	assert.Equal(t, limits{Max: 3}, got)
}

func TestStructRules_FieldErrors(t *testing.T) {
	t.Parallel()

	svc := newService(t)

	_, err := convert.RequiredWith[settings](svc, map[string]any{"port": "eighty"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestStructRules_ContextDefaultIsMerged(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	def := settings{Name: "fallback", Port: 9000, Limits: limits{Max: 99}}

	got, err := convert.RequiredWith[settings](svc,
		map[string]any{"timeout": "1s"},
		convert.WithDefault(def),
	)
	require.NoError(t, err)
	assert.Equal(t, "fallback", got.Name, "context default wins over the tag")
	assert.Equal(t, 9000, got.Port)
	assert.Equal(t, time.Second, got.Timeout, "input wins over the context default")
	assert.Equal(t, 99, got.Limits.Max)
}

func TestStructRules_StrictHint(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	input := map[string]any{"max": 1, "bogus": true}

	_, err := convert.RequiredWith[limits](svc, input)
	require.NoError(t, err)

	_, err = convert.RequiredWith[limits](svc, input, convert.WithHint(rules.HintStrict, true))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestStructRules_ValidateHint(t *testing.T) {
	t.Parallel()

	type account struct {
		Name string `mapstructure:"name" validate:"required"`
		Age  int    `mapstructure:"age" validate:"gte=0,lte=150"`
	}

	svc := newService(t)
	input := map[string]any{"age": "200"}

	got, err := convert.RequiredWith[account](svc, input)
	require.NoError(t, err, "validate tags are only checked on request")
	assert.Equal(t, 200, got.Age)

	_, err = convert.RequiredWith[account](svc, input, convert.WithHint(rules.HintValidate, true))
	require.ErrorIs(t, err, rules.ErrValidation)
	assert.Contains(t, err.Error(), "Name")
	assert.Contains(t, err.Error(), "lte")

	got, err = convert.RequiredWith[account](svc,
		map[string]any{"name": "Ada", "age": 36},
		convert.WithHint(rules.HintValidate, true),
	)
	require.NoError(t, err)
	assert.Equal(t, account{Name: "Ada", Age: 36}, got)
}

func TestStructRules_TagHint(t *testing.T) {
	t.Parallel()

	type labelled struct {
		Display string `label:"display_name"`
	}

	svc := newService(t)

	got, err := convert.RequiredWith[labelled](svc,
		map[string]any{"display_name": "Ada"},
		convert.WithHint(rules.HintTag, "label"),
	)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Display)
}

func TestStructRules_StructToMap(t *testing.T) {
	t.Parallel()

	svc := newService(t)

	got, err := convert.RequiredWith[map[string]any](svc, limits{Max: 4})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"max": 4}, got)

	// struct -> map[string]any -> map[string]string
	flat, err := convert.RequiredWith[map[string]string](svc, limits{Max: 4})
	require.Error(t, err, "no single rule chains struct to map[string]string")
	assert.Nil(t, flat)
}
