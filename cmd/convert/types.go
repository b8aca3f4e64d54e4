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

package main

import (
	"fmt"
	"maps"
	"net"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"rivaas.dev/convert"
)

// typeNames maps command line type names to descriptors.
var typeNames = map[string]convert.Type{
	"string":    convert.TypeOf[string](),
	"bool":      convert.TypeOf[bool](),
	"int":       convert.TypeOf[int](),
	"int8":      convert.TypeOf[int8](),
	"int16":     convert.TypeOf[int16](),
	"int32":     convert.TypeOf[int32](),
	"int64":     convert.TypeOf[int64](),
	"uint":      convert.TypeOf[uint](),
	"uint8":     convert.TypeOf[uint8](),
	"uint16":    convert.TypeOf[uint16](),
	"uint32":    convert.TypeOf[uint32](),
	"uint64":    convert.TypeOf[uint64](),
	"float32":   convert.TypeOf[float32](),
	"float64":   convert.TypeOf[float64](),
	"bytes":     convert.TypeOf[[]byte](),
	"duration":  convert.TypeOf[time.Duration](),
	"time":      convert.TypeOf[time.Time](),
	"uuid":      convert.TypeOf[uuid.UUID](),
	"ulid":      convert.TypeOf[ulid.ULID](),
	"ip":        convert.TypeOf[net.IP](),
	"cidr":      convert.TypeOf[*net.IPNet](),
	"url":       convert.TypeOf[url.URL](),
	"regexp":    convert.TypeOf[*regexp.Regexp](),
	"map":       convert.TypeOf[map[string]any](),
	"list":      convert.TypeOf[[]any](),
	"[]string":  convert.TypeOf[[]string](),
	"[]int":     convert.TypeOf[[]int](),
	"[]int64":   convert.TypeOf[[]int64](),
	"[]float64": convert.TypeOf[[]float64](),
	"[]bool":    convert.TypeOf[[]bool](),
}

func lookupType(name string) (convert.Type, error) {
	t, ok := typeNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return convert.Type{}, fmt.Errorf("unknown type %q (known: %s)", name,
			strings.Join(slices.Sorted(maps.Keys(typeNames)), ", "))
	}

	return t, nil
}
