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

package rules

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"

	"rivaas.dev/convert"
)

// Registrar accepts rules. Both *convert.Service and *convert.Registry
// implement it.
type Registrar interface {
	Register(rules ...convert.Rule) error
}

// PriorityProvider is the priority of provider rules that overlap with the
// default rules: below specific rules, above structural fallbacks.
const PriorityProvider = -50

var (
	bytesType           = reflect.TypeFor[[]byte]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	stringerType        = reflect.TypeFor[fmt.Stringer]()
)

// All returns every rule this package provides.
func All() []convert.Rule {
	return slices.Concat(TextRules(), CodecRules(), StructRules(), ProtoRules())
}

// Register registers [All] with r in a single call.
//
// Example:
//
//	svc := convert.MustNew(convert.WithDefaultRules())
//	if err := rules.Register(svc); err != nil {
//	    log.Fatal(err)
//	}
func Register(r Registrar) error {
	if err := r.Register(All()...); err != nil {
		return fmt.Errorf("rules: %w", err)
	}

	return nil
}

// unmarshalsText reports whether values of rt can be parsed with
// encoding.TextUnmarshaler.
func unmarshalsText(rt reflect.Type) bool {
	return rt.Implements(textUnmarshalerType) || reflect.PointerTo(rt).Implements(textUnmarshalerType)
}
