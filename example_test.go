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

package convert_test

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rivaas.dev/convert"
)

// ExampleAs demonstrates best-effort conversion on the shared service.
func ExampleAs() {
	port, ok := convert.As[int]("8080")
	fmt.Println(port, ok)

	_, ok = convert.As[int]("http")
	fmt.Println(ok)
	// Output:
	// 8080 true
	// false
}

// ExampleRequired demonstrates conversion that must produce a value.
func ExampleRequired() {
	ids, err := convert.Required[[]int64]("1, 2, 3")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(ids)
	// Output: [1 2 3]
}

// ExampleService_ConvertRequired demonstrates the error returned when
// no rule covers a pair.
func ExampleService_ConvertRequired() {
	svc := convert.MustNew()

	_, err := svc.ConvertRequired("true", convert.TypeOf[bool]())
	fmt.Println(errors.Is(err, convert.ErrNoConverter))
	// Output: true
}

// ExampleService_Register demonstrates overriding a rule.
func ExampleService_Register() {
	svc := convert.MustNew(convert.WithDefaultRules())

	err := svc.Register(convert.NewRule(func(s string, _ *convert.Context) (bool, error) {
		return strings.EqualFold(s, "enabled"), nil
	}, convert.Named("enabled-flag")))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	on, _ := convert.AsWith[bool](svc, "Enabled")
	fmt.Println(on)
	// Output: true
}

// ExampleContext_Errors demonstrates inspecting rejections.
func ExampleContext_Errors() {
	svc := convert.MustNew(convert.WithDefaultRules())
	cctx := convert.NewContext(convert.TypeOf[time.Duration]())

	_, ok := svc.ConvertContext("soon", cctx)
	fmt.Println(ok)
	for _, err := range cctx.Errors() {
		fmt.Println(err.Rule)
	}
	// Output:
	// false
	// scalar-to-duration
}

// ExampleWithDefault demonstrates a fallback value.
func ExampleWithDefault() {
	svc := convert.MustNew(convert.WithDefaultRules())

	timeout, _ := convert.AsWith[time.Duration](svc, "forever", convert.WithDefault(30*time.Second))
	fmt.Println(timeout)
	// Output: 30s
}

// ExampleTypeOf demonstrates type descriptors.
func ExampleTypeOf() {
	t := convert.TypeOf[map[string][]int]()

	fmt.Println(t.RawName(), t.NumParams(), t.Param(1))
	// Output: map 2 []int
}
