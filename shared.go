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

package convert

import "sync"

var (
	sharedOnce sync.Once
	shared     *Service
)

// Shared returns the process-wide default service.
//
// It is created on first use with [DefaultRules] and lives for the rest of
// the process. It stays mutable: rules registered on it through [Register]
// are visible to every later conversion. Code that needs isolation, such as
// tests, should create its own service with [New] instead.
func Shared() *Service {
	sharedOnce.Do(func() {
		shared = MustNew(WithDefaultRules())
	})

	return shared
}

// Register adds rules to the shared service.
//
// Example:
//
//	func init() {
//	    if err := convert.Register(convert.EnumRule(StatusActive, StatusPending)); err != nil {
//	        panic(err)
//	    }
//	}
func Register(rules ...Rule) error {
	return Shared().Register(rules...)
}
