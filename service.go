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

import (
	"fmt"
	"log/slog"
	"reflect"
)

// Service converts values between types using the rules of its [Registry].
//
// Use [New] or [MustNew] to create an isolated service, or [Shared] for the
// process-wide default. Service is safe for concurrent use by multiple
// goroutines; rules may be registered while conversions are running.
//
// Example:
//
//	svc := convert.MustNew(convert.WithDefaultRules())
//
//	port, ok := convert.AsWith[int](svc, "8080")
//
//	n, err := svc.ConvertRequired("abc", convert.TypeOf[int]())
type Service struct {
	registry *Registry
	logger   *slog.Logger
}

// New creates a [Service] with the given options.
// Returns an error if configuration is invalid.
func New(opts ...Option) (*Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	registry := cfg.registry
	if registry == nil {
		registry = NewRegistry()
	}
	if cfg.defaults {
		if err := registry.Register(DefaultRules(cfg.allTimeLayouts()...)...); err != nil {
			return nil, fmt.Errorf("convert: registering default rules: %w", err)
		}
	}
	if err := registry.Register(cfg.rules...); err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	return &Service{registry: registry, logger: cfg.logger}, nil
}

// MustNew creates a [Service] with the given options.
// Panics if configuration is invalid.
//
// Use in main() or init() where panic on startup is acceptable.
func MustNew(opts ...Option) *Service {
	s, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("convert.MustNew: %v", err))
	}

	return s
}

// Registry returns the registry backing the service.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Register adds rules to the service's registry.
func (s *Service) Register(rules ...Rule) error {
	if err := s.registry.Register(rules...); err != nil {
		return err
	}
	s.logger.Debug("conversion rules registered", "count", len(rules), "total", s.registry.Len())

	return nil
}

// Convert attempts to convert value to target. It returns the converted value
// and true, or nil and false when no rule produced a value.
//
// A nil value yields an empty result without consulting the registry.
// Otherwise the candidate rules are tried in lookup order and the first
// success wins. Every rejection is recorded in cctx, so callers can inspect
// why a conversion failed. A nil cctx is replaced by a fresh context.
//
// If cctx carries a default value assignable to target, that value is
// returned instead of an empty result. When cctx was created for a different
// target, the rules see target and cctx keeps its own.
func (s *Service) Convert(value any, target Type, cctx *Context) (any, bool) {
	if cctx == nil {
		cctx = NewContext(target)
	}
	if cctx.target.IsZero() {
		cctx.target = target
	}
	cctx.svc = s

	// Rules read the target from the context, so a context built for another
	// target is narrowed to this call. Rejections still land in cctx.
	if cctx.target != target {
		parent := cctx
		cctx = parent.With(target)
		cctx.def, cctx.hasDefault = parent.def, parent.hasDefault
		defer func() { parent.errs = append(parent.errs, cctx.errs...) }()
	}

	if value == nil || target.IsZero() {
		return cctx.defaultFor()
	}

	source := reflect.TypeOf(value)
	for rule := range s.registry.Lookup(source, target) {
		out, err := s.apply(rule, value, source, target, cctx)
		if err == nil {
			return out, true
		}
		cctx.Reject(err)
	}

	return cctx.defaultFor()
}

// ConvertType converts value to the bare reflect type target using a
// default context.
func (s *Service) ConvertType(value any, target reflect.Type) (any, bool) {
	t := TypeFor(target)
	return s.Convert(value, t, NewContext(t))
}

// ConvertContext converts value to the target of cctx.
func (s *Service) ConvertContext(value any, cctx *Context) (any, bool) {
	return s.Convert(value, cctx.Target(), cctx)
}

// CanConvert reports whether a rule exists for converting values of type
// source into target. It never runs a conversion.
func (s *Service) CanConvert(source, target Type) bool {
	return s.registry.CanConvert(source.Reflect(), target)
}

// CanConvertType is [Service.CanConvert] for bare reflect types.
func (s *Service) CanConvertType(source, target reflect.Type) bool {
	return s.registry.CanConvert(source, TypeFor(target))
}

// ConvertRequired converts value to target or returns an error explaining
// why it could not. A nil value returns (nil, nil).
//
// The error is a *RequiredError. When a rule rejected the value, the error
// wraps the last recorded *ConversionError; otherwise it wraps
// [ErrNoConverter].
func (s *Service) ConvertRequired(value any, target Type) (any, error) {
	return s.ConvertRequiredContext(value, NewContext(target))
}

// ConvertRequiredContext is [Service.ConvertRequired] with an explicit context.
func (s *Service) ConvertRequiredContext(value any, cctx *Context) (any, error) {
	if cctx == nil {
		return nil, fmt.Errorf("%w: nil conversion context", ErrInvalidType)
	}

	out, ok := s.Convert(value, cctx.Target(), cctx)
	if ok {
		return out, nil
	}
	if value == nil {
		return nil, nil
	}

	rerr := &RequiredError{Source: reflect.TypeOf(value), Target: cctx.Target()}
	if last, found := cctx.LastError(); found {
		rerr.Cause = last
	}

	return nil, rerr
}

// apply runs one rule. Errors, panics and wrong-typed results all become a
// rejection for that rule.
func (s *Service) apply(rule *Rule, value any, source reflect.Type, target Type, cctx *Context) (out any, rejected *ConversionError) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Warn("conversion rule panicked",
				"rule", rule.Name,
				"source", source.String(),
				"target", target.String(),
				"panic", p,
			)
			out = nil
			rejected = s.reject(rule, value, source, target, fmt.Errorf("%w: %v", ErrRulePanic, p))
		}
	}()

	result, err := rule.Convert(value, cctx)
	if err != nil {
		return nil, s.reject(rule, value, source, target, err)
	}
	if result == nil {
		return nil, s.reject(rule, value, source, target, ErrNilResult)
	}

	rt := target.Reflect()
	got := reflect.TypeOf(result)
	if !got.AssignableTo(rt) {
		return nil, s.reject(rule, value, source, target,
			fmt.Errorf("%w: %s is not assignable to %s", ErrWrongType, got, target))
	}

	// Normalize unnamed results to a named target ([]int -> IDs).
	if got != rt && rt.Kind() != reflect.Interface {
		v := reflect.New(rt).Elem()
		v.Set(reflect.ValueOf(result))
		result = v.Interface()
	}

	return result, nil
}

func (s *Service) reject(rule *Rule, value any, source reflect.Type, target Type, err error) *ConversionError {
	s.logger.Debug("conversion rule rejected value",
		"rule", rule.Name,
		"source", source.String(),
		"target", target.String(),
		"error", err,
	)

	return &ConversionError{
		Source: source,
		Target: target,
		Rule:   rule.Name,
		Value:  value,
		Err:    err,
	}
}
