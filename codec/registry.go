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
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrNotFound is returned when no codec is registered under a name.
var ErrNotFound = errors.New("codec not found")

// Registry holds encoders and decoders by name.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	encoders map[Type]Encoder
	decoders map[Type]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		encoders: make(map[Type]Encoder),
		decoders: make(map[Type]Decoder),
	}
}

var registry = NewRegistry()

// Default returns the package-level registry the built-in codecs register
// themselves into.
func Default() *Registry {
	return registry
}

// RegisterEncoder registers an encoder, replacing any previous one for name.
func (r *Registry) RegisterEncoder(name Type, encoder Encoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.encoders[name] = encoder
}

// RegisterDecoder registers a decoder, replacing any previous one for name.
func (r *Registry) RegisterDecoder(name Type, decoder Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[name] = decoder
}

// Register registers c as both encoder and decoder for name.
func (r *Registry) Register(name Type, c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.encoders[name] = c
	r.decoders[name] = c
}

// Encoder retrieves the encoder registered for name.
func (r *Registry) Encoder(name Type) (Encoder, error) {
	r.mu.RLock()
	encoder, exists := r.encoders[name]
	r.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: encoder for type %q", ErrNotFound, name)
	}

	return encoder, nil
}

// Decoder retrieves the decoder registered for name.
func (r *Registry) Decoder(name Type) (Decoder, error) {
	r.mu.RLock()
	decoder, exists := r.decoders[name]
	r.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: decoder for type %q", ErrNotFound, name)
	}

	return decoder, nil
}

// Types lists the names that have a decoder, an encoder or both, sorted.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Type]struct{}, len(r.decoders))
	for name := range r.decoders {
		seen[name] = struct{}{}
	}
	for name := range r.encoders {
		seen[name] = struct{}{}
	}

	return slices.Sorted(maps.Keys(seen))
}

// RegisterEncoder registers an encoder in the default registry.
func RegisterEncoder(name Type, encoder Encoder) {
	registry.RegisterEncoder(name, encoder)
}

// RegisterDecoder registers a decoder in the default registry.
func RegisterDecoder(name Type, decoder Decoder) {
	registry.RegisterDecoder(name, decoder)
}

// Register registers c as encoder and decoder in the default registry.
func Register(name Type, c Codec) {
	registry.Register(name, c)
}

// GetEncoder retrieves an encoder from the default registry.
func GetEncoder(name Type) (Encoder, error) {
	return registry.Encoder(name)
}

// GetDecoder retrieves a decoder from the default registry.
func GetDecoder(name Type) (Decoder, error) {
	return registry.Decoder(name)
}

// Types lists the names known to the default registry.
func Types() []Type {
	return registry.Types()
}
