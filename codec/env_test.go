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

package codec

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// EnvCodecTestSuite is a test suite for the EnvCodec.
type EnvCodecTestSuite struct {
	suite.Suite
	codec EnvCodec
}

// SetupTest sets up the test suite.
func (s *EnvCodecTestSuite) SetupTest() {
	s.codec = EnvCodec{}
}

// TestEnvCodecTestSuite runs the test suite.
func TestEnvCodecTestSuite(t *testing.T) {
	suite.Run(t, new(EnvCodecTestSuite))
}

func (s *EnvCodecTestSuite) TestDecode_Simple() {
	var v map[string]any
	s.Require().NoError(s.codec.Decode([]byte("FOO=bar\nBAZ=qux"), &v))
	s.Equal("bar", v["foo"])
	s.Equal("qux", v["baz"])
}

func (s *EnvCodecTestSuite) TestDecode_Nested() {
	data := []byte("DATABASE_HOST=localhost\nDATABASE_PORT=5432\nDATABASE_USER_NAME=admin")
	var v map[string]any
	s.Require().NoError(s.codec.Decode(data, &v))

	db, ok := v["database"].(map[string]any)
	s.Require().True(ok)
	s.Equal("localhost", db["host"])
	s.Equal("5432", db["port"])
	user, ok := db["user"].(map[string]any)
	s.Require().True(ok)
	s.Equal("admin", user["name"])
}

func (s *EnvCodecTestSuite) TestDecode_SkipsNoise() {
	data := []byte("# comment\n\nFOO\n=value\n__=x\nBAR = baz \n")
	var v map[string]any
	s.Require().NoError(s.codec.Decode(data, &v))
	s.Equal(map[string]any{"bar": "baz"}, v)
}

func (s *EnvCodecTestSuite) TestDecode_ValueKeepsEquals() {
	var v map[string]any
	s.Require().NoError(s.codec.Decode([]byte("DSN=user=admin host=db"), &v))
	s.Equal("user=admin host=db", v["dsn"])
}

func (s *EnvCodecTestSuite) TestDecode_ScalarReplacedByNested() {
	var v map[string]any
	s.Require().NoError(s.codec.Decode([]byte("APP=x\nAPP_NAME=demo"), &v))
	s.Equal(map[string]any{"app": map[string]any{"name": "demo"}}, v)
}

func (s *EnvCodecTestSuite) TestDecode_AnyTarget() {
	var v any
	s.Require().NoError(s.codec.Decode([]byte("A=1"), &v))
	s.Equal(map[string]any{"a": "1"}, v)
}

func (s *EnvCodecTestSuite) TestDecode_InvalidTarget() {
	var v struct{}
	s.ErrorContains(s.codec.Decode([]byte("A=1"), &v), "expected *map[string]any")
}

func (s *EnvCodecTestSuite) TestEncode() {
	data, err := s.codec.Encode(map[string]any{
		"database": map[string]any{"host": "localhost", "port": 5432},
		"debug":    true,
	})
	s.Require().NoError(err)
	s.Equal("DATABASE_HOST=localhost\nDATABASE_PORT=5432\nDEBUG=true\n", string(data))

	var back map[string]any
	s.Require().NoError(s.codec.Decode(data, &back))
	s.Equal("5432", back["database"].(map[string]any)["port"])
}

func (s *EnvCodecTestSuite) TestEncode_RejectsNonMaps() {
	_, err := s.codec.Encode([]string{"a"})
	s.Error(err)
}
