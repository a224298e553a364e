// Copyright 2020 DataStax
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package message

import (
	"errors"
	"fmt"
	"io"

	"github.com/riverstonedb/cqlnative/primitive"
)

// Well-known Startup option keys.
const (
	StartupOptionCqlVersion  = "CQL_VERSION"
	StartupOptionCompression = "COMPRESSION"
	StartupOptionDriverName  = "DRIVER_NAME"
	StartupOptionDriverVers  = "DRIVER_VERSION"
)

const defaultCqlVersion = "3.0.0"

// Startup is the first message a client sends on a new connection, requesting the server to initialize it.
// +k8s:deepcopy-gen=true
// +k8s:deepcopy-gen:interfaces=github.com/riverstonedb/cqlnative/message.Message
type Startup struct {
	Options map[string]string
}

// NewStartup creates a new Startup message, always seeded with StartupOptionCqlVersion set to "3.0.0". Additional
// options are given as alternating key, value pairs, e.g. NewStartup(StartupOptionCompression, "LZ4").
func NewStartup(keyValuePairs ...string) *Startup {
	options := map[string]string{StartupOptionCqlVersion: defaultCqlVersion}
	for i := 0; i+1 < len(keyValuePairs); i += 2 {
		options[keyValuePairs[i]] = keyValuePairs[i+1]
	}
	return &Startup{Options: options}
}

// GetCompression returns the requested compression algorithm, or primitive.CompressionNone if none was requested.
func (m *Startup) GetCompression() primitive.Compression {
	if m.Options == nil {
		return primitive.CompressionNone
	}
	if c, ok := m.Options[StartupOptionCompression]; ok {
		return primitive.Compression(c)
	}
	return primitive.CompressionNone
}

// SetCompression sets the requested compression algorithm.
func (m *Startup) SetCompression(compression primitive.Compression) {
	if m.Options == nil {
		m.Options = map[string]string{}
	}
	m.Options[StartupOptionCompression] = string(compression)
}

// SetDriverName sets the DRIVER_NAME option, an informational string identifying the client implementation.
func (m *Startup) SetDriverName(name string) {
	if m.Options == nil {
		m.Options = map[string]string{}
	}
	m.Options[StartupOptionDriverName] = name
}

func (m *Startup) IsResponse() bool {
	return false
}

func (m *Startup) GetOpCode() primitive.OpCode {
	return primitive.OpCodeStartup
}

func (m *Startup) String() string {
	return fmt.Sprintf("STARTUP %v", m.Options)
}

type startupCodec struct{}

func (c *startupCodec) Encode(msg Message, dest io.Writer, _ primitive.ProtocolVersion) error {
	startup, ok := msg.(*Startup)
	if !ok {
		return errors.New(fmt.Sprintf("expected *message.Startup, got %T", msg))
	}
	return primitive.WriteStringMap(startup.Options, dest)
}

func (c *startupCodec) EncodedLength(msg Message, _ primitive.ProtocolVersion) (int, error) {
	startup, ok := msg.(*Startup)
	if !ok {
		return -1, errors.New(fmt.Sprintf("expected *message.Startup, got %T", msg))
	}
	return primitive.LengthOfStringMap(startup.Options), nil
}

func (c *startupCodec) Decode(source io.Reader, _ primitive.ProtocolVersion) (Message, error) {
	options, err := primitive.ReadStringMap(source)
	if err != nil {
		return nil, err
	}
	return &Startup{Options: options}, nil
}

func (c *startupCodec) GetOpCode() primitive.OpCode {
	return primitive.OpCodeStartup
}
