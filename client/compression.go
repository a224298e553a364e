// Copyright 2021 DataStax
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

package client

import (
	"github.com/riverstonedb/cqlnative/compression/lz4"
	"github.com/riverstonedb/cqlnative/compression/snappy"
	"github.com/riverstonedb/cqlnative/frame"
	"github.com/riverstonedb/cqlnative/primitive"
)

// bodyCompressorFactories maps each negotiable compression algorithm to a constructor for the
// frame.BodyCompressor that implements it. primitive.CompressionNone has no entry: an absent key means
// "send frames uncompressed".
var bodyCompressorFactories = map[primitive.Compression]func() frame.BodyCompressor{
	primitive.CompressionLz4:    func() frame.BodyCompressor { return &lz4.Compressor{} },
	primitive.CompressionSnappy: func() frame.BodyCompressor { return &snappy.Compressor{} },
}

// NewBodyCompressor resolves the body compressor negotiated for a connection. An unrecognized algorithm
// falls back to no compression rather than failing the connection outright.
func NewBodyCompressor(c primitive.Compression) frame.BodyCompressor {
	if factory, ok := bodyCompressorFactories[c]; ok {
		return factory()
	}
	return nil
}
