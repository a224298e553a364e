package main

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/riverstonedb/cqlnative/frame"
	"github.com/riverstonedb/cqlnative/message"
	"github.com/riverstonedb/cqlnative/primitive"
)

func main() {
	startupFrame := frame.NewFrame(primitive.ProtocolVersion4, 1, message.NewStartup())
	testMessage(startupFrame)

	queryFrame := frame.NewFrame(
		primitive.ProtocolVersion4,
		1,
		&message.Query{Query: "SELECT * FROM system.local", Options: &message.QueryOptions{}},
	)
	testMessage(queryFrame)

	rowsFrame := frame.NewFrame(
		primitive.ProtocolVersion4,
		1,
		&message.RowsResult{
			Metadata: &message.RowsMetadata{ColumnCount: 1},
			Data:     message.RowSet{message.Row{message.Column("local")}},
		},
	)
	testMessage(rowsFrame)
}

func testMessage(originalFrame *frame.Frame) {
	println("--------------------------------")
	fmt.Printf("original frame:\n%v\n", originalFrame)
	codec := frame.NewCodecWithCompression(nil)
	encodedFrame := bytes.Buffer{}
	if err := codec.EncodeFrame(originalFrame, &encodedFrame); err != nil {
		panic(err)
	}
	fmt.Print("encoded frame:\n", hex.Dump(encodedFrame.Bytes()))
	decodedFrame, err := codec.DecodeFrame(&encodedFrame)
	if err != nil {
		panic(err)
	}
	fmt.Printf("decoded frame:\n%v\n", decodedFrame)
	println()
}
