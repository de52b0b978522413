package codec_test

import (
	"fmt"

	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/codec/codectest"
	"github.com/ssargent/stylegraph/pkg/objects"
)

func ExampleDecode() {
	buf := codectest.New().
		Versioned(objects.RgbColorID.String(), 1).
		Double(53.25).Double(80).Double(67).U8(0).U8(1).
		Bytes()

	obj, err := codec.Decode(buf, objects.MustRegistry())
	if err != nil {
		fmt.Println(err)
		return
	}

	snap := obj.Snapshot()
	fmt.Println(obj.ClassName())
	fmt.Println(snap["l"], snap["a"], snap["b"])
	fmt.Println(snap["null"], snap["dither"])
	// Output:
	// RgbColor
	// 53.25 80 67
	// false true
}

func ExampleClassify() {
	buf := codectest.New().Object("0badc0de-0000-4000-8000-000000000001").Bytes()

	_, err := codec.Decode(buf, objects.MustRegistry())
	fmt.Println(codec.Classify(err))
	fmt.Println(err)
	// Output:
	// unknown
	// codec: unknown class identifier 0badc0de-0000-4000-8000-000000000001 at offset 0
}

func ExampleWithStrictLength() {
	buf := codectest.New().Null().Zero(2).Bytes()
	reg := objects.MustRegistry()

	obj, err := codec.Decode(buf, reg)
	fmt.Println(obj, err)

	_, err = codec.Decode(buf, reg, codec.WithStrictLength())
	fmt.Println(codec.Classify(err))
	fmt.Println(err)
	// Output:
	// <nil> <nil>
	// malformed
	// codec: malformed stream reading root at offset 16: 2 bytes after the root object
}
