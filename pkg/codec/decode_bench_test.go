//go:build bench
// +build bench

package codec_test

import (
	"fmt"
	"testing"

	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/codec/codectest"
	"github.com/ssargent/stylegraph/pkg/objects"
)

func BenchmarkDecode(b *testing.B) {
	reg := objects.MustRegistry()
	seeds := decodeSeeds()

	benchmarks := []struct {
		name string
		buf  []byte
	}{
		{name: "renderer", buf: seeds[0]},
		{name: "truncated", buf: seeds[1]},
		{name: "property set", buf: seeds[5]},
		{name: "unknown", buf: seeds[len(seeds)-1]},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			b.SetBytes(int64(len(bm.buf)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = codec.Decode(bm.buf, reg)
			}
		})
	}
}

func BenchmarkDecode_LargePropertySet(b *testing.B) {
	reg := objects.MustRegistry()

	for _, n := range []int{10, 100, 1000} {
		pb := codectest.New().Versioned(objects.PropertySetID.String(), 1).U32(uint32(n))
		for i := 0; i < n; i++ {
			pb.String("KEY").U16(objects.VariantLong).U32(uint32(i))
		}
		buf := pb.Bytes()

		b.Run(fmt.Sprintf("%d properties", n), func(b *testing.B) {
			b.SetBytes(int64(len(buf)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := codec.Decode(buf, reg); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
