package book

import (
	"testing"

	"match_go/pkg/quant"
)

// BenchmarkMatchPingPong measures the full new-order hotpath: log append,
// pool allocate, match, fill, recycle. Each round trip empties the level,
// so the level is created afresh every iteration; that level creation is
// the only allocation outside the pool on this path.
func BenchmarkMatchPingPong(b *testing.B) {
	bk := New(2*b.N + 16)
	price := quant.MustPrice("100.0")

	// One warm-up round trip before timing; the level it creates is erased
	// again when the buy empties it.
	_ = bk.ProcessNewOrder(1, quant.Sell, price, 1)
	_ = bk.ProcessNewOrder(2, quant.Buy, price, 1)

	b.ResetTimer()
	b.ReportAllocs()

	id := quant.OrderID(10)
	for i := 0; i < b.N; i++ {
		_ = bk.ProcessNewOrder(id, quant.Sell, price, 10)
		id++
		_ = bk.ProcessNewOrder(id, quant.Buy, price, 10)
		id++
	}
}

// BenchmarkCancel measures the O(1) cancel path: index lookup, intrusive
// unlink, recycle.
func BenchmarkCancel(b *testing.B) {
	bk := New(b.N + 16)
	price := quant.MustPrice("100.0")
	for i := 0; i < b.N; i++ {
		_ = bk.ProcessNewOrder(quant.OrderID(i+1), quant.Buy, price, 10)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		bk.ProcessCancel(quant.OrderID(i + 1))
	}
}

// BenchmarkRestAcrossLevels exercises the sorted price index with a
// rotating band of prices.
func BenchmarkRestAcrossLevels(b *testing.B) {
	bk := New(b.N + 16)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		price := quant.Price(990000 + (i%64)*1000)
		_ = bk.ProcessNewOrder(quant.OrderID(i+1), quant.Buy, price, 10)
	}
}
