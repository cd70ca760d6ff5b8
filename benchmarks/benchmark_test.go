package benchmarks_test

import (
	"bytes"
	"fmt"
	"strconv"
	"testing"

	"github.com/reoring/termpose"
	"github.com/reoring/termpose/bridge"
	"github.com/reoring/termpose/codec"
	"github.com/reoring/termpose/syntax"
	"github.com/reoring/termpose/term"
)

// ---- Helpers ----

// generateInventory returns a document of the form:
//
//	inventory
//		item0 cost:0 stock:yes f0:v0 ...
//		item1 cost:1 stock:yes f0:v0 ...
func generateInventory(numItems, extraFields int) string {
	var buf bytes.Buffer
	buf.Grow(numItems * (32 + extraFields*8))
	buf.WriteString("inventory\n")
	for i := 0; i < numItems; i++ {
		fmt.Fprintf(&buf, "\titem%d cost:%d stock:yes", i, i)
		for k := 0; k < extraFields; k++ {
			buf.WriteString(" f")
			buf.WriteString(strconv.Itoa(k))
			buf.WriteString(":v")
			buf.WriteString(strconv.Itoa(k))
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

type item struct {
	Name  string
	Cost  int
	Stock bool
}

// itemCodec looks fields up by name; declared order matches the document so
// the cursor never rescans.
var itemCodec = codec.Func(
	func(it item) term.Term {
		return term.NewList(
			term.NewLeaf(it.Name),
			term.NewList(term.NewLeaf("cost"), codec.Int.Encode(it.Cost)),
			term.NewList(term.NewLeaf("stock"), codec.Bool.Encode(it.Stock)),
		)
	},
	func(t term.Term) (item, error) {
		var (
			it  item
			err error
		)
		items := t.Contents()
		if len(items) == 0 {
			return item{}, termpose.NewError(t, termpose.CodeArity, "expected an item name")
		}
		if it.Name, err = codec.String.Decode(items[0]); err != nil {
			return item{}, err
		}
		c := termpose.NewFieldCursorOver(t, items[1:])
		if it.Cost, err = termpose.Field[int](c, "cost", codec.Int); err != nil {
			return item{}, err
		}
		if it.Stock, err = termpose.Field[bool](c, "stock", codec.Bool); err != nil {
			return item{}, err
		}
		return it, nil
	},
)

var inventoryCodec = codec.TaggedSequence[item]("inventory", itemCodec)

// ---- Benchmarks ----

func BenchmarkParse(b *testing.B) {
	for _, n := range []int{10, 1000} {
		src := generateInventory(n, 4)
		b.Run(fmt.Sprintf("items=%d", n), func(b *testing.B) {
			b.SetBytes(int64(len(src)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := syntax.Parse(src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkRender(b *testing.B) {
	t := syntax.MustParse(generateInventory(1000, 4))
	b.Run("inline", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = syntax.Render(t)
		}
	})
	b.Run("pretty", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = syntax.Pretty(t)
		}
	})
}

func BenchmarkDeserialize(b *testing.B) {
	src := generateInventory(1000, 4)
	b.SetBytes(int64(len(src)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := termpose.DeserializeWith[[]item](src, inventoryCodec); err != nil {
			b.Fatal(err)
		}
	}
}

// Field lookups in document order hit on the first look; reverse order costs
// a scan per lookup.
func BenchmarkFieldCursor(b *testing.B) {
	const fields = 32
	items := make([]term.Term, fields)
	keys := make([]string, fields)
	for i := range items {
		keys[i] = "k" + strconv.Itoa(i)
		items[i] = term.NewList(term.NewLeaf(keys[i]), term.NewLeaf("v"))
	}
	t := term.List{Items: items}
	b.Run("in-order", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			c := termpose.NewFieldCursor(t)
			for _, k := range keys {
				if _, err := c.Seek(k); err != nil {
					b.Fatal(err)
				}
			}
		}
	})
	b.Run("reverse", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			c := termpose.NewFieldCursor(t)
			for j := len(keys) - 1; j >= 0; j-- {
				if _, err := c.Seek(keys[j]); err != nil {
					b.Fatal(err)
				}
			}
		}
	})
}

func BenchmarkBridge(b *testing.B) {
	t := syntax.MustParse(generateInventory(1000, 4))
	js, err := bridge.ToJSON(t)
	if err != nil {
		b.Fatal(err)
	}
	mp, err := bridge.ToBinary(t, bridge.MsgPack)
	if err != nil {
		b.Fatal(err)
	}
	b.Run("json/read", func(b *testing.B) {
		b.SetBytes(int64(len(js)))
		for i := 0; i < b.N; i++ {
			if _, err := bridge.FromJSON(js); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("msgpack/read", func(b *testing.B) {
		b.SetBytes(int64(len(mp)))
		for i := 0; i < b.N; i++ {
			if _, err := bridge.FromBinary(mp, bridge.MsgPack); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func TestInventoryFixtureDecodes(t *testing.T) {
	items, err := termpose.DeserializeWith[[]item](generateInventory(3, 2), inventoryCodec)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 3 || items[2] != (item{Name: "item2", Cost: 2, Stock: true}) {
		t.Fatalf("got %+v", items)
	}
}
