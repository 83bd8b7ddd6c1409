package kle_test

import (
	"fmt"

	"github.com/matzehuels/kle/pkg/errors"
	"github.com/matzehuels/kle/pkg/kle"
)

func ExampleUnmarshal() {
	// A two-row fragment: a 1.5u Tab, then a stepped caps lock.
	doc := `[
		{"name": "fragment"},
		[{"w": 1.5}, "Tab", {"w": 1}, "Q"],
		[{"w": 1.75, "l": true}, "Caps Lock", {"w": 1}, "A"]
	]`

	layout, err := kle.Unmarshal([]byte(doc))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("Name:", layout.Meta.Name)
	for _, k := range layout.Keys {
		fmt.Printf("%-9s x=%.2f y=%.0f w=%.2f stepped=%v\n", k.Legend(0), k.X, k.Y, k.Width, k.Stepped)
	}
	// Output:
	// Name: fragment
	// Tab       x=0.00 y=0 w=1.50 stepped=false
	// Q         x=1.50 y=0 w=1.00 stepped=false
	// Caps Lock x=0.00 y=1 w=1.75 stepped=true
	// A         x=1.75 y=1 w=1.00 stepped=false
}

func ExampleAlignment_ActiveSlots() {
	for _, a := range []kle.Alignment{0, 4, 7} {
		fmt.Println(a, a.ActiveSlots())
	}
	// Output:
	// alignment 0 [0 6 2 8 9 11 3 5 1 4 7 10]
	// alignment 4 [0 6 2 8 10 3 5 1 4 7]
	// alignment 7 [4 10]
}

func ExampleDecodeError() {
	_, err := kle.Unmarshal([]byte(`[["Esc", 42]]`))

	fmt.Println(errors.GetCode(err))
	fmt.Println(err)
	// Output:
	// UNEXPECTED_ITEM_TYPE
	// UNEXPECTED_ITEM_TYPE at row 0, item 1: expected legend string or property object, got number
}

func ExampleResolveColor() {
	c, _ := kle.ResolveColor("blue", kle.DefaultKeyColor)
	fmt.Println(c.Hex())

	c, _ = kle.ResolveColor("", kle.DefaultKeyColor)
	fmt.Println(c.Hex())
	// Output:
	// #0000ff
	// #cccccc
}
