package layout

import (
	"fmt"
	"math"
)

// Placement is a leaf together with its resolved bottom-left origin.
type Placement struct {
	X, Y    float64
	Element *Element
	Depth   int // nesting depth of the leaf below the walked root
}

// Walk visits every leaf of n in stacking order and reports its absolute origin.
func Walk(n Node, x, y float64, fn func(Placement)) {
	walk(n, x, y, 0, fn)
}

func walk(n Node, x, y float64, depth int, fn func(Placement)) {
	switch t := n.(type) {
	case *Element:
		fn(Placement{X: x, Y: y, Element: t, Depth: depth})
	case *Vertical:
		for _, c := range t.Children {
			walk(c, x, y, depth+1, fn)
			_, h := c.Extent()
			y += h
		}
	case *Horizontal:
		for _, c := range t.Children {
			walk(c, x, y, depth+1, fn)
			w, _ := c.Extent()
			x += w
		}
	}
}

// Leaves returns all leaves of n in stacking order.
func Leaves(n Node) []*Element {
	var out []*Element
	Walk(n, 0, 0, func(p Placement) { out = append(out, p.Element) })
	return out
}

// Validate checks that rows share a height and columns share a width.
// Background elements are exempt. The first inconsistency is returned.
func Validate(n Node, eps float64) error {
	switch t := n.(type) {
	case *Vertical:
		return validateChildren(t.Children, eps, "vertical", func(w, _ float64) float64 { return w })
	case *Horizontal:
		return validateChildren(t.Children, eps, "horizontal", func(_, h float64) float64 { return h })
	}
	return nil
}

func validateChildren(children []Node, eps float64, kind string, cross func(w, h float64) float64) error {
	ref := math.NaN()
	for i, c := range children {
		if e, ok := c.(*Element); ok && e.Background {
			continue
		}
		v := cross(c.Extent())
		if math.IsNaN(ref) {
			ref = v
		} else if math.Abs(v-ref) > eps {
			return fmt.Errorf("%s child %d: cross extent %.4f differs from %.4f", kind, i, v, ref)
		}
		if err := Validate(c, eps); err != nil {
			return err
		}
	}
	return nil
}
