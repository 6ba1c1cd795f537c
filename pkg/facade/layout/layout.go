// Package layout provides the container tree produced by the facade planner.
//
// A tree is made of two container kinds and one leaf kind:
//
//   - [Vertical] stacks its children bottom to top
//   - [Horizontal] arranges its children left to right
//   - [Element] is a sized leaf carrying an opaque [Payload]
//
// Trees are built once per plan and are not mutated afterwards. Consumers
// resolve absolute positions with [Walk], which accumulates extents along
// each container's stacking axis.
package layout

// Payload is the opaque renderable returned by a panel constructor.
// Scales are multipliers applied to the requested size when the element is built.
type Payload interface {
	WidthScale() float64
	HeightScale() float64
}

// Node is any member of a layout tree.
type Node interface {
	// Extent returns the width and height the node occupies in its parent.
	Extent() (width, height float64)
}

// Element is a leaf with a resolved size.
//
// Background elements are drawn at their container's origin and take no
// room in the stacking order; the shadow wall behind each face is one.
type Element struct {
	Width, Height float64
	Payload       Payload
	Background    bool
}

// Extent returns the element size, or zero for background elements.
func (e *Element) Extent() (float64, float64) {
	if e.Background {
		return 0, 0
	}
	return e.Width, e.Height
}

// Vertical stacks children bottom to top.
type Vertical struct {
	Children []Node
}

// Add appends a child on top of the stack. Nil nodes are ignored.
func (v *Vertical) Add(n Node) {
	if n != nil {
		v.Children = append(v.Children, n)
	}
}

// Len returns the number of direct children.
func (v *Vertical) Len() int { return len(v.Children) }

// Extent is the widest child by the summed child heights.
func (v *Vertical) Extent() (float64, float64) {
	var w, h float64
	for _, c := range v.Children {
		cw, ch := c.Extent()
		w = max(w, cw)
		h += ch
	}
	return w, h
}

// Horizontal arranges children left to right.
type Horizontal struct {
	Children []Node
}

// Add appends a child on the right. Nil nodes are ignored.
func (h *Horizontal) Add(n Node) {
	if n != nil {
		h.Children = append(h.Children, n)
	}
}

// Len returns the number of direct children.
func (h *Horizontal) Len() int { return len(h.Children) }

// Extent is the summed child widths by the tallest child.
func (h *Horizontal) Extent() (float64, float64) {
	var w, ht float64
	for _, c := range h.Children {
		cw, ch := c.Extent()
		w += cw
		ht = max(ht, ch)
	}
	return w, ht
}

var (
	_ Node = (*Element)(nil)
	_ Node = (*Vertical)(nil)
	_ Node = (*Horizontal)(nil)
)
