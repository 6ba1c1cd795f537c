// Package tree renders the layout tree of a planned building as a diagram.
//
// Each face becomes a cluster. Containers are drawn as small labelled boxes
// ("vertical", "horizontal") and leaves as filled boxes naming their panel
// kind and size:
//
//	dot := tree.ToDOT(res, tree.Options{})
//	svg, err := tree.RenderSVG(dot)
package tree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/facadeplan/pkg/facade"
	"github.com/matzehuels/facadeplan/pkg/facade/layout"
)

// Options configures diagram generation.
type Options struct {
	// Rows collapses every band row into a single node instead of one node per panel.
	Rows bool
}

// ToDOT converts the layout trees of res to Graphviz DOT source.
func ToDOT(res *facade.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.1,0.05\"];\n")
	buf.WriteString("  ranksep=0.3;\n")
	buf.WriteString("  nodesep=0.2;\n")

	w := &dotWriter{buf: &buf, opts: opts}
	for _, f := range res.Faces {
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", f.Index)
		fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("%s (%.2f m)", f.Direction, f.Width))
		w.node(f.Layout, fmt.Sprintf("f%d", f.Index))
		buf.WriteString("  }\n")
	}
	buf.WriteString("\n")
	buf.Write(w.edges.Bytes())
	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf   *bytes.Buffer
	edges bytes.Buffer
	opts  Options
}

func (w *dotWriter) node(n layout.Node, id string) {
	switch t := n.(type) {
	case *layout.Element:
		fmt.Fprintf(w.buf, "    %q [%s];\n", id, leafAttrs(t))
	case *layout.Vertical:
		fmt.Fprintf(w.buf, "    %q [label=\"vertical\", shape=box, style=rounded, fontsize=10];\n", id)
		w.children(t.Children, id)
	case *layout.Horizontal:
		if w.opts.Rows && isRow(t) {
			fmt.Fprintf(w.buf, "    %q [%s];\n", id, rowAttrs(t))
			return
		}
		fmt.Fprintf(w.buf, "    %q [label=\"horizontal\", shape=box, style=rounded, fontsize=10];\n", id)
		w.children(t.Children, id)
	}
}

func (w *dotWriter) children(cs []layout.Node, parent string) {
	for i, c := range cs {
		id := parent + "." + strconv.Itoa(i)
		w.node(c, id)
		fmt.Fprintf(&w.edges, "  %q -> %q;\n", parent, id)
	}
}

// isRow reports whether h holds only leaves.
func isRow(h *layout.Horizontal) bool {
	for _, c := range h.Children {
		if _, ok := c.(*layout.Element); !ok {
			return false
		}
	}
	return len(h.Children) > 0
}

func kindOf(e *layout.Element) facade.PanelKind {
	if p, ok := e.Payload.(facade.Panel); ok {
		return p.Kind
	}
	return facade.KindNone
}

func leafAttrs(e *layout.Element) string {
	label := fmt.Sprintf("%s\n%.2f x %.2f", kindOf(e), e.Width, e.Height)
	attrs := fmt.Sprintf("label=%q", label)
	if e.Background {
		attrs += ", style=\"rounded,filled,dashed\", fillcolor=lightgrey"
	}
	return attrs
}

func rowAttrs(h *layout.Horizontal) string {
	first := h.Children[0].(*layout.Element)
	w, ht := h.Extent()
	label := fmt.Sprintf("%s x%d\n%.2f x %.2f", kindOf(first), len(h.Children), w, ht)
	return fmt.Sprintf("label=%q, fillcolor=\"#eef3f8\"", label)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element with one whose
// viewBox starts at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
