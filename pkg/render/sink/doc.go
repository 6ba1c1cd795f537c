// Package sink turns a planned building into output documents.
//
// [Resolve] walks each face's layout tree and returns absolute panel
// positions; the renderers are built on it:
//
//   - [RenderSVG]: the faces as elevations side by side, one rect per panel
//   - [RenderJSON]: every panel placement for external tools
//
// Basic usage:
//
//	svg := sink.RenderSVG(res, sink.WithScale(25), sink.WithLabels())
//	data, err := sink.RenderJSON(res, sink.WithJSONSeed(seed))
package sink
