package render

// Option configures a Renderer at construction. Follows gogpu-gg's
// functional-options constructor pattern.
type Option func(*Renderer)

// WithNodeRadiusScale sets the multiplier applied to a node's
// importance when computing its draw radius.
func WithNodeRadiusScale(scale float32) Option {
	return func(r *Renderer) { r.nodeRadiusScale = scale }
}

// WithEdgeThickness sets the constant thickness drawn for every edge.
func WithEdgeThickness(thickness float32) Option {
	return func(r *Renderer) { r.edgeThickness = thickness }
}

// WithLabelsEnabled toggles whether the label pass runs at all; label
// shaping and atlas packing are the most expensive per-frame CPU work
// this package does, so large graphs may disable it.
func WithLabelsEnabled(enabled bool) Option {
	return func(r *Renderer) { r.labelsEnabled = enabled }
}
