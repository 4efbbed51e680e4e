package engine

// Option configures an Engine during Construct, following gogpu-gg's
// ContextOption functional-options pattern.
type Option func(*engineOptions)

type engineOptions struct {
	nodeRadiusScale float32
	edgeThickness   float32
	labelsEnabled   bool
	fitViewPadding  float32
}

func defaultEngineOptions() engineOptions {
	return engineOptions{
		nodeRadiusScale: 3,
		edgeThickness:   1,
		labelsEnabled:   true,
		fitViewPadding:  40,
	}
}

// WithNodeRadiusScale sets the multiplier applied to node importance
// when computing draw radius.
func WithNodeRadiusScale(scale float32) Option {
	return func(o *engineOptions) { o.nodeRadiusScale = scale }
}

// WithEdgeThickness sets the constant edge line thickness.
func WithEdgeThickness(thickness float32) Option {
	return func(o *engineOptions) { o.edgeThickness = thickness }
}

// WithLabelsEnabled toggles the label draw pass.
func WithLabelsEnabled(enabled bool) Option {
	return func(o *engineOptions) { o.labelsEnabled = enabled }
}

// WithFitViewPadding sets the margin, in viewport pixels, FitView
// leaves around the graph's bounding box.
func WithFitViewPadding(padding float32) Option {
	return func(o *engineOptions) { o.fitViewPadding = padding }
}
