package graph

// Edge connects two nodes by internal index. Edges are immutable after
// decode: the wire format carries external ids, which the decoder
// remaps to internal indices once, up front.
type Edge struct {
	Source int32
	Target int32
}
