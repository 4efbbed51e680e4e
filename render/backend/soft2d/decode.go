package soft2d

import "unsafe"

// decodeNodes reinterprets the zero-copy node instance byte cast
// (spec.md §4.4) back into the local struct this package's rasterizer
// reads, without a field-by-field copy.
func decodeNodes(data []byte, count int) []nodeInst {
	if count == 0 || len(data) < count*28 {
		return nil
	}
	return unsafe.Slice((*nodeInst)(unsafe.Pointer(&data[0])), count)
}

func decodeEdges(data []byte, count int) []edgeInst {
	if count == 0 || len(data) < count*36 {
		return nil
	}
	return unsafe.Slice((*edgeInst)(unsafe.Pointer(&data[0])), count)
}

func decodeLabels(data []byte, count int) []labelInst {
	if count == 0 || len(data) < count*44 {
		return nil
	}
	return unsafe.Slice((*labelInst)(unsafe.Pointer(&data[0])), count)
}

// bytesOf reinterprets a single instance value as its raw byte
// representation, the inverse of decodeNodes/decodeEdges/decodeLabels.
func bytesOf[T any](v *T, size int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), size)
}
