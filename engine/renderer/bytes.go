package renderer

import "unsafe"

// AsBytes reinterprets a slice of plain values (float32, uint16, mgl32.Vec3, vertex
// structs without pointers) as its raw bytes. The result aliases values.
func AsBytes[T any](values []T) []byte {
	if len(values) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*int(unsafe.Sizeof(zero)))
}
