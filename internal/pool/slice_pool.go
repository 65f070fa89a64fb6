package pool

import "sync"

// Slice pools hold the column buffers used while decoding an archive.
var (
	intSlicePool = sync.Pool{
		New: func() any { return &[]int{} },
	}
	float64SlicePool = sync.Pool{
		New: func() any { return &[]float64{} },
	}
)

// GetIntSlice retrieves an int slice of length size from the pool.
//
// The caller must call the returned cleanup function once the slice is no
// longer referenced.
//
// Example:
//
//	sides, cleanup := pool.GetIntSlice(count)
//	defer cleanup()
func GetIntSlice(size int) ([]int, func()) {
	return getSlice[int](&intSlicePool, size)
}

// GetFloat64Slice retrieves a float64 slice of length size from the pool.
//
// The caller must call the returned cleanup function once the slice is no
// longer referenced.
func GetFloat64Slice(size int) ([]float64, func()) {
	return getSlice[float64](&float64SlicePool, size)
}

func getSlice[T any](p *sync.Pool, size int) ([]T, func()) {
	ptr, _ := p.Get().(*[]T)
	slice := *ptr

	if cap(slice) < size {
		slice = make([]T, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { p.Put(ptr) }
}
