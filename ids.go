package tenon

// WindowID is an opaque identifier supplied by the window source. The
// layout engine never interprets its value.
type WindowID uint64

// OutputID names a physical output (monitor).
type OutputID string

// BookmarkID identifies a saved camera position, unique within one
// ext-row manager.
type BookmarkID uint64

// RowID is stable and unique across every Canvas owned by one Layout
// process. Each Canvas is assigned a disjoint range of the id space
// with a stride of rowIDStride so that no two Canvases can ever mint
// the same RowID, at the cost of capping any one Canvas to 1000 rows
// before it would collide with its neighbor's range.
type RowID uint64

const rowIDStride = 1000

// rowIDAllocator mints RowIDs for a single Canvas, advancing by
// rowIDStride on every call regardless of how many rows currently
// exist — ids are never reused.
type rowIDAllocator struct {
	base    RowID
	counter RowID
}

func newRowIDAllocator(canvasIndex int) *rowIDAllocator {
	return &rowIDAllocator{base: RowID(canvasIndex) * rowIDStride * rowIDStride}
}

func (a *rowIDAllocator) next() RowID {
	a.counter += rowIDStride
	return a.base + a.counter
}

// layoutIDCounter mints sequential ids for things that only need
// uniqueness within a single process. No atomic is
// needed: all layout mutation happens on one event-loop thread.
type layoutIDCounter struct {
	n uint64
}

func (c *layoutIDCounter) next() uint64 {
	c.n++
	return c.n
}
