package grid

// cellIndex translates a coordinate in the expanded (content + gutter)
// track space into an index into the row-major cell list.
//
// cols is the expanded column count, x and y are expanded coordinates and
// x must already be flipped for right-to-left grids: track order is
// reversed there, the storage order of cells is not. The second return is
// false for gutter coordinates, which have no cell.
func cellIndex(x, y, cols int, hasGutter bool) (int, bool) {
	if hasGutter {
		// Even columns and rows are content, odd ones are gutter.
		if x%2 != 0 || y%2 != 0 {
			return 0, false
		}
		c := 1 + cols/2
		return (y/2)*c + x/2, true
	}
	return y*cols + x, true
}
