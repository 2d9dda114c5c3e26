package systems

// GrassField stores the grass quantity of every grid cell, row-major.
type GrassField struct {
	Width, Height int
	Amount        []int
}

// NewGrassField creates a field with every cell set to amount.
func NewGrassField(width, height, amount int) *GrassField {
	f := &GrassField{
		Width:  width,
		Height: height,
		Amount: make([]int, width*height),
	}
	f.Fill(amount)
	return f
}

// Fill sets every cell to amount.
func (f *GrassField) Fill(amount int) {
	for i := range f.Amount {
		f.Amount[i] = amount
	}
}

// InBounds reports whether (x, y) lies on the grid.
func (f *GrassField) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height
}

func (f *GrassField) index(x, y int) int {
	return y*f.Width + x
}

// At returns the grass at (x, y).
func (f *GrassField) At(x, y int) int {
	return f.Amount[f.index(x, y)]
}

// Set overwrites the grass at (x, y).
func (f *GrassField) Set(x, y, amount int) {
	f.Amount[f.index(x, y)] = amount
}

// Regrow adds rate to every cell, clamped to limit.
func (f *GrassField) Regrow(rate, limit int) {
	for i, g := range f.Amount {
		f.Amount[i] = min(g+rate, limit)
	}
}

// Total returns the grass summed over every cell.
func (f *GrassField) Total() int {
	sum := 0
	for _, g := range f.Amount {
		sum += g
	}
	return sum
}
