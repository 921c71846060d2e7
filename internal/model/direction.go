package model

// Direction is a compass bearing in whole degrees, in (-180, 180]
type Direction int

// IsOctilinear returns true for multiples of 45 degrees
func (d Direction) IsOctilinear() bool {
	return d%45 == 0
}

// IsHorizontal returns true for 0 and ±180
func (d Direction) IsHorizontal() bool {
	return abs(int(d))%180 == 0
}

// IsVertical returns true for ±90 (and 270)
func (d Direction) IsVertical() bool {
	return abs(int(d))%180 == 90
}

// IsDiagonal returns true for ±45 and ±135
func (d Direction) IsDiagonal() bool {
	return abs(int(d))%90 == 45
}
