package alias

type point struct {
	x, y int
}

//accessor:derive(getters)
type Point = point
