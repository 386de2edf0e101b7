package shadow

// V and V1 take the names a mutator would give its type parameter.
type (
	V  int
	V1 float64
)

//accessor:derive(setters)
//accessor:setters(into)
type Rec struct {
	n     V
	label string
}
