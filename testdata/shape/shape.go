package shape

// Celsius is not a struct.
//
//accessor:derive(getters)
type Celsius float64
