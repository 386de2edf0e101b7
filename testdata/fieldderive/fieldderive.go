package fieldderive

//accessor:derive(getters)
type Config struct {
	name string //accessor:derive(setters)
}
