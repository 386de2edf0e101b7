package underscore

//accessor:derive(getters)
type Config struct {
	_name string
}
