package exported

//accessor:derive(getters, setters)
type Config struct {
	Name string
	//accessor:getters(ignore)
	Port int
}
