package badtype

//accessor:derive(getters, setters)
//accessor:setters(into = "yes")
type Config struct {
	name string
}
