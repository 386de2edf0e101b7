package unknownopt

//accessor:derive(getters, setters)
type Config struct {
	//accessor:getters(frobnicate)
	name string
}
