package malformed

//accessor:derive(getters)
type Config struct {
	//accessor:getters
	name string
}
