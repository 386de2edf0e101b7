package pending

//accessor:derive(getters)
type Account struct {
	owner string
}

// Describe uses an accessor that is generated later.
func Describe(a *Account) string {
	return "owned by " + a.Owner()
}
