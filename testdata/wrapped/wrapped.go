package wrapped

import "time"

type stamp time.Time

//accessor:derive(setters)
//accessor:setters(into)
type Job struct {
	at stamp
}
