package foreign

import (
	"io"
	"math/big"
	"strings"
	"time"
)

// Event mixes field types declared in other packages.
//
//accessor:derive(getters, setters)
//accessor:setters(into)
type Event struct {
	at     time.Time
	ttl    time.Duration
	amount big.Int
	buf    *strings.Builder
	body   io.Reader
	stamp  stamp
}

// stamp borrows the unexported layout of time.Time.
type stamp time.Time
