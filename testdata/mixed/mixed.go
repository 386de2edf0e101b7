package mixed

import (
	"io"
	stdstrings "strings"
	"sync"
)

type (
	// Server is selected by derive inside a grouped declaration.
	//
	//accessor:derive(getters)
	Server struct {
		sync.Mutex
		_          [0]func()
		host, path string
		//accessor:getters(return_type = "io.Reader")
		body *stdstrings.Reader
		port int
	}

	// Client carries directives but is not derived.
	//
	//accessor:getters(ignore)
	Client struct {
		addr string
	}

	// Plain has no directives at all.
	Plain struct {
		id int
	}
)

// Reset clears the server.
func (srv *Server) Reset() {
	srv.host = ""
	_ = io.EOF
}
