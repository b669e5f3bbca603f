package contracts

import "github.com/julienschmidt/httprouter"

// Handler mounts a group of routes. The application wraps each group in its
// own middleware stack.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
