package console

// Route names the dashboard navigates to.
const (
	RouteClient = "client"
	RouteHunts  = "hunts"
)

// Params carries route parameters, e.g. {"clientId": "C.1234"}.
type Params map[string]string

// Navigator is the client-side routing collaborator. The web layer
// implements it as a redirect; tests record the calls.
type Navigator interface {
	Navigate(route string, params Params) error
}
