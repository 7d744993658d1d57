package www

import (
	"fmt"
	"net/url"

	"fleetconsole/console"
)

// redirectNavigator turns view-model navigation requests into console
// URLs. The handler issues the actual HTTP redirect after the
// view-model has validated the click.
type redirectNavigator struct {
	route  string
	params console.Params
	target string
}

func (n *redirectNavigator) Navigate(route string, params console.Params) error {
	n.route = route
	n.params = params
	switch route {
	case console.RouteClient:
		n.target = "/clients/" + url.PathEscape(params["clientId"])
	case console.RouteHunts:
		n.target = "/hunts/" + url.PathEscape(params["huntId"])
	default:
		return fmt.Errorf("unknown route %q", route)
	}
	return nil
}
