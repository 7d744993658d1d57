package console

import (
	"fmt"
	"log"
	"sync"

	"fleetconsole/api"
)

const (
	dashboardApprovalCount = 7
	dashboardHuntCount     = 5
	dashboardHuntWindow    = "31d"
)

// ListStatus is the lifecycle of one dashboard list.
type ListStatus int

const (
	ListLoading ListStatus = iota
	ListLoaded
	ListFailed
)

// BackendReader is the slice of the api.Client the dashboard needs.
type BackendReader interface {
	ListClientApprovals(count int) (*api.ApprovalList, error)
	ListHunts(query api.HuntQuery) (*api.HuntList, error)
}

// ApprovalsState holds the approvals display list and its load status.
type ApprovalsState struct {
	Status ListStatus
	Items  []api.Approval
	Err    error
}

// HuntsState holds the hunts display list and its load status.
type HuntsState struct {
	Status ListStatus
	Items  []api.Hunt
	Err    error
}

// Dashboard assembles the landing page: the operator's most recent
// client approvals and their recently active hunts, plus click-to-open
// navigation for both lists. The two reads are independent; a failure
// on one leaves the other untouched.
type Dashboard struct {
	backend BackendReader
	nav     Navigator

	Approvals ApprovalsState
	Hunts     HuntsState
}

// NewDashboard wires the dashboard to its two collaborators.
func NewDashboard(backend BackendReader, nav Navigator) *Dashboard {
	return &Dashboard{
		backend:   backend,
		nav:       nav,
		Approvals: ApprovalsState{Status: ListLoading},
		Hunts:     HuntsState{Status: ListLoading},
	}
}

// Load issues the two reads concurrently and waits for both. Each
// goroutine writes only its own state field, so no lock is needed.
func (d *Dashboard) Load() {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		list, err := d.backend.ListClientApprovals(dashboardApprovalCount)
		if err != nil {
			d.Approvals = ApprovalsState{
				Status: ListFailed,
				Err:    fmt.Errorf("%w: %v", ErrTransport, err),
			}
			return
		}
		d.Approvals = ApprovalsState{Status: ListLoaded, Items: list.Items}
	}()

	go func() {
		defer wg.Done()
		list, err := d.backend.ListHunts(api.HuntQuery{
			Count:        dashboardHuntCount,
			ActiveWithin: dashboardHuntWindow,
			CreatedBy:    "me",
		})
		if err != nil {
			d.Hunts = HuntsState{
				Status: ListFailed,
				Err:    fmt.Errorf("%w: %v", ErrTransport, err),
			}
			return
		}
		d.Hunts = HuntsState{Status: ListLoaded, Items: list.Items}
	}()

	wg.Wait()
}

// OpenClient navigates to the client view for the client named by a
// path token like "aff4:/C.1234/fs/os". Malformed tokens are logged and
// dropped; no navigation happens.
func (d *Dashboard) OpenClient(pathToken string) error {
	clientID, err := ClientIDFromPath(pathToken)
	if err != nil {
		log.Printf("dashboard: open client: %v", err)
		return err
	}
	return d.nav.Navigate(RouteClient, Params{"clientId": clientID})
}

// OpenHunt navigates to the hunt view for the given hunt record.
func (d *Dashboard) OpenHunt(hunt api.Hunt) error {
	huntID, err := HuntIDFromURN(hunt.Value.URN.Value)
	if err != nil {
		log.Printf("dashboard: open hunt: %v", err)
		return err
	}
	return d.nav.Navigate(RouteHunts, Params{"huntId": huntID})
}
