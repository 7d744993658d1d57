package console

import (
	"errors"
	"sync"
	"testing"

	"fleetconsole/api"
)

type fakeBackend struct {
	mu            sync.Mutex
	approvalCalls []int
	huntCalls     []api.HuntQuery

	approvals    *api.ApprovalList
	approvalsErr error
	hunts        *api.HuntList
	huntsErr     error
}

func (f *fakeBackend) ListClientApprovals(count int) (*api.ApprovalList, error) {
	f.mu.Lock()
	f.approvalCalls = append(f.approvalCalls, count)
	f.mu.Unlock()
	if f.approvalsErr != nil {
		return nil, f.approvalsErr
	}
	return f.approvals, nil
}

func (f *fakeBackend) ListHunts(query api.HuntQuery) (*api.HuntList, error) {
	f.mu.Lock()
	f.huntCalls = append(f.huntCalls, query)
	f.mu.Unlock()
	if f.huntsErr != nil {
		return nil, f.huntsErr
	}
	return f.hunts, nil
}

type recordingNav struct {
	route  string
	params Params
	calls  int
}

func (n *recordingNav) Navigate(route string, params Params) error {
	n.route = route
	n.params = params
	n.calls++
	return nil
}

func huntWithURN(urn string) api.Hunt {
	return api.Hunt{Value: api.HuntValue{URN: api.TypedValue{Value: urn}}}
}

func TestLoad_IssuesBothReads(t *testing.T) {
	backend := &fakeBackend{
		approvals: &api.ApprovalList{},
		hunts:     &api.HuntList{},
	}
	d := NewDashboard(backend, &recordingNav{})
	d.Load()

	if len(backend.approvalCalls) != 1 {
		t.Fatalf("approval reads = %d, want 1", len(backend.approvalCalls))
	}
	if backend.approvalCalls[0] != 7 {
		t.Errorf("approval count = %d, want 7", backend.approvalCalls[0])
	}
	if len(backend.huntCalls) != 1 {
		t.Fatalf("hunt reads = %d, want 1", len(backend.huntCalls))
	}
	q := backend.huntCalls[0]
	if q.Count != 5 {
		t.Errorf("hunt count = %d, want 5", q.Count)
	}
	if q.ActiveWithin != "31d" {
		t.Errorf("active_within = %q, want %q", q.ActiveWithin, "31d")
	}
	if q.CreatedBy != "me" {
		t.Errorf("created_by = %q, want %q", q.CreatedBy, "me")
	}
}

func TestLoad_StoresListsVerbatim(t *testing.T) {
	approvalA := api.Approval{ID: "a", Reason: "zzz last alphabetically"}
	approvalB := api.Approval{ID: "b", Reason: "aaa first alphabetically"}
	huntOne := huntWithURN("aff4:/hunts/H:1111")
	huntTwo := huntWithURN("aff4:/hunts/H:2222")

	backend := &fakeBackend{
		approvals: &api.ApprovalList{Items: []api.Approval{approvalA, approvalB}},
		hunts:     &api.HuntList{Items: []api.Hunt{huntOne, huntTwo}},
	}
	d := NewDashboard(backend, &recordingNav{})
	d.Load()

	if d.Approvals.Status != ListLoaded {
		t.Fatalf("approvals status = %d, want loaded", d.Approvals.Status)
	}
	if len(d.Approvals.Items) != 2 || d.Approvals.Items[0].ID != "a" || d.Approvals.Items[1].ID != "b" {
		t.Errorf("approvals not stored verbatim: %+v", d.Approvals.Items)
	}
	if d.Hunts.Status != ListLoaded {
		t.Fatalf("hunts status = %d, want loaded", d.Hunts.Status)
	}
	if len(d.Hunts.Items) != 2 ||
		d.Hunts.Items[0].Value.URN.Value != "aff4:/hunts/H:1111" ||
		d.Hunts.Items[1].Value.URN.Value != "aff4:/hunts/H:2222" {
		t.Errorf("hunts not stored verbatim: %+v", d.Hunts.Items)
	}
}

func TestLoad_ApprovalsFailureIsIndependent(t *testing.T) {
	backend := &fakeBackend{
		approvalsErr: errors.New("connection refused"),
		hunts:        &api.HuntList{Items: []api.Hunt{huntWithURN("aff4:/hunts/H:1111")}},
	}
	d := NewDashboard(backend, &recordingNav{})
	d.Load()

	if d.Approvals.Status != ListFailed {
		t.Errorf("approvals status = %d, want failed", d.Approvals.Status)
	}
	if !errors.Is(d.Approvals.Err, ErrTransport) {
		t.Errorf("approvals err = %v, want ErrTransport", d.Approvals.Err)
	}
	if d.Hunts.Status != ListLoaded || len(d.Hunts.Items) != 1 {
		t.Errorf("hunts should load despite approvals failure: %+v", d.Hunts)
	}
}

func TestLoad_HuntsFailureIsIndependent(t *testing.T) {
	backend := &fakeBackend{
		approvals: &api.ApprovalList{Items: []api.Approval{{ID: "a"}}},
		huntsErr:  errors.New("connection refused"),
	}
	d := NewDashboard(backend, &recordingNav{})
	d.Load()

	if d.Hunts.Status != ListFailed {
		t.Errorf("hunts status = %d, want failed", d.Hunts.Status)
	}
	if !errors.Is(d.Hunts.Err, ErrTransport) {
		t.Errorf("hunts err = %v, want ErrTransport", d.Hunts.Err)
	}
	if d.Approvals.Status != ListLoaded || len(d.Approvals.Items) != 1 {
		t.Errorf("approvals should load despite hunts failure: %+v", d.Approvals)
	}
}

func TestOpenClient(t *testing.T) {
	nav := &recordingNav{}
	d := NewDashboard(&fakeBackend{}, nav)

	if err := d.OpenClient("aff4:/C.1234/foo"); err != nil {
		t.Fatalf("OpenClient: %v", err)
	}
	if nav.route != RouteClient {
		t.Errorf("route = %q, want %q", nav.route, RouteClient)
	}
	if nav.params["clientId"] != "C.1234" {
		t.Errorf("clientId = %q, want %q", nav.params["clientId"], "C.1234")
	}
}

func TestOpenClient_Malformed(t *testing.T) {
	nav := &recordingNav{}
	d := NewDashboard(&fakeBackend{}, nav)

	err := d.OpenClient("no-segments")
	if !errors.Is(err, ErrMalformedIdentifier) {
		t.Fatalf("err = %v, want ErrMalformedIdentifier", err)
	}
	if nav.calls != 0 {
		t.Errorf("navigation should be a no-op, got %d calls", nav.calls)
	}
}

func TestOpenHunt(t *testing.T) {
	nav := &recordingNav{}
	d := NewDashboard(&fakeBackend{}, nav)

	if err := d.OpenHunt(huntWithURN("aff4:/hunts/H:5678")); err != nil {
		t.Fatalf("OpenHunt: %v", err)
	}
	if nav.route != RouteHunts {
		t.Errorf("route = %q, want %q", nav.route, RouteHunts)
	}
	if nav.params["huntId"] != "H:5678" {
		t.Errorf("huntId = %q, want %q", nav.params["huntId"], "H:5678")
	}
}

func TestOpenHunt_Malformed(t *testing.T) {
	nav := &recordingNav{}
	d := NewDashboard(&fakeBackend{}, nav)

	err := d.OpenHunt(huntWithURN("aff4:/hunts"))
	if !errors.Is(err, ErrMalformedIdentifier) {
		t.Fatalf("err = %v, want ErrMalformedIdentifier", err)
	}
	if nav.calls != 0 {
		t.Errorf("navigation should be a no-op, got %d calls", nav.calls)
	}
}
