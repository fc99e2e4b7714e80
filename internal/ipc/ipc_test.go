package ipc

import (
	"errors"
	"net"
	"path/filepath"
	"testing"

	"snapbuy/pkg/global"
	"snapbuy/pkg/logger"
)

type fakeController struct {
	startErr error
	started  int
	stopped  int
}

func (f *fakeController) StartAutomation() error {
	f.started++
	return f.startErr
}

func (f *fakeController) StopAutomation() { f.stopped++ }

func (f *fakeController) Status() (string, float64) { return "IDLE", 1234.5 }

func (f *fakeController) Windows() ([]string, error) {
	return []string{"Market", "Inventory"}, nil
}

// serve accepts connections on a throwaway socket until the test ends and
// returns a client bound to it.
func serve(t *testing.T, ctrl Controller) *Client {
	t.Helper()
	global.InitGlobals(nil, logger.NewNop(), "")

	path := filepath.Join(t.TempDir(), "ctl.sock")
	listener, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			handleConnection(conn, ctrl)
		}
	}()
	return &Client{socket: path}
}

func TestClientStartAndStop(t *testing.T) {
	ctrl := &fakeController{}
	client := serve(t, ctrl)

	if err := client.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := client.Stop(); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if ctrl.started != 1 || ctrl.stopped != 1 {
		t.Errorf("controller calls: started=%d stopped=%d, want 1/1", ctrl.started, ctrl.stopped)
	}
}

func TestClientStartSurfacesControllerError(t *testing.T) {
	ctrl := &fakeController{startErr: errors.New("no regions configured")}
	client := serve(t, ctrl)

	err := client.Start()
	if err == nil {
		t.Fatal("expected error from rejected start")
	}
	if got := err.Error(); got != "no regions configured" {
		t.Errorf("error = %q, want controller message", got)
	}
}

func TestClientStatus(t *testing.T) {
	client := serve(t, &fakeController{})

	state, balance, err := client.Status()
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if state != "IDLE" || balance != 1234.5 {
		t.Errorf("status = %q/%.1f, want IDLE/1234.5", state, balance)
	}
}

func TestClientWindowTitles(t *testing.T) {
	client := serve(t, &fakeController{})

	titles, err := client.WindowTitles()
	if err != nil {
		t.Fatalf("window list failed: %v", err)
	}
	if len(titles) != 2 || titles[0] != "Market" {
		t.Errorf("titles = %v", titles)
	}
}

func TestClientErrorsWhenNoServer(t *testing.T) {
	client := &Client{socket: filepath.Join(t.TempDir(), "missing.sock")}
	if err := client.Start(); err == nil {
		t.Fatal("expected dial error without a server")
	}
}
