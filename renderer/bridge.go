package renderer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/npillmayer/schuko/tracing"

	"github.com/purc-go/purc/herr"
	"github.com/purc-go/purc/internal/pclog"
)

func tracer() tracing.Trace { return pclog.Tracer("purc.renderer") }

// Transport is the out-of-scope external collaborator (spec §1): whatever
// actually carries a Request to the renderer process and a Response back.
// The interpreter core only depends on this interface; a real binary wires
// up a socket/pipe transport, tests use Loopback below.
type Transport interface {
	Send(ctx context.Context, req Request) (Response, error)
}

// Bridge is the in-scope synchronous request/response component of spec
// §1's component table ("Renderer bridge"): it assigns request ids, applies
// a timeout, and maps non-200 responses to herr.ServerRefused.
type Bridge struct {
	mu        sync.Mutex
	transport Transport
	nextReqID int64
	timeout   time.Duration
	attached  bool
}

// NewBridge wraps a Transport with the request/response bookkeeping.
func NewBridge(t Transport, timeout time.Duration) *Bridge {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Bridge{transport: t, timeout: timeout}
}

func (b *Bridge) nextRequestID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextReqID++
	return fmt.Sprintf("rdr_%d", b.nextReqID)
}

// call performs one blocking request/response round trip, applying the
// bridge's timeout and translating a non-200 retCode (or a transport error)
// into herr.ServerRefused.
func (b *Bridge) call(target TargetKind, targetValue Handle, op Operation, data []byte) (Handle, *herr.Info) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	req := Request{
		Target:      target,
		TargetValue: targetValue,
		Operation:   op,
		RequestID:   b.nextRequestID(),
		Data:        data,
	}
	resp, err := b.transport.Send(ctx, req)
	if err != nil {
		tracer().Errorf("renderer call %s failed: %v", op, err)
		return "", herr.New(herr.ServerRefused, herr.AtomExternalFailure, err.Error(), herr.CallSite{})
	}
	if !resp.OK() {
		return "", herr.New(herr.ServerRefused, herr.AtomNone, resp.RetCode, herr.CallSite{})
	}
	return resp.ResultValue, nil
}

// CreateWorkspace requests a new workspace under the given session.
func (b *Bridge) CreateWorkspace(session Handle, name string) (Handle, *herr.Info) {
	return b.call(TargetSession, session, OpCreateWorkspace, []byte(fmt.Sprintf(`{"name":%q}`, name)))
}

// CreatePlainWindow requests a plain window under the given workspace.
func (b *Bridge) CreatePlainWindow(workspace Handle, title string) (Handle, *herr.Info) {
	h, err := b.call(TargetWorkspace, workspace, OpCreatePlainWindow, []byte(fmt.Sprintf(`{"title":%q}`, title)))
	if err == nil {
		b.attached = true
	}
	return h, err
}

// CreateTabbedWindow requests a tabbed window under the given workspace.
func (b *Bridge) CreateTabbedWindow(workspace Handle, title string) (Handle, *herr.Info) {
	h, err := b.call(TargetWorkspace, workspace, OpCreateTabbedWindow, []byte(fmt.Sprintf(`{"title":%q}`, title)))
	if err == nil {
		b.attached = true
	}
	return h, err
}

// CreateTabPage requests a new tab page under the given tabbed window.
func (b *Bridge) CreateTabPage(window Handle, title string) (Handle, *herr.Info) {
	return b.call(TargetWindow, window, OpCreateTabPage, []byte(fmt.Sprintf(`{"title":%q}`, title)))
}

// Attached reports whether this bridge has ever successfully created a
// window (spec §4.5: the scheduler tries to attach to the renderer at the
// end of a coroutine's first round).
func (b *Bridge) Attached() bool { return b.attached }

// DOM-edit mirroring calls (spec §4.9): each output-DOM helper primitive
// calls exactly one of these unless the stack is in rebuild-without-renderer
// mode.

func (b *Bridge) AppendChild(parent Handle, tag string) (Handle, *herr.Info) {
	return b.call(TargetPage, parent, OpAppendChild, []byte(fmt.Sprintf(`{"tag":%q}`, tag)))
}

func (b *Bridge) DisplaceChild(parent Handle, tag string) (Handle, *herr.Info) {
	return b.call(TargetPage, parent, OpDisplaceChild, []byte(fmt.Sprintf(`{"tag":%q}`, tag)))
}

func (b *Bridge) UpdateElementProperty(elem Handle, key, value string) *herr.Info {
	_, err := b.call(TargetPage, elem, OpUpdateElementProperty, []byte(fmt.Sprintf(`{"key":%q,"value":%q}`, key, value)))
	return err
}

func (b *Bridge) AppendContent(parent Handle, text string) *herr.Info {
	_, err := b.call(TargetPage, parent, OpAppendContent, []byte(fmt.Sprintf(`{"text":%q}`, text)))
	return err
}

func (b *Bridge) DisplaceContent(parent Handle, text string) *herr.Info {
	_, err := b.call(TargetPage, parent, OpDisplaceContent, []byte(fmt.Sprintf(`{"text":%q}`, text)))
	return err
}
