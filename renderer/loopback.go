package renderer

import (
	"context"
	"fmt"
	"sync"
)

// Loopback is a Transport that answers every request itself, retCode 200,
// minting a fresh handle per call. It stands in for the real external
// renderer process in tests, mirroring how the teacher's own test
// suite (src/pawscript_test.go) exercises the executor without a live
// terminal attached.
type Loopback struct {
	mu       sync.Mutex
	next     int64
	Requests []Request // every request seen, for test assertions
}

// NewLoopback constructs an always-accepting Transport.
func NewLoopback() *Loopback { return &Loopback{} }

func (l *Loopback) Send(ctx context.Context, req Request) (Response, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Requests = append(l.Requests, req)
	l.next++
	return Response{
		RetCode:     200,
		RequestID:   req.RequestID,
		ResultValue: Handle(fmt.Sprintf("h%d", l.next)),
	}, nil
}

// Refusing is a Transport that always answers SERVER_REFUSED, for testing
// the error path of spec E1-adjacent scenarios.
type Refusing struct{}

func (Refusing) Send(ctx context.Context, req Request) (Response, error) {
	return Response{RetCode: 500, RequestID: req.RequestID}, nil
}
