package tele

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Arnispl/VendingMachine/log2"
	tele_config "github.com/Arnispl/VendingMachine/tele/config"
)

type transportMock struct {
	t         testing.TB
	timeout   time.Duration
	failFirst int32
	outState  chan []byte
	outTele   chan []byte
	closed    int32
}

func newTransportMock(t testing.TB) *transportMock {
	return &transportMock{
		t:        t,
		timeout:  time.Second,
		outState: make(chan []byte, 16),
		outTele:  make(chan []byte, 16),
	}
}

func (self *transportMock) Init(ctx context.Context, log *log2.Log, teleConfig tele_config.Config, willPayload []byte) error {
	return nil
}

func (self *transportMock) SendState(payload []byte) bool {
	select {
	case self.outState <- payload:
		return true
	case <-time.After(self.timeout):
		self.t.Logf("transportMock.SendState timeout")
		return false
	}
}

func (self *transportMock) SendTelemetry(payload []byte) bool {
	if atomic.AddInt32(&self.failFirst, -1) >= 0 {
		return false
	}
	select {
	case self.outTele <- payload:
		return true
	case <-time.After(self.timeout):
		self.t.Logf("transportMock.SendTelemetry timeout")
		return false
	}
}

func (self *transportMock) Close() { atomic.StoreInt32(&self.closed, 1) }
