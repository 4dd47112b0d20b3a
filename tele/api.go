// Package tele is telemetry API of the vending machine.
// Implementation lives in internal/tele.
package tele

import (
	"context"
	"sync"

	"github.com/Arnispl/VendingMachine/log2"
	tele_config "github.com/Arnispl/VendingMachine/tele/config"
)

//go:generate protoc --go_out=paths=source_relative:./ tele.proto

// Teler is telemetry client, vending machine side.
type Teler interface {
	Init(context.Context, *log2.Log, tele_config.Config) error
	Close()
	State(State)
	Error(error)
	StatModify(func(*Stat))
	Transaction(*Telemetry_Transaction)
	Report(inventory *Telemetry_Inventory, serviceTag bool) error
}

// Low priority telemetry buffer. Can be updated at any time.
// Sent together with more important data.
type Stat struct { //nolint:maligned
	sync.Mutex
	Telemetry_Stat
}

// Caller must hold self.Mutex.
func (self *Stat) Locked_Reset() {
	last := self.LastActivity
	self.Telemetry_Stat.Reset()
	self.CoinAccepted = make(map[uint32]uint32, 8)
	self.LastActivity = last
}

type Noop struct{}

var _ Teler = Noop{} // compile-time interface test

func (Noop) Init(context.Context, *log2.Log, tele_config.Config) error { return nil }
func (Noop) Close()                                                    {}
func (Noop) State(State)                                               {}
func (Noop) Error(error)                                               {}
func (Noop) StatModify(func(*Stat))                                    {}
func (Noop) Transaction(*Telemetry_Transaction)                        {}
func (Noop) Report(*Telemetry_Inventory, bool) error                   { return nil }
