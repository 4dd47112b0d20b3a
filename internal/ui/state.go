package ui

import (
	"sync/atomic"

	tele_api "github.com/Arnispl/VendingMachine/tele"
)

type State uint32

const (
	StateDefault State = iota

	StateBoot    // ->Front
	StateFront   // customer commands +service=Service +exit=Stop
	StateService // catalog commands +end=Front
	StateStop
)

var stateNames = [...]string{"Default", "Boot", "Front", "Service", "Stop"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(?)"
}

func (self *UI) State() State { return State(atomic.LoadUint32((*uint32)(&self.state))) }

func (self *UI) setState(new State) {
	old := State(atomic.SwapUint32((*uint32)(&self.state), uint32(new)))
	if old == new {
		return
	}
	self.log.Debugf("ui state %s -> %s", old.String(), new.String())
	switch new {
	case StateFront:
		self.tele.State(tele_api.State_Nominal)
	case StateService:
		self.tele.State(tele_api.State_Service)
	}
	if self.XXX_testHook != nil {
		self.XXX_testHook(new)
	}
}
