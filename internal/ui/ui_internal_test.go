package ui

import (
	"bytes"
	"math"
	"sync"
	"testing"

	"github.com/Arnispl/VendingMachine/currency"
	"github.com/Arnispl/VendingMachine/internal/machine"
	ui_config "github.com/Arnispl/VendingMachine/internal/ui/config"
	"github.com/Arnispl/VendingMachine/log2"
	tele_api "github.com/Arnispl/VendingMachine/tele"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

type errorCounter struct {
	tele_api.Noop
	mu     sync.Mutex
	errors []error
}

func (self *errorCounter) Error(e error) {
	self.mu.Lock()
	self.errors = append(self.errors, e)
	self.mu.Unlock()
}

func TestReportErrorOnce(t *testing.T) {
	t.Parallel()

	tc := &errorCounter{}
	log := log2.NewTest(t, log2.LDebug)
	// same wiring as state.Global
	log.SetErrorFunc(tc.Error)
	self := New(machine.New("test", nil), tc, &ui_config.Config{}, log, &bytes.Buffer{})

	self.reportError(errors.New("coin mech jam"))
	tc.mu.Lock()
	defer tc.mu.Unlock()
	assert.Len(t, tc.errors, 1)
}

func TestTeleAmount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint32(140), teleAmount(currency.NewMoney(1, 40)))
	assert.Equal(t, uint32(0), teleAmount(currency.NewMoney(-1, 0)))
	assert.Equal(t, uint32(math.MaxUint32), teleAmount(currency.NewMoney(50000000, 0)))
	assert.Equal(t, uint32(math.MaxUint32), teleAmount(currency.NewMoney(math.MaxInt, 0)))
	assert.Equal(t, int32(math.MaxInt32), teleCount(math.MaxInt))
	assert.Equal(t, int32(7), teleCount(7))
}
