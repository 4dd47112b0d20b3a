package state_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Arnispl/VendingMachine/currency"
	"github.com/Arnispl/VendingMachine/internal/state"
	state_new "github.com/Arnispl/VendingMachine/internal/state/new"
	"github.com/Arnispl/VendingMachine/log2"
	tele_api "github.com/Arnispl/VendingMachine/tele"
	tele_config "github.com/Arnispl/VendingMachine/tele/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errTele struct {
	tele_api.Noop
	errs []error
}

func (self *errTele) Error(e error) { self.errs = append(self.errs, e) }

type failTele struct{ tele_api.Noop }

func (failTele) Init(context.Context, *log2.Log, tele_config.Config) error {
	return fmt.Errorf("broker unreachable")
}

func TestGlobalInit(t *testing.T) {
	t.Parallel()
	ctx, g := state_new.NewTestContext(t, "test", `
machine { manufacturer = "Test Co." }
catalog { product "Tea" { price = "1.00" count = 2 } }`)
	assert.Equal(t, g, state.GetGlobal(ctx))
	require.NotNil(t, g.Machine)
	assert.Equal(t, "Test Co.", g.Machine.Manufacturer())
	p, err := g.Machine.Product(1)
	require.NoError(t, err)
	assert.Equal(t, "Tea", p.Name)
	assert.Equal(t, currency.NewMoney(1, 0), p.Price)
}

func TestGlobalErrorReported(t *testing.T) {
	t.Parallel()
	teler := &errTele{}
	log := log2.NewTest(t, log2.LDebug)
	ctx, g := state_new.NewContext(log, teler)
	require.NoError(t, g.Init(ctx, state.DefaultConfig(log)))
	assert.Equal(t, 10, g.Machine.Len())

	g.Error(fmt.Errorf("jam"), "slot=%d", 3)
	log.Errorf("coin mech offline")
	require.Len(t, teler.errs, 2)
	assert.Equal(t, "slot=3: jam", teler.errs[0].Error())
	assert.Equal(t, "coin mech offline", teler.errs[1].Error())
}

func TestGlobalTeleInitFail(t *testing.T) {
	t.Parallel()
	log := log2.NewTest(t, log2.LDebug)
	ctx, g := state_new.NewContext(log, failTele{})
	err := g.Init(ctx, state.DefaultConfig(log))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tele init")
	assert.Equal(t, tele_api.Noop{}, g.Tele)
}

func TestGlobalStopWait(t *testing.T) {
	t.Parallel()
	_, g := state_new.NewTestContext(t, "test", "")
	assert.True(t, g.StopWait(time.Second))
	assert.True(t, g.Alive.IsFinished())
}
