// Main, customer facing mode of operation.
package console

import (
	"context"
	"os"

	"github.com/Arnispl/VendingMachine/cmd/vender/subcmd"
	"github.com/Arnispl/VendingMachine/internal/state"
	"github.com/Arnispl/VendingMachine/internal/ui"
	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
)

var Mod = subcmd.Mod{Name: "console", Usage: "interactive vending machine (default)", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	g.MustInit(ctx, config)

	console := ui.New(g.Machine, g.Tele, &g.Config.UI, g.Log, os.Stdout)
	if err := console.Init(ctx); err != nil {
		return errors.Annotate(err, "ui Init()")
	}

	subcmd.SdNotify(daemon.SdNotifyReady)
	g.Log.Debugf("console init complete")

	g.Alive.Add(1)
	go func() {
		defer g.Alive.Done()
		console.Loop(ctx)
		g.Stop()
	}()
	g.Alive.Wait()

	subcmd.SdNotify(daemon.SdNotifyStopping)
	if rest := g.Machine.ReturnMoney(); !rest.IsZero() {
		g.Log.Infof("console stop, returned balance=%s", rest.String())
	}
	return nil
}
