package state

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Arnispl/VendingMachine/internal/machine"
	"github.com/Arnispl/VendingMachine/log2"
	tele_api "github.com/Arnispl/VendingMachine/tele"
	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
)

type Global struct {
	Alive        *alive.Alive
	BuildVersion string
	Config       *Config
	Log          *log2.Log
	Machine      *machine.Machine
	Tele         tele_api.Teler

	_copy_guard sync.Mutex //nolint:unused
}

type contextKey string

const ContextKey contextKey = "run/state-global"

const defaultTelePersistPath = "./tmp-vender-db/tele"

func GetGlobal(ctx context.Context) *Global {
	v := ctx.Value(ContextKey)
	if v == nil {
		panic(fmt.Sprintf("context['%s'] is nil", ContextKey))
	}
	if g, ok := v.(*Global); ok {
		return g
	}
	panic(fmt.Sprintf("context['%s'] expected type *Global actual=%#v", ContextKey, v))
}

// If `Init` fails, consider `Global` is in broken state.
func (g *Global) Init(ctx context.Context, cfg *Config) error {
	g.Config = cfg
	if g.Config.Log.Debug {
		g.Log.SetLevel(log2.LDebug)
	}
	g.Log.Infof("build version=%s", g.BuildVersion)

	// Since tele is remote error reporting mechanism, it must be inited before anything else
	if g.Config.Tele.Enabled && g.Config.Tele.PersistPath == "" {
		g.Config.Tele.PersistPath = filepath.FromSlash(defaultTelePersistPath)
		g.Log.Errorf("config: tele.persist_path=empty changed=%s", g.Config.Tele.PersistPath)
	}
	// Tele.Init gets g.Log clone before SetErrorFunc, so Tele.Log.Error doesn't recurse on itself
	if err := g.Tele.Init(ctx, g.Log.Clone(log2.LInfo), g.Config.Tele); err != nil {
		g.Tele = tele_api.Noop{}
		return errors.Annotate(err, "tele init")
	}
	g.Log.SetErrorFunc(g.Tele.Error)

	products, err := g.Config.SeedProducts()
	if err != nil {
		return errors.Annotate(err, "catalog")
	}
	g.Machine = machine.New(g.Config.Manufacturer(), products)
	g.Log.Debugf("machine manufacturer=%s products=%d", g.Machine.Manufacturer(), g.Machine.Len())
	return nil
}

func (g *Global) MustInit(ctx context.Context, cfg *Config) {
	err := g.Init(ctx, cfg)
	if err != nil {
		g.Fatal(err)
	}
}

func (g *Global) Error(err error, args ...interface{}) {
	if err != nil {
		if len(args) != 0 {
			msg := args[0].(string)
			args = args[1:]
			err = errors.Annotatef(err, msg, args...)
		}
		g.Tele.Error(err)
		g.Log.Logf(log2.LError, "error: %v", err)
	}
}

func (g *Global) Fatal(err error, args ...interface{}) {
	if err != nil {
		g.Error(err, args...)
		g.StopWait(5 * time.Second)
		g.Tele.Close()
		g.Log.Fatal(errors.ErrorStack(err))
		os.Exit(1)
	}
}

func (g *Global) Stop() {
	g.Alive.Stop()
}

func (g *Global) StopWait(timeout time.Duration) bool {
	g.Alive.Stop()
	select {
	case <-g.Alive.WaitChan():
		return true
	case <-time.After(timeout):
		return false
	}
}
