package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Arnispl/VendingMachine/cmd/vender/console"
	"github.com/Arnispl/VendingMachine/cmd/vender/subcmd"
	"github.com/Arnispl/VendingMachine/cmd/vender/tele"
	"github.com/Arnispl/VendingMachine/internal/state"
	state_new "github.com/Arnispl/VendingMachine/internal/state/new"
	tele_impl "github.com/Arnispl/VendingMachine/internal/tele"
	"github.com/Arnispl/VendingMachine/log2"
	"github.com/joho/godotenv"
	"github.com/juju/errors"
)

const defaultConfigPath = "vender.hcl"

var BuildVersion string = "unknown" // set by ldflags -X

var log = log2.NewStderr(log2.LDebug)
var modules = []subcmd.Mod{
	console.Mod,
	tele.Mod,
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		log.Errorf("dotenv err=%v", err)
	}

	flagset := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagConfig := flagset.String("config", configPathDefault(), "")
	flagset.Usage = func() {
		fmt.Fprintf(flagset.Output(), "Usage: %s [option] [command]\n\nOptions:\n", os.Args[0])
		flagset.PrintDefaults()
		fmt.Fprintf(flagset.Output(), "\nCommands:\n")
		for _, m := range modules {
			fmt.Fprintf(flagset.Output(), "  %-12s %s\n", m.Name, m.Usage)
		}
	}
	_ = flagset.Parse(os.Args[1:])

	command := flagset.Arg(0)
	if command == "" {
		command = console.Mod.Name
	}
	mod, err := subcmd.Parse(command, modules)
	if err != nil {
		flagset.Usage()
		log.Fatal(err)
	}

	if subcmd.SdNotify("start") {
		// we're under systemd, assume systemd journal logging, remove timestamp
		log.SetFlags(log2.LServiceFlags)
	} else {
		log.SetFlags(log2.LInteractiveFlags)
	}
	// console output is for customer, keep log quiet unless config asks
	log.SetLevel(log2.LInfo)

	config := readConfig(*flagConfig)
	log.Debugf("config=%+v", config)

	ctx, g := state_new.NewContext(log, tele_impl.New())
	g.BuildVersion = BuildVersion
	if err := mod.Main(ctx, config); err != nil {
		g.Tele.Close()
		log.Fatal(errors.ErrorStack(err))
	}
	g.Tele.Close()
	log.Debugf("%s exit", mod.Name)
}

func configPathDefault() string {
	if s := os.Getenv("VENDER_CONFIG"); s != "" {
		return s
	}
	return defaultConfigPath
}

// Missing default config file is fine, built-in catalog is used.
// Explicit path must exist.
func readConfig(path string) *state.Config {
	if _, err := os.Stat(path); os.IsNotExist(err) && path == defaultConfigPath {
		log.Infof("config file=%s not found, using built-in catalog", path)
		return state.DefaultConfig(log)
	}
	return state.MustReadConfig(log, state.NewOsFullReader(), path)
}
