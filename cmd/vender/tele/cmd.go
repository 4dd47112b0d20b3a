// Decode telemetry messages captured from broker, one hex payload per line.
// Example: mosquitto_sub -t 'vm+/w/1t' -F %x | vender tele-decode
package tele

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/Arnispl/VendingMachine/cmd/vender/subcmd"
	"github.com/Arnispl/VendingMachine/helpers/cli"
	"github.com/Arnispl/VendingMachine/internal/state"
	"github.com/Arnispl/VendingMachine/log2"
	tele_api "github.com/Arnispl/VendingMachine/tele"
	"github.com/c-bata/go-prompt"
	"github.com/golang/protobuf/proto"
	"github.com/juju/errors"
)

const modName = "tele-decode"

var Mod = subcmd.Mod{Name: modName, Usage: "print telemetry hex payloads as text", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	log := log2.ContextValueLogger(ctx)
	log.Debugf("tele-decode vm_id=%d", config.Tele.VmId)
	cli.MainLoop(modName, newExecutor(log, os.Stdout), newCompleter(), func() bool { return false })
	return nil
}

func newCompleter() func(d prompt.Document) []prompt.Suggest {
	return func(d prompt.Document) []prompt.Suggest { return nil }
}

func newExecutor(log *log2.Log, w io.Writer) func(string) {
	return func(line string) {
		if line == "" {
			return
		}
		tm, err := Decode(line)
		if err != nil {
			log.Errorf("tele-decode err=%v", err)
			return
		}
		_, _ = fmt.Fprint(w, proto.MarshalTextString(tm))
	}
}

func Decode(line string) (*tele_api.Telemetry, error) {
	// mosquitto_sub wrongly strips leading zero in hex format
	if len(line)%2 == 1 {
		line = "0" + line
	}
	b, err := hex.DecodeString(line)
	if err != nil {
		return nil, errors.Annotate(err, "hex.Decode")
	}
	var tm tele_api.Telemetry
	if err := proto.Unmarshal(b, &tm); err != nil {
		return nil, errors.Annotate(err, "proto.Unmarshal")
	}
	return &tm, nil
}
