// Package ui is line oriented console of the vending machine.
// Every input line is one command, see help for list.
package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Arnispl/VendingMachine/currency"
	"github.com/Arnispl/VendingMachine/helpers/cli"
	"github.com/Arnispl/VendingMachine/internal/machine"
	ui_config "github.com/Arnispl/VendingMachine/internal/ui/config"
	"github.com/Arnispl/VendingMachine/log2"
	tele_api "github.com/Arnispl/VendingMachine/tele"
	"github.com/c-bata/go-prompt"
	"github.com/temoto/atomic_clock"
)

const (
	MsgInvalidChoice = "Invalid choice. Please select a valid option."
	MsgInvalidNumber = "Invalid product number."
	MsgUnavailable   = "Product not available or insufficient balance."
	MsgInvalidInput  = "Invalid input: %s"
)

type UI struct { //nolint:maligned
	Service uiService

	config       *ui_config.Config
	log          *log2.Log
	vm           *machine.Machine
	tele         tele_api.Teler
	out          io.Writer
	state        State
	lastActivity atomic_clock.Clock
	coins        *currency.NominalGroup // accepted since last collect
	lastReceipt  *Receipt
	ask          *ask

	XXX_testHook func(State)
}

// ask collects arguments of command entered without them, one line per prompt.
type ask struct {
	cmd     string
	prompts []string
	args    []string
}

func New(vm *machine.Machine, teler tele_api.Teler, config *ui_config.Config, log *log2.Log, out io.Writer) *UI {
	if teler == nil {
		teler = tele_api.Noop{}
	}
	return &UI{
		config: config,
		log:    log,
		vm:     vm,
		tele:   teler,
		out:    out,
		coins:  currency.DefaultDenominations(),
	}
}

func (self *UI) Init(ctx context.Context) error {
	self.setState(StateBoot)
	self.Service.Init(self.config)
	self.touch()

	self.say("Hello from %s's Vending Machine!", self.vm.Manufacturer())
	if self.config.MsgIntro != "" {
		self.say(self.config.MsgIntro)
	}
	self.log.Debugf("ui init products=%d service=%t", self.vm.Len(), self.config.Service.Enable)
	self.setState(StateFront)
	self.printMenu()
	return nil
}

// Loop runs console until exit command or end of input.
func (self *UI) Loop(ctx context.Context) {
	tag := self.config.Prompt
	if tag == "" {
		tag = "vender"
	}
	cli.MainLoop(tag, self.Execute, self.Complete, self.Done)
	if self.State() == StateService {
		self.onServiceEnd()
	}
	self.setState(StateStop)
}

func (self *UI) Done() bool { return self.State() == StateStop }

// IdleTime is duration since last accepted command.
func (self *UI) IdleTime() time.Duration { return atomic_clock.Since(&self.lastActivity) }

func (self *UI) Execute(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if self.ask != nil {
		self.askNext(line)
		return
	}
	words := strings.Fields(line)
	self.exec(words[0], words[1:])
}

func (self *UI) exec(cmd string, args []string) {
	self.log.Debugf("ui exec cmd=%s args=%q", cmd, args)
	switch cmd {
	case "help", "?", "menu":
		self.printMenu()
	case "1", "insert":
		self.cmdInsert(args)
	case "2", "list":
		self.cmdList()
	case "3", "select":
		self.cmdSelect(args)
	case "4", "return":
		self.cmdReturn()
	case "5", "exit", "quit":
		self.cmdExit()
	case "status":
		self.cmdStatus()
	case "receipt":
		self.cmdReceipt()
	default:
		if self.config.Service.Enable && self.execService(cmd, args) {
			return
		}
		self.say(MsgInvalidChoice)
	}
}

func (self *UI) startAsk(cmd string, prompts ...string) {
	self.ask = &ask{cmd: cmd, prompts: prompts, args: make([]string, 0, len(prompts))}
	self.prompt(prompts[0])
}

func (self *UI) askNext(line string) {
	a := self.ask
	a.args = append(a.args, line)
	if len(a.args) < len(a.prompts) {
		self.prompt(a.prompts[len(a.args)])
		return
	}
	self.ask = nil
	self.exec(a.cmd, a.args)
}

func (self *UI) printMenu() {
	self.say("\nMenu:")
	self.say("1. Insert Coins")
	self.say("2. Display Products")
	self.say("3. Select a Product")
	self.say("4. Return Money")
	self.say("5. Exit")
	if self.config.Service.Enable {
		self.say("Service: service, add, update, report, collect, end")
	}
}

var frontSuggests = []prompt.Suggest{
	{Text: "insert", Description: "insert coin: insert <euros> <cents> or insert 0.50"},
	{Text: "list", Description: "display products"},
	{Text: "select", Description: "select product: select <number>"},
	{Text: "return", Description: "return money"},
	{Text: "status", Description: "machine status"},
	{Text: "receipt", Description: "last purchase receipt"},
	{Text: "help", Description: "show menu"},
	{Text: "exit", Description: "stop console"},
}

var serviceSuggests = []prompt.Suggest{
	{Text: "service", Description: "begin service session: service [password]"},
	{Text: "add", Description: "add product: add <price> <count> <name>"},
	{Text: "update", Description: "update product: update <index> <price|-> <count> <name>"},
	{Text: "report", Description: "send inventory telemetry"},
	{Text: "collect", Description: "empty coin box"},
	{Text: "end", Description: "end service session"},
}

func (self *UI) Complete(d prompt.Document) []prompt.Suggest {
	if strings.Contains(d.TextBeforeCursor(), " ") {
		return nil
	}
	suggests := frontSuggests
	if self.config.Service.Enable {
		suggests = append(append([]prompt.Suggest(nil), frontSuggests...), serviceSuggests...)
	}
	return cli.FilterFuzzy(suggests, d)
}

// touch resets idle time. Telemetry gets wall time, atomic_clock is monotonic.
func (self *UI) touch() {
	self.lastActivity.SetNow()
	now := time.Now().UnixNano()
	self.tele.StatModify(func(s *tele_api.Stat) { s.LastActivity = now })
}

// reportError logs err and sends it to telemetry once.
// log.Error is not used here, it may be wired to tele.Error too.
func (self *UI) reportError(err error) {
	self.log.Logf(log2.LError, "error: %v", err)
	self.tele.Error(err)
}

func (self *UI) say(format string, args ...interface{}) {
	if len(args) == 0 {
		_, _ = io.WriteString(self.out, format+"\n")
		return
	}
	_, _ = fmt.Fprintf(self.out, format+"\n", args...)
}

func (self *UI) prompt(s string) { _, _ = io.WriteString(self.out, s) }
