package ui

import (
	"encoding/base64"
	"hash/fnv"
	"math"
	"strconv"
	"strings"

	"github.com/Arnispl/VendingMachine/currency"
	"github.com/Arnispl/VendingMachine/internal/machine"
	ui_config "github.com/Arnispl/VendingMachine/internal/ui/config"
	"github.com/Arnispl/VendingMachine/log2"
	tele_api "github.com/Arnispl/VendingMachine/tele"
	"github.com/juju/errors"
)

const (
	msgServiceBegin    = "Service mode."
	msgServiceEnd      = "Service mode ended."
	msgServiceRequired = "Service mode required."
	msgServiceDenied   = "Access denied."
	msgReportQueued    = "Report queued."
	msgPriceKeep       = "-"
	msgCollected       = "Collected %s."
)

type uiService struct { //nolint:maligned
	// config
	auth       bool
	passwords  []string
	SecretSalt []byte

	// state
	askReport bool
}

func (self *uiService) Init(config *ui_config.Config) {
	self.auth = config.Service.Auth.Enable
	self.passwords = config.Service.Auth.Passwords
	self.SecretSalt = []byte(config.Service.Auth.SecretSalt)
	self.askReport = false
}

// execService returns false for unknown command.
func (self *UI) execService(cmd string, args []string) bool {
	switch cmd {
	case "service":
		self.cmdServiceBegin(args)
	case "end":
		if self.State() == StateService {
			self.onServiceEnd()
			self.say(msgServiceEnd)
		}
	case "add":
		if self.serviceAllowed() {
			self.cmdAdd(args)
		}
	case "update":
		if self.serviceAllowed() {
			self.cmdUpdate(args)
		}
	case "report":
		if self.serviceAllowed() {
			self.cmdReport()
		}
	case "collect":
		if self.serviceAllowed() {
			self.cmdCollect()
		}
	default:
		return false
	}
	return true
}

// Without auth, catalog commands work in front mode too.
func (self *UI) serviceAllowed() bool {
	if !self.Service.auth || self.State() == StateService {
		return true
	}
	self.say(msgServiceRequired)
	return false
}

func (self *UI) cmdServiceBegin(args []string) {
	if self.State() == StateService {
		self.say(msgServiceBegin)
		return
	}
	if self.Service.auth {
		if len(args) != 1 {
			self.say(msgServiceDenied)
			return
		}
		inputHash := VisualHash([]byte(args[0]), self.Service.SecretSalt)
		ok := false
		for i, p := range self.Service.passwords {
			if inputHash == p {
				self.log.Infof("service auth ok i=%d hash=%s", i, inputHash)
				ok = true
				break
			}
		}
		if !ok {
			self.log.Infof("service auth fail hash=%s", inputHash)
			self.say(msgServiceDenied)
			return
		}
	}
	self.Service.askReport = false
	self.setState(StateService)
	self.say(msgServiceBegin)
}

func (self *UI) onServiceEnd() {
	if self.Service.askReport && self.config.Service.ReportOnEnd {
		self.Service.askReport = false
		self.report()
	}
	self.setState(StateFront)
}

// add <price> <count> <name...>
func (self *UI) cmdAdd(args []string) {
	if len(args) < 3 {
		self.say("Usage: add <price> <count> <name>")
		return
	}
	price, err := currency.ParseMoney(args[0])
	if err != nil {
		self.say(MsgInvalidInput, args[0])
		return
	}
	count, err := strconv.Atoi(args[1])
	if err != nil {
		self.say(MsgInvalidInput, args[1])
		return
	}
	name := strings.Join(args[2:], " ")
	if _, err := self.vm.AddProduct(name, price, count); err != nil {
		self.log.Debugf("ui add err=%v", err)
		self.sayError(err)
		return
	}
	self.Service.askReport = true
	self.log.Infof("service add product=%s price=%s count=%d", name, price.String(), count)
	self.say("Product %s added.", name)
}

// update <index> <price|-> <count> <name...>
// index is 0-based catalog index, not display position.
func (self *UI) cmdUpdate(args []string) {
	if len(args) < 4 {
		self.say("Usage: update <index> <price|-> <count> <name>")
		return
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		self.say(MsgInvalidInput, args[0])
		return
	}
	price := machine.KeepPrice()
	if args[1] != msgPriceKeep {
		m, err := currency.ParseMoney(args[1])
		if err != nil {
			self.say(MsgInvalidInput, args[1])
			return
		}
		price = machine.NewPrice(m)
	}
	count, err := strconv.Atoi(args[2])
	if err != nil {
		self.say(MsgInvalidInput, args[2])
		return
	}
	name := strings.Join(args[3:], " ")
	if _, err := self.vm.UpdateProduct(index, name, price, count); err != nil {
		self.log.Debugf("ui update err=%v", err)
		self.sayError(err)
		return
	}
	self.Service.askReport = true
	self.log.Infof("service update index=%d product=%s price=%s count=%d", index, name, price.String(), count)
	self.say("Product %d updated.", index)
}

func (self *UI) cmdReport() {
	if self.report() {
		self.Service.askReport = false
		self.say(msgReportQueued)
	}
}

func (self *UI) report() bool {
	if err := self.tele.Report(Inventory(self.vm), self.State() == StateService); err != nil {
		err = errors.Annotate(err, "service report")
		self.log.Logf(log2.LError, "error: %v", err)
		self.say(errors.Cause(err).Error())
		return false
	}
	return true
}

// Inventory is telemetry snapshot of catalog and balance.
func Inventory(vm *machine.Machine) *tele_api.Telemetry_Inventory {
	products := vm.Products()
	inv := &tele_api.Telemetry_Inventory{
		Products: make([]*tele_api.Telemetry_Product, len(products)),
		Balance:  teleAmount(vm.Balance()),
	}
	for i, p := range products {
		inv.Products[i] = &tele_api.Telemetry_Product{
			Name:      p.Name,
			Price:     teleAmount(p.Price),
			Available: teleCount(p.Available),
		}
	}
	return inv
}

// cmdCollect empties coin box tally.
func (self *UI) cmdCollect() {
	total := self.coins.Total()
	self.log.Infof("ui collect coins=%s", self.coins.String())
	self.coins.Clear()
	self.say(msgCollected, total.Money().Format())
}

// teleAmount clamps money to telemetry field range.
func teleAmount(m currency.Money) uint32 {
	if !m.InRange() {
		return math.MaxUint32
	}
	a := m.Amount()
	switch {
	case a < 0:
		return 0
	case a > math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(a)
}

func teleCount(n int) int32 {
	switch {
	case n < math.MinInt32:
		return math.MinInt32
	case n > math.MaxInt32:
		return math.MaxInt32
	}
	return int32(n)
}

func VisualHash(input, salt []byte) string {
	h := fnv.New32()
	_, _ = h.Write(salt)
	_, _ = h.Write(input)
	_, _ = h.Write(salt)
	var buf [4]byte
	binary := h.Sum(buf[:0])
	b64 := base64.RawStdEncoding.EncodeToString(binary)
	return strings.ToLower(b64)
}
