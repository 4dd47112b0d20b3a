package ui

import (
	"strconv"
	"time"

	"github.com/Arnispl/VendingMachine/currency"
	"github.com/Arnispl/VendingMachine/internal/machine"
	tele_api "github.com/Arnispl/VendingMachine/tele"
	"github.com/google/uuid"
	"github.com/juju/errors"
)

// insert <euros> <cents> | insert <amount>
func (self *UI) cmdInsert(args []string) {
	var coin currency.Money
	switch len(args) {
	case 0:
		self.startAsk("insert", "Enter the amount to insert (Euros): ", "Enter the amount to insert (Cents): ")
		return
	case 1:
		m, err := currency.ParseMoney(args[0])
		if err != nil {
			self.say(MsgInvalidInput, args[0])
			return
		}
		coin = m
	case 2:
		major, err1 := strconv.Atoi(args[0])
		minor, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			self.say(MsgInvalidInput, args[0]+" "+args[1])
			return
		}
		coin = currency.NewMoney(major, minor)
	default:
		self.say(MsgInvalidChoice)
		return
	}

	if _, err := self.vm.InsertCoin(coin); err != nil {
		self.log.Debugf("ui insert coin=%s err=%v", coin.String(), err)
		self.tele.StatModify(func(s *tele_api.Stat) { s.CoinRejected++ })
		self.sayError(err)
		return
	}
	self.touch()
	n, _ := coin.Nominal(self.coins)
	if err := self.coins.Add(n, 1); err != nil {
		self.reportError(errors.Annotate(err, "ui coin tally"))
	}
	self.tele.StatModify(func(s *tele_api.Stat) { s.CoinAccepted[uint32(n)]++ })
	self.say("Inserted %s.", coin.Format())
	self.say("Current Balance: %s.", self.vm.Balance().Format())
}

func (self *UI) cmdList() {
	products := self.vm.Products()
	if len(products) == 0 {
		self.say("No products.")
		return
	}
	self.say("Available Products:")
	for i, p := range products {
		self.say("%d. %s: %s (%d available)", i+1, p.Name, p.Price.Format(), p.Available)
	}
}

// select <number>
func (self *UI) cmdSelect(args []string) {
	if len(args) == 0 {
		self.startAsk("select", "Enter the product number: ")
		return
	}
	position, err := strconv.Atoi(args[0])
	if err != nil {
		self.say(MsgInvalidNumber)
		return
	}

	purchase, err := self.vm.Select(position)
	switch machine.Kind(err) {
	case machine.KindNone:
	case machine.KindInvalidProduct:
		self.say(MsgInvalidNumber)
		return
	case machine.KindUnavailable:
		self.log.Debugf("ui select err=%v", err)
		self.say(MsgUnavailable)
		return
	default:
		self.reportError(errors.Annotate(err, "ui select"))
		self.say(MsgUnavailable)
		return
	}
	self.touch()

	name := purchase.Product.Name
	self.say("Selected %s for %s.", name, purchase.Price.Format())
	self.say("Dispensing %s...", name)
	self.say("Enjoy your %s!", name)
	self.say("Remaining Balance: %s.", purchase.Change.Format())

	id := uuid.New().String()
	self.lastReceipt = NewReceipt(id, self.vm.Manufacturer(), purchase)
	self.tele.Transaction(&tele_api.Telemetry_Transaction{
		Id:       id,
		Position: int32(purchase.Position),
		Product:  name,
		Price:    teleAmount(purchase.Price),
		Change:   teleAmount(purchase.Change),
	})
}

func (self *UI) cmdReturn() {
	m := self.vm.ReturnMoney()
	if !m.IsZero() {
		self.touch()
	}
	self.say("Returned %s.", m.Format())
}

func (self *UI) cmdExit() {
	if self.State() == StateService {
		self.onServiceEnd()
	}
	self.setState(StateStop)
}

func (self *UI) cmdStatus() {
	self.say("Manufacturer: %s", self.vm.Manufacturer())
	self.say("Balance: %s", self.vm.Balance().Format())
	self.say("Products available: %t", self.vm.HasProducts())
	self.say("Idle: %s", self.IdleTime().Truncate(time.Second).String())
	self.say("Mode: %s", self.State().String())
	self.say("Coins: %s", self.coins.String())
}

func (self *UI) cmdReceipt() {
	if self.lastReceipt == nil {
		self.say("No purchase yet.")
		return
	}
	self.prompt(self.lastReceipt.String())
	qr, err := self.lastReceipt.QR()
	if err != nil {
		self.log.Errorf("ui receipt QR err=%v", err)
		return
	}
	self.prompt(qr)
}

// sayError prints user visible message of machine error kind.
func (self *UI) sayError(err error) {
	if machine.Kind(err) == machine.KindUnknown {
		err = errors.Annotate(err, "ui")
		self.reportError(err)
	}
	self.say(errors.Cause(err).Error())
}
