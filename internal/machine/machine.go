// Package machine keeps balance and product catalog of one vending machine.
// Overview:
//   - customer inserts coins, balance accumulates
//   - customer selects product by display position, machine dispenses it
//     and keeps the change as new balance
//   - customer requests money back, balance is paid out as one lump sum
//   - service adds and updates catalog entries
//
// Every failed operation leaves balance and catalog unchanged.
package machine

import (
	"strings"
	"sync"

	"github.com/Arnispl/VendingMachine/currency"
	"github.com/juju/errors"
)

type Product struct {
	Name      string
	Price     currency.Money
	Available int
}

// Purchase is the result of successful Select.
type Purchase struct {
	Position int
	Product  Product // state after dispense
	Price    currency.Money
	Change   currency.Money
}

type Machine struct {
	manufacturer string
	nominals     *currency.NominalGroup

	mu       sync.Mutex
	balance  currency.Money
	products []Product
}

// New adopts copy of seed products as is, seed data is trusted.
func New(manufacturer string, products []Product) *Machine {
	ps := make([]Product, len(products))
	copy(ps, products)
	return &Machine{
		manufacturer: manufacturer,
		nominals:     currency.DefaultDenominations(),
		products:     ps,
	}
}

func (self *Machine) Manufacturer() string { return self.manufacturer }

func (self *Machine) Balance() currency.Money {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.balance
}

// Products returns catalog snapshot, safe to modify.
func (self *Machine) Products() []Product {
	self.mu.Lock()
	defer self.mu.Unlock()
	ps := make([]Product, len(self.products))
	copy(ps, self.products)
	return ps
}

func (self *Machine) Len() int {
	self.mu.Lock()
	defer self.mu.Unlock()
	return len(self.products)
}

func (self *Machine) HasProducts() bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	for _, p := range self.products {
		if p.Available > 0 {
			return true
		}
	}
	return false
}

// IsValidMoney reports whether m is exactly one of accepted coins.
// Components are compared as is, no arithmetic on operator input.
func (self *Machine) IsValidMoney(m currency.Money) bool {
	for _, d := range self.Denominations() {
		if m.Equal(d) {
			return true
		}
	}
	return false
}

// Denominations lists accepted coins, highest first.
func (self *Machine) Denominations() []currency.Money {
	ns := self.nominals.Valid()
	ms := make([]currency.Money, len(ns))
	for i, n := range ns {
		ms[i] = currency.Amount(n).Money()
	}
	return ms
}

// InsertCoin never returns change, result is always zero.
func (self *Machine) InsertCoin(coin currency.Money) (currency.Money, error) {
	if !self.IsValidMoney(coin) {
		return currency.Money{}, errors.Annotatef(ErrInvalidMoney, "coin=%s", coin.String())
	}
	self.mu.Lock()
	self.balance = self.balance.Add(coin)
	self.mu.Unlock()
	return currency.Money{}, nil
}

func (self *Machine) ReturnMoney() currency.Money {
	self.mu.Lock()
	defer self.mu.Unlock()
	m := self.balance
	self.balance = currency.Money{}
	return m
}

// Product looks up catalog entry by 1-based display position.
func (self *Machine) Product(position int) (Product, error) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if err := self.locked_checkPosition(position); err != nil {
		return Product{}, err
	}
	return self.products[position-1], nil
}

// Select dispenses product at 1-based display position.
// Balance becomes the change.
func (self *Machine) Select(position int) (Purchase, error) {
	self.mu.Lock()
	defer self.mu.Unlock()

	if err := self.locked_checkPosition(position); err != nil {
		return Purchase{}, err
	}
	p := &self.products[position-1]
	if !p.Price.InRange() {
		return Purchase{}, errors.Annotatef(ErrUnavailable, "product=%s price=%s out of range", p.Name, p.Price.String())
	}
	price := p.Price.Amount()
	credit := self.balance.Amount()
	if p.Available <= 0 || credit < price {
		return Purchase{}, errors.Annotatef(ErrUnavailable, "product=%s available=%d price=%s balance=%s",
			p.Name, p.Available, p.Price.String(), self.balance.String())
	}

	p.Available--
	change := currency.FromAmount(credit - price)
	self.balance = change
	return Purchase{
		Position: position,
		Product:  *p,
		Price:    p.Price,
		Change:   change,
	}, nil
}

func (self *Machine) locked_checkPosition(position int) error {
	if position < 1 || position > len(self.products) {
		return errors.Annotatef(ErrInvalidProduct, "position=%d catalog=%d", position, len(self.products))
	}
	return nil
}

func validName(name string) bool { return strings.TrimSpace(name) != "" }
