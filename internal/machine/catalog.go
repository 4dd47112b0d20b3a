package machine

import (
	"github.com/Arnispl/VendingMachine/currency"
	"github.com/juju/errors"
)

// PriceChange is optional new price for UpdateProduct.
type PriceChange struct {
	value currency.Money
	set   bool
}

func KeepPrice() PriceChange                { return PriceChange{} }
func NewPrice(m currency.Money) PriceChange { return PriceChange{value: m, set: true} }

func (pc PriceChange) Get() (currency.Money, bool) { return pc.value, pc.set }

func (pc PriceChange) String() string {
	if !pc.set {
		return "(keep)"
	}
	return pc.value.String()
}

// AddProduct appends new product or, when name exists, adds count to it.
// Existing price stays authoritative.
func (self *Machine) AddProduct(name string, price currency.Money, count int) (bool, error) {
	if !validName(name) {
		return false, errors.Annotatef(ErrInvalidProductName, "name=%q", name)
	}
	if price.IsNegative() {
		return false, errors.Annotatef(ErrInvalidProductPrice, "price=%s", price.String())
	}
	if !price.InRange() {
		return false, errors.Annotatef(ErrInvalidProductPrice, "price=%s out of range", price.String())
	}
	if count < 0 {
		return false, errors.Annotatef(ErrInvalidProductCount, "count=%d", count)
	}

	self.mu.Lock()
	defer self.mu.Unlock()
	for i := range self.products {
		if self.products[i].Name == name {
			self.products[i].Available += count
			return true, nil
		}
	}
	self.products = append(self.products, Product{Name: name, Price: price, Available: count})
	return true, nil
}

// UpdateProduct replaces entry at 0-based index.
// Name and count are always overwritten. New price is applied only when it is
// one of accepted coin values, otherwise stored price stays.
func (self *Machine) UpdateProduct(index int, name string, price PriceChange, count int) (bool, error) {
	self.mu.Lock()
	defer self.mu.Unlock()

	if index < 0 || index >= len(self.products) {
		return false, errors.Annotatef(ErrInvalidProduct, "index=%d catalog=%d", index, len(self.products))
	}
	if !validName(name) {
		return false, errors.Annotatef(ErrInvalidProductName, "name=%q", name)
	}
	newPrice, hasPrice := price.Get()
	if hasPrice && (newPrice.IsNegative() || !newPrice.InRange()) {
		return false, errors.Annotatef(ErrInvalidProductPrice, "price=%s", newPrice.String())
	}
	if count < 0 {
		return false, errors.Annotatef(ErrInvalidProductCount, "count=%d", count)
	}

	p := self.products[index]
	// name may duplicate another entry, AddProduct then merges into the first one
	p.Name = name
	if hasPrice && self.IsValidMoney(newPrice) {
		p.Price = newPrice
	}
	p.Available = count
	self.products[index] = p
	return true, nil
}
