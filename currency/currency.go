package currency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/juju/errors"
)

// Amount is integer counting lowest currency unit, e.g. 1.20 = 120
// Signed so that invalid operator input can be represented and rejected.
type Amount int64

func (self Amount) Format100I() string {
	sign := ""
	if self < 0 {
		sign = "-"
		self = -self
	}
	return fmt.Sprintf("%s%d.%02d", sign, self/100, self%100)
}

// Money returns normalized major/minor form.
func (self Amount) Money() Money { return FromAmount(self) }

// Nominal is value of one coin
type Nominal Amount

var (
	ErrNominalInvalid = errors.New("Nominal is not valid for this group")
)

// Coins accepted by the machine.
var defaultNominals = []Nominal{100, 200, 50, 20, 10}

func DefaultDenominations() *NominalGroup {
	ng := &NominalGroup{}
	ng.SetValid(defaultNominals)
	return ng
}

// NominalGroup operates money comprised of multiple nominals, like coins.
// coin0.10: 3
// coin0.50: 1
// coin1.00: 4
// total   : 4.80
type NominalGroup struct {
	values map[Nominal]uint
}

func (self *NominalGroup) SetValid(valid []Nominal) {
	self.values = make(map[Nominal]uint, len(valid))
	for _, n := range valid {
		if n > 0 {
			self.values[n] = 0
		}
	}
}

// Valid lists nominals in descending order.
func (self *NominalGroup) Valid() []Nominal {
	ns := make([]Nominal, 0, len(self.values))
	for n := range self.values {
		ns = append(ns, n)
	}
	sort.Slice(ns, func(i, j int) bool { return ns[i] > ns[j] })
	return ns
}

func (self *NominalGroup) Contains(n Nominal) bool {
	_, ok := self.values[n]
	return ok
}

func (self *NominalGroup) Add(n Nominal, count uint) error {
	if _, ok := self.values[n]; !ok {
		return errors.Annotatef(ErrNominalInvalid, "Add(n=%s, c=%d)", Amount(n).Format100I(), count)
	}
	self.values[n] += count
	return nil
}

func (self *NominalGroup) Clear() {
	for n := range self.values {
		self.values[n] = 0
	}
}

func (self *NominalGroup) Total() Amount {
	sum := Amount(0)
	for nominal, count := range self.values {
		sum += Amount(nominal) * Amount(count)
	}
	return sum
}

func (self *NominalGroup) String() string {
	parts := make([]string, 0, len(self.values)+1)
	sum := Amount(0)
	for nominal, count := range self.values {
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", Amount(nominal).Format100I(), count))
			sum += Amount(nominal) * Amount(count)
		}
	}
	sort.Strings(parts)
	parts = append(parts, fmt.Sprintf("total:%s", sum.Format100I()))
	return strings.Join(parts, ",")
}
