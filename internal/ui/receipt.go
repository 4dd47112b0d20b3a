package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Arnispl/VendingMachine/internal/machine"
	"github.com/juju/errors"
	"github.com/skip2/go-qrcode"
)

type Receipt struct {
	Id           string
	Manufacturer string
	Time         time.Time
	Purchase     machine.Purchase
}

func NewReceipt(id, manufacturer string, p machine.Purchase) *Receipt {
	return &Receipt{Id: id, Manufacturer: manufacturer, Time: time.Now(), Purchase: p}
}

func (self *Receipt) String() string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "%s\n", self.Manufacturer)
	fmt.Fprintf(&b, "Receipt %s\n", self.Id)
	fmt.Fprintf(&b, "%s\n", self.Time.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%d. %s  %s\n", self.Purchase.Position, self.Purchase.Product.Name, self.Purchase.Price.String())
	fmt.Fprintf(&b, "Change  %s\n", self.Purchase.Change.String())
	return b.String()
}

// QRText is compact machine readable receipt.
func (self *Receipt) QRText() string {
	return fmt.Sprintf("tx=%s;p=%s;price=%s;change=%s",
		self.Id, self.Purchase.Product.Name, self.Purchase.Price.String(), self.Purchase.Change.String())
}

// QR renders receipt code for terminal, two chars per module.
func (self *Receipt) QR() (string, error) {
	qr, err := qrcode.New(self.QRText(), qrcode.Medium)
	if err != nil {
		return "", errors.Annotate(err, "QR")
	}
	bitmap := qr.Bitmap()
	b := strings.Builder{}
	b.Grow(len(bitmap) * (len(bitmap)*2*3 + 1))
	for _, row := range bitmap {
		for _, dark := range row {
			if dark {
				b.WriteString("██")
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteRune('\n')
	}
	return b.String(), nil
}
