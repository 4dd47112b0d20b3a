package machine

import (
	"github.com/juju/errors"
)

var (
	ErrInvalidMoney        = errors.New("Invalid money inserted.")
	ErrInvalidProductName  = errors.New("The product name is not valid")
	ErrInvalidProductPrice = errors.New("The price can not be negative")
	ErrInvalidProductCount = errors.New("The product count can not be negative")
	ErrInvalidProduct      = errors.New("The product is not existing")
	ErrUnavailable         = errors.New("Product not available or insufficient balance.")
)

type ErrorKind uint8

const (
	KindNone ErrorKind = iota
	KindInvalidMoney
	KindInvalidProductName
	KindInvalidProductPrice
	KindInvalidProductCount
	KindInvalidProduct
	KindUnavailable
	KindUnknown
)

var kindNames = [...]string{"None", "InvalidMoney", "InvalidProductName", "InvalidProductPrice", "InvalidProductCount", "InvalidProduct", "Unavailable", "Unknown"}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// Kind classifies errors returned by Machine methods.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	switch errors.Cause(err) {
	case ErrInvalidMoney:
		return KindInvalidMoney
	case ErrInvalidProductName:
		return KindInvalidProductName
	case ErrInvalidProductPrice:
		return KindInvalidProductPrice
	case ErrInvalidProductCount:
		return KindInvalidProductCount
	case ErrInvalidProduct:
		return KindInvalidProduct
	case ErrUnavailable:
		return KindUnavailable
	}
	return KindUnknown
}
