package currency

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/juju/errors"
)

const minorPerMajor = 100

// MaxMajor bounds both components of money that may take part in arithmetic.
// Sum of a few such values still fits Amount.
const MaxMajor = math.MaxInt64 / minorPerMajor / 4

var ErrMoneyFormat = errors.New("invalid money format")

// Money is exact major/minor pair, e.g. euros and cents.
// Values produced by arithmetic keep Minor in [0,99].
// Operator input may carry anything, including negative components.
type Money struct {
	Major int
	Minor int
}

func NewMoney(major, minor int) Money { return Money{Major: major, Minor: minor} }

func FromAmount(a Amount) Money {
	return Money{
		Major: int(a / minorPerMajor),
		Minor: int(a % minorPerMajor),
	}
}

func (m Money) Amount() Amount {
	return Amount(m.Major)*minorPerMajor + Amount(m.Minor)
}

func (m Money) Add(other Money) Money { return FromAmount(m.Amount() + other.Amount()) }
func (m Money) IsZero() bool          { return m.Major == 0 && m.Minor == 0 }
func (m Money) IsNegative() bool      { return m.Major < 0 || m.Minor < 0 }

// InRange reports whether Amount() is exact for m.
func (m Money) InRange() bool {
	return int64(m.Major) >= -MaxMajor && int64(m.Major) <= MaxMajor &&
		int64(m.Minor) >= -MaxMajor && int64(m.Minor) <= MaxMajor
}

// Equal compares components, so 0.100 is not 1.00
func (m Money) Equal(other Money) bool { return m.Major == other.Major && m.Minor == other.Minor }

// Nominal reports which coin m is, if any, in group.
// Only normalized values may match a coin.
func (m Money) Nominal(group *NominalGroup) (Nominal, bool) {
	if m.IsNegative() || m.Minor >= minorPerMajor || !m.InRange() {
		return 0, false
	}
	n := Nominal(m.Amount())
	return n, group.Contains(n)
}

func (m Money) String() string {
	if m.IsNegative() || m.Minor >= minorPerMajor {
		return fmt.Sprintf("%d.%d", m.Major, m.Minor)
	}
	return fmt.Sprintf("%d.%02d", m.Major, m.Minor)
}

// Format is the console wording.
func (m Money) Format() string {
	return fmt.Sprintf("%d Euros and %d Cents", m.Major, m.Minor)
}

// ParseMoney accepts "1", "1.4", "1.40", "0.05".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, errors.Annotatef(ErrMoneyFormat, "empty")
	}
	majorText, minorText := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		majorText, minorText = s[:i], s[i+1:]
		if len(minorText) == 0 || len(minorText) > 2 {
			return Money{}, errors.Annotatef(ErrMoneyFormat, "text=%q", s)
		}
		if len(minorText) == 1 {
			minorText += "0"
		}
	}
	major, err := strconv.Atoi(majorText)
	if err != nil {
		return Money{}, errors.Annotatef(ErrMoneyFormat, "text=%q", s)
	}
	minor := 0
	if minorText != "" {
		if minorText[0] == '-' || minorText[0] == '+' {
			return Money{}, errors.Annotatef(ErrMoneyFormat, "text=%q", s)
		}
		if minor, err = strconv.Atoi(minorText); err != nil {
			return Money{}, errors.Annotatef(ErrMoneyFormat, "text=%q", s)
		}
	}
	if strings.HasPrefix(majorText, "-") {
		minor = -minor
	}
	return Money{Major: major, Minor: minor}, nil
}
