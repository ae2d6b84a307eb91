package monitor

import (
	"github.com/ezrec/sixtyfive/translate"
)

var f = translate.From

// ErrAddress indicates an unparseable address.
type ErrAddress string

func (err ErrAddress) Error() string {
	return f("'%v' is not a hex address", string(err))
}

// ErrCount indicates an unparseable count.
type ErrCount string

func (err ErrCount) Error() string {
	return f("'%v' is not a count", string(err))
}
