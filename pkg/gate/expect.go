package gate

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"
)

// Expectation is one row of an ordered comparison table. Err is the kind
// returned when Found differs from Expected.
type Expectation struct {
	Label    string
	Expected ed25519.PublicKey
	Found    ed25519.PublicKey
	Err      error
}

// CheckExpectations evaluates rows in order and returns a *MismatchError for
// the first row that does not match. Later rows are not evaluated.
func CheckExpectations(log *logrus.Entry, rows ...Expectation) error {
	for _, row := range rows {
		if bytes.Equal(row.Expected, row.Found) {
			continue
		}

		log.WithFields(logrus.Fields{
			"field":    row.Label,
			"expected": base58.Encode(row.Expected),
			"found":    base58.Encode(row.Found),
		}).Warnf("%s is different from what is expected", row.Label)

		return &MismatchError{
			Label:    row.Label,
			Expected: row.Expected,
			Found:    row.Found,
			Err:      row.Err,
		}
	}
	return nil
}
