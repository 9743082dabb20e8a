package gate

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/stwrap/gatekeeper/pkg/solana"
)

// Reference names one account slot of an instruction's account bundle.
type Reference struct {
	Name    string
	Account *solana.AccountInfo
}

// CheckPresent returns ErrMissingAccount for the first reference that was not
// supplied. It runs before any other check reads the bundle.
func CheckPresent(log *logrus.Entry, refs ...Reference) error {
	for _, ref := range refs {
		if ref.Account != nil {
			continue
		}

		log.WithField("field", ref.Name).Warnf("%s was not supplied", ref.Name)
		return errors.Wrap(ErrMissingAccount, ref.Name)
	}
	return nil
}
