package gate

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/stwrap/gatekeeper/pkg/solana"
	"github.com/stwrap/gatekeeper/pkg/solana/token"
)

// CheckTokenAccount verifies that account is a token account owned by
// expectedProgram and holding expectedMint. label names the asset in
// diagnostics.
//
// Checks run in order and stop at the first failure: owner, layout, mint.
func CheckTokenAccount(log *logrus.Entry, label string, expectedProgram, expectedMint ed25519.PublicKey, account *solana.AccountInfo) (*token.Account, error) {
	log = log.WithFields(logrus.Fields{
		"asset":   label,
		"account": base58.Encode(account.Address),
	})

	if !account.IsOwnedBy(expectedProgram) {
		log.WithFields(logrus.Fields{
			"expected": base58.Encode(expectedProgram),
			"found":    base58.Encode(account.Owner),
		}).Warn("token account is not owned by the token program")
		return nil, ErrInvalidAccountOwner
	}

	var tokenAccount token.Account
	if !tokenAccount.Unmarshal(account.Data) {
		log.WithField("data_len", len(account.Data)).Warn("account does not hold a token account")
		return nil, ErrInvalidAccountFormat
	}

	if !bytes.Equal(tokenAccount.Mint, expectedMint) {
		log.WithFields(logrus.Fields{
			"expected": base58.Encode(expectedMint),
			"found":    base58.Encode(tokenAccount.Mint),
		}).Warnf("token account does not hold %s", label)
		return nil, ErrInvalidMint
	}

	return &tokenAccount, nil
}

// CheckMint verifies that account is the mint at expectedMint and is owned by
// tokenProgram.
func CheckMint(log *logrus.Entry, label string, tokenProgram, expectedMint ed25519.PublicKey, account *solana.AccountInfo) error {
	log = log.WithField("asset", label)

	if !account.IsOwnedBy(tokenProgram) {
		log.WithFields(logrus.Fields{
			"expected": base58.Encode(tokenProgram),
			"found":    base58.Encode(account.Owner),
		}).Warn("mint is not owned by the token program")
		return ErrInvalidAccountOwner
	}

	if !bytes.Equal(account.Address, expectedMint) {
		log.WithFields(logrus.Fields{
			"expected": base58.Encode(expectedMint),
			"found":    base58.Encode(account.Address),
		}).Warn("invalid mint account")
		return ErrInvalidMint
	}

	return nil
}
