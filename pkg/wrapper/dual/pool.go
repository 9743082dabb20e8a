package dual

import (
	"bytes"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/stwrap/gatekeeper/pkg/gate"
	"github.com/stwrap/gatekeeper/pkg/solana/tokenswap"
)

// CheckSwapPool cross-checks the pool referenced by a reward sale against the
// record and the rest of the supplied accounts. Checks run in a fixed order
// and stop at the first failure:
//
//  1. the pool is the one stored in the record
//  2. the pool state unpacks
//  3. the secondary token account is this instance's secondary reserve
//  4. the pool's primary token account, secondary token account, pool mint,
//     primary mint, secondary mint and fee account match the supplied ones
//  5. the rewards destination is the one stored in the record
func (v *Validator) CheckSwapPool(record *Record, accounts *SellRewardsAccounts) (*tokenswap.SwapState, error) {
	if err := v.checkPresent("CheckSwapPool", accounts); err != nil {
		return nil, err
	}

	log := v.log.WithFields(logrus.Fields{
		"method": "CheckSwapPool",
		"pool":   base58.Encode(accounts.Pool.Address),
	})

	if !bytes.Equal(record.Pool, accounts.Pool.Address) {
		log.WithFields(logrus.Fields{
			"expected": base58.Encode(record.Pool),
			"found":    base58.Encode(accounts.Pool.Address),
		}).Warn("invalid swap pool instance")
		return nil, gate.ErrWrongExternalPoolInstance
	}

	var pool tokenswap.SwapState
	if err := pool.UnmarshalAccount(accounts.Pool.Data); err != nil {
		log.WithError(err).WithField("data_len", len(accounts.Pool.Data)).Warn("failure unpacking swap pool state")
		return nil, errors.Wrap(gate.ErrPoolUnpack, err.Error())
	}

	if err := v.CheckSecondaryReserve(record, accounts.Instance.Address, accounts.SecondaryToken.Address); err != nil {
		return nil, err
	}

	err := gate.CheckExpectations(
		log,
		gate.Expectation{
			Label:    "swap pool primary token account",
			Expected: pool.TokenA,
			Found:    accounts.PrimaryToken.Address,
			Err:      gate.ErrWrongExternalPoolParameters,
		},
		gate.Expectation{
			Label:    "swap pool secondary token account",
			Expected: pool.TokenB,
			Found:    accounts.SecondaryToken.Address,
			Err:      gate.ErrWrongExternalPoolParameters,
		},
		gate.Expectation{
			Label:    "swap pool mint",
			Expected: pool.PoolMint,
			Found:    accounts.PoolMint.Address,
			Err:      gate.ErrWrongExternalPoolParameters,
		},
		gate.Expectation{
			Label:    "swap pool primary mint",
			Expected: pool.TokenAMint,
			Found:    accounts.PrimaryMint.Address,
			Err:      gate.ErrWrongExternalPoolParameters,
		},
		gate.Expectation{
			Label:    "swap pool secondary mint",
			Expected: pool.TokenBMint,
			Found:    accounts.SecondaryMint.Address,
			Err:      gate.ErrWrongExternalPoolParameters,
		},
		gate.Expectation{
			Label:    "swap pool fee account",
			Expected: pool.PoolFeeAccount,
			Found:    accounts.PoolFeeAccount.Address,
			Err:      gate.ErrWrongExternalPoolParameters,
		},
		gate.Expectation{
			Label:    "rewards destination",
			Expected: record.RewardsDestination,
			Found:    accounts.RewardsDestination.Address,
			Err:      gate.ErrInvalidRewardsDestination,
		},
	)
	if err != nil {
		return nil, err
	}

	return &pool, nil
}
