/*
Package keeper submits the fee splitter update on a schedule.

Every run reads the node state, skips when there is nothing to split or the
signer may not call the update, and otherwise broadcasts a signed
splitter.UpdateMsg. The caller earns the keeper reward.
*/
package keeper

import (
	"context"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/client"
	weftd "github.com/contribute-dao/weft/cmd/weftd/app"
	"github.com/contribute-dao/weft/crypto"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/x/cash"
	"github.com/contribute-dao/weft/x/sigs"
	"github.com/contribute-dao/weft/x/splitter"
	"github.com/robfig/cron/v3"
	"github.com/tendermint/tendermint/libs/log"
)

// ErrNothingToDo is returned by RunOnce when no transaction was sent.
var ErrNothingToDo = errors.Register(90, "nothing to do")

// Keeper signs and submits splitter updates.
type Keeper struct {
	client   *client.Client
	signer   crypto.Signer
	chainID  string
	splitter *splitter.Controller
	logger   log.Logger
}

// New returns a keeper signing with the given key for the given chain.
func New(c *client.Client, signer crypto.Signer, chainID string, logger log.Logger) *Keeper {
	return &Keeper{
		client:   c,
		signer:   signer,
		chainID:  chainID,
		splitter: splitter.NewController(cash.NewController()),
		logger:   logger,
	}
}

// Address is the account that calls the update and receives the reward.
func (k *Keeper) Address() weft.Address {
	return k.signer.PublicKey().Address()
}

// RunOnce submits one update. It returns ErrNothingToDo when there are no
// collected fees, and ErrBelowMinimumCaller when the keeper account does not
// hold enough of the governed token.
func (k *Keeper) RunOnce(ctx context.Context) (client.TransactionID, error) {
	db := k.client.Store()

	pending, err := k.splitter.Pending(db)
	if err != nil {
		return nil, errors.Wrap(err, "pending fees")
	}
	if pending.IsZero() {
		return nil, errors.Wrap(ErrNothingToDo, "no fees collected")
	}
	if err := k.splitter.CanUpdate(db, k.Address()); err != nil {
		return nil, err
	}
	reward, err := k.splitter.KeeperReward(db)
	if err != nil {
		return nil, errors.Wrap(err, "keeper reward")
	}

	nonce, err := sigs.NextNonce(db, k.Address())
	if err != nil {
		return nil, errors.Wrap(err, "nonce")
	}
	tx := weftd.NewTx(&splitter.UpdateMsg{})
	sig, err := sigs.SignTx(k.signer, tx, k.chainID, nonce)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	tx.Signatures = append(tx.Signatures, sig)

	id, err := k.client.SubmitTx(ctx, tx)
	if err != nil {
		return nil, errors.Wrap(err, "submit update")
	}
	k.logger.Info("update submitted", "tx", id, "pending", pending.String(), "reward", reward.String(), "nonce", nonce)
	return id, nil
}

func (k *Keeper) run(ctx context.Context) {
	switch _, err := k.RunOnce(ctx); {
	case err == nil:
	case ErrNothingToDo.Is(err), splitter.ErrBelowMinimumCaller.Is(err):
		k.logger.Info("update skipped", "reason", err.Error())
	default:
		k.logger.Error("update failed", "err", err)
	}
}

// Run calls RunOnce on the schedule until the context is cancelled.
func (k *Keeper) Run(ctx context.Context, schedule string, runOnStart bool) error {
	c := cron.New(cron.WithParser(cronParser))
	if _, err := c.AddFunc(schedule, func() { k.run(ctx) }); err != nil {
		return errors.Wrap(errors.ErrInput, "schedule: "+err.Error())
	}
	if runOnStart {
		k.run(ctx)
	}
	c.Start()
	k.logger.Info("keeper started", "address", k.Address(), "schedule", schedule)

	<-ctx.Done()
	// Wait for a running update to finish.
	<-c.Stop().Done()
	k.logger.Info("keeper stopped")
	return nil
}
