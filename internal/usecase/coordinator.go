package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jakeadel/bank-demo/internal/domain"
	"github.com/jakeadel/bank-demo/internal/infrastructure/metrics"
	"github.com/jakeadel/bank-demo/internal/money"
)

// Coordinator runs operator mutations against the backend and merges the
// results into the local mirror. Each operation issues exactly one backend
// call; a failed call is appended to the error log and leaves local state
// untouched. Nothing is retried.
type Coordinator struct {
	backend    BackendClient
	store      LedgerStore
	reconciler *BalanceReconciler
	bus        Invalidator
	errs       *ErrorLog
	logger     zerolog.Logger
	metrics    *metrics.Metrics
}

// NewCoordinator creates a Coordinator. Metrics may be nil.
func NewCoordinator(
	backend BackendClient,
	store LedgerStore,
	reconciler *BalanceReconciler,
	bus Invalidator,
	errs *ErrorLog,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Coordinator {
	return &Coordinator{
		backend:    backend,
		store:      store,
		reconciler: reconciler,
		bus:        bus,
		errs:       errs,
		logger:     logger,
		metrics:    m,
	}
}

// LoadUsers replaces the mirror with the backend's current user list.
func (c *Coordinator) LoadUsers(ctx context.Context) error {
	users, err := c.backend.ListUsers(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load users")
		return err
	}

	c.store.Replace(users)
	c.logger.Info().Int("users", len(users)).Msg("loaded users from backend")
	return nil
}

// CreateUser registers a user and inserts it into the mirror with an empty
// account list.
func (c *Coordinator) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := c.backend.CreateUser(ctx, username)
	if err != nil {
		c.fail("create_user", "Error adding user", err)
		return nil, err
	}

	c.store.AddUser(user)
	c.applied("create_user")
	c.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user created")
	return user, nil
}

// CreateAccount converts the operator-entered balance to minor units, opens
// the account, and merges it under the owning user. An account whose owner
// is not in the mirror is dropped silently; the backend has already rejected
// genuinely unknown users.
func (c *Coordinator) CreateAccount(ctx context.Context, userID int64, balanceDecimal, name string) (*domain.Account, error) {
	balance, err := money.ToMinorUnits(balanceDecimal)
	if err != nil {
		c.fail("create_account", "Error adding account", err)
		return nil, err
	}

	account, err := c.backend.CreateAccount(ctx, userID, balance, name)
	if err != nil {
		c.fail("create_account", "Error adding account", err)
		return nil, err
	}

	if !c.store.AddAccount(userID, *account) {
		c.logger.Debug().
			Err(domain.ErrUserNotFound).
			Int64("user_id", userID).
			Int64("account_id", account.ID).
			Msg("owner not in mirror, account dropped")
	}
	c.applied("create_account")
	c.logger.Info().Int64("account_id", account.ID).Int64("user_id", userID).Msg("account created")
	return account, nil
}

// TransferFunds converts the amount, runs the transfer, refreshes both
// endpoint balances, and invalidates open history views on both accounts.
// The invalidation is published regardless of how reconciliation went: the
// transfer itself already succeeded server-side.
func (c *Coordinator) TransferFunds(ctx context.Context, senderID, receiverID int64, amountDecimal string) error {
	amount, err := money.ToMinorUnits(amountDecimal)
	if err != nil {
		c.fail("transfer_funds", "Error transferring funds", err)
		return err
	}

	if err := c.backend.TransferFunds(ctx, senderID, receiverID, amount); err != nil {
		c.fail("transfer_funds", "Error transferring funds", err)
		return err
	}

	c.reconciler.Reconcile(ctx, senderID, receiverID)
	c.bus.Publish(senderID, receiverID)

	c.applied("transfer_funds")
	c.logger.Info().
		Int64("sender_id", senderID).
		Int64("receiver_id", receiverID).
		Int64("amount", amount).
		Msg("transfer completed")
	return nil
}

// Users returns the current mirror snapshot.
func (c *Coordinator) Users() []*domain.User {
	return c.store.Users()
}

func (c *Coordinator) fail(operation, message string, err error) {
	c.errs.Append(message, err)
	c.logger.Warn().Err(err).Str("operation", operation).Msg(message)
	if c.metrics != nil {
		c.metrics.MutationFailures.WithLabelValues(operation).Inc()
	}
}

func (c *Coordinator) applied(operation string) {
	if c.metrics != nil {
		c.metrics.MutationsApplied.WithLabelValues(operation).Inc()
	}
}
