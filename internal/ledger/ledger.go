// Package ledger owns the user and group directory and every balance sheet,
// and runs expense creation as a single all-or-nothing step.
//
// A Ledger starts empty (New) or rebuilt from a journal (Open). All mutations
// are serialized by one mutex: an expense is validated, journaled and applied
// to every affected sheet inside the same critical section, so a partially
// applied expense is never observable.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitbook/internal/calculator"
	"github.com/mmynk/splitbook/internal/metrics"
	"github.com/mmynk/splitbook/internal/models"
	"github.com/mmynk/splitbook/internal/storage"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrGroupNotFound = errors.New("group not found")
	ErrDuplicateUser = errors.New("user already exists")
	ErrEmptyName     = errors.New("name must not be empty")
)

// Option configures a Ledger.
type Option func(*Ledger)

// WithJournal records every accepted mutation in j.
func WithJournal(j storage.Journal) Option {
	return func(l *Ledger) { l.journal = j }
}

// WithMetrics records expense outcomes and directory sizes in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Ledger) { l.metrics = m }
}

// WithClock overrides the time source used for CreatedAt fields.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// record is one user of the arena together with the sheet it owns.
type record struct {
	user  models.User
	sheet *models.BalanceSheet
}

// Ledger is the application state: users, groups, expenses and balance sheets.
type Ledger struct {
	mu sync.Mutex

	users     map[string]*record
	userOrder []string

	groups     map[string]*models.Group
	groupOrder []string

	expenses []models.Expense

	journal storage.Journal
	metrics *metrics.Metrics
	now     func() time.Time
}

// New returns an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		users:  make(map[string]*record),
		groups: make(map[string]*models.Group),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open returns a ledger rebuilt by replaying journal, which also receives
// every later mutation.
func Open(ctx context.Context, journal storage.Journal, opts ...Option) (*Ledger, error) {
	l := New(append(opts, WithJournal(journal))...)
	if err := l.replay(ctx); err != nil {
		return nil, fmt.Errorf("failed to replay journal: %w", err)
	}
	return l, nil
}

func (l *Ledger) replay(ctx context.Context) error {
	users, err := l.journal.Users(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		l.addUserLocked(u)
	}

	groups, err := l.journal.Groups(ctx)
	if err != nil {
		return err
	}
	for i := range groups {
		g := groups[i]
		l.groups[g.ID] = &g
		l.groupOrder = append(l.groupOrder, g.ID)
	}

	expenses, err := l.journal.Expenses(ctx)
	if err != nil {
		return err
	}
	for _, e := range expenses {
		if err := l.checkUsersLocked(e.PayerID, e.Splits); err != nil {
			return fmt.Errorf("expense %s: %w", e.ID, err)
		}
		calculator.ApplyExpense(l.sheetLocked, e.PayerID, e.Splits, e.Amount)
		l.expenses = append(l.expenses, e)
	}

	l.metrics.SetDirectorySize(len(l.users), len(l.groups))
	slog.Info("Ledger replayed",
		"users", len(users),
		"groups", len(groups),
		"expenses", len(expenses),
	)
	return nil
}

// CreateUser registers a new user with a generated ID.
func (l *Ledger) CreateUser(ctx context.Context, name string) (*models.User, error) {
	return l.AddUser(ctx, models.User{Name: name})
}

// AddUser registers user, generating an ID and CreatedAt when unset.
// The user starts with an empty balance sheet.
func (l *Ledger) AddUser(ctx context.Context, user models.User) (*models.User, error) {
	user.Name = strings.TrimSpace(user.Name)
	if user.Name == "" {
		return nil, ErrEmptyName
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = l.now().Unix()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.users[user.ID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateUser, user.ID)
	}
	if l.journal != nil {
		if err := l.journal.AppendUser(ctx, &user); err != nil {
			return nil, err
		}
	}
	l.addUserLocked(user)
	l.metrics.SetDirectorySize(len(l.users), len(l.groups))

	slog.Info("User created", "user_id", user.ID, "name", user.Name)
	return &user, nil
}

func (l *Ledger) addUserLocked(user models.User) {
	l.users[user.ID] = &record{user: user, sheet: models.NewBalanceSheet(user.ID)}
	l.userOrder = append(l.userOrder, user.ID)
}

// User returns the user with the given ID.
func (l *Ledger) User(id string) (models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return r.user, nil
}

// Users returns every user in creation order.
func (l *Ledger) Users() []models.User {
	l.mu.Lock()
	defer l.mu.Unlock()

	users := make([]models.User, 0, len(l.userOrder))
	for _, id := range l.userOrder {
		users = append(users, l.users[id].user)
	}
	return users
}

// Snapshot returns a detached copy of the user's balance sheet.
func (l *Ledger) Snapshot(userID string) (models.SheetSnapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.users[userID]
	if !ok {
		return models.SheetSnapshot{}, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return r.sheet.Snapshot(), nil
}

// sheetLocked is the calculator.SheetLookup over the arena.
// Callers must have checked that userID exists.
func (l *Ledger) sheetLocked(userID string) *models.BalanceSheet {
	return l.users[userID].sheet
}

func (l *Ledger) checkUsersLocked(payerID string, splits []models.Split) error {
	if _, ok := l.users[payerID]; !ok {
		return fmt.Errorf("%w: payer %s", ErrUserNotFound, payerID)
	}
	for _, s := range splits {
		if _, ok := l.users[s.UserID]; !ok {
			return fmt.Errorf("%w: participant %s", ErrUserNotFound, s.UserID)
		}
	}
	return nil
}
