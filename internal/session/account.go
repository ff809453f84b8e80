package session

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-net-storage/models"
)

// FetchCurrentAccount reads the authenticated account from the server and
// refreshes the cached copy.
func (s *Session) FetchCurrentAccount(ctx context.Context) (models.Account, error) {
	if !s.IsActive() {
		return models.Account{}, ErrNotConnected
	}

	apiAccount, err := s.server.GetAccount(ctx)
	if err != nil {
		return models.Account{}, fmt.Errorf("fetch current account: %w", err)
	}

	account := models.NewAccount(apiAccount.User, true)
	s.mu.Lock()
	s.account = account
	s.mu.Unlock()

	return account, nil
}

// FetchAccount looks an account up by user id or username.
func (s *Session) FetchAccount(ctx context.Context, idOrUsername string) (models.Account, error) {
	if !s.IsActive() {
		return models.Account{}, ErrNotConnected
	}

	users, err := s.server.GetUsers(ctx, []string{idOrUsername}, []string{idOrUsername})
	if err != nil {
		return models.Account{}, fmt.Errorf("fetch account %q: %w", idOrUsername, err)
	}
	if len(users) == 0 {
		return models.Account{}, fmt.Errorf("fetch account %q: %w", idOrUsername, ErrAccountNotFound)
	}

	user := users[0]
	for _, u := range users {
		if u.ID == idOrUsername {
			user = u
			break
		}
	}

	return models.NewAccount(user, user.ID == s.CurrentPrincipalID()), nil
}

// fetchAccounts returns the accounts of ids in the same order. Unknown ids
// are skipped.
func (s *Session) fetchAccounts(ctx context.Context, ids []string) ([]models.Account, error) {
	if !s.IsActive() {
		return nil, ErrNotConnected
	}
	if len(ids) == 0 {
		return nil, nil
	}

	users, err := s.server.GetUsers(ctx, ids, nil)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	principal := s.CurrentPrincipalID()
	accounts := make([]models.Account, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			accounts = append(accounts, models.NewAccount(u, id == principal))
		}
	}

	return accounts, nil
}

// SyncAccount refreshes account with the state stored on the server.
func (s *Session) SyncAccount(ctx context.Context, account *models.Account) error {
	if account.Local {
		current, err := s.FetchCurrentAccount(ctx)
		if err != nil {
			return err
		}
		*account = current
		return nil
	}

	fetched, err := s.FetchAccount(ctx, account.UserID)
	if err != nil {
		return err
	}
	*account = fetched
	return nil
}

// SetDisplayName changes the display name of the authenticated account.
func (s *Session) SetDisplayName(ctx context.Context, account *models.Account, name string) error {
	if !account.Local {
		return ErrNotLocalAccount
	}
	if !s.IsActive() {
		return ErrNotConnected
	}

	if err := s.server.UpdateAccount(ctx, models.UpdateAccountRequest{DisplayName: name}); err != nil {
		return fmt.Errorf("set display name: %w", err)
	}

	account.DisplayName = name
	s.mu.Lock()
	s.account.DisplayName = name
	s.mu.Unlock()

	return nil
}
