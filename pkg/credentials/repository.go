package credentials

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spf13/viper"
)

var (
	// ErrAccountNotFound is the cause of resolution errors for unknown accounts.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidCredentials is the cause of resolution errors for accounts of the wrong type.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Resolver resolves an account name to ECS capable credentials.
type Resolver interface {
	ResolveECS(ctx context.Context, account string) (*ECSCredentials, humane.Error)
}

// AccountConfig is the configuration of one entry of the accounts list.
type AccountConfig struct {
	Name            string      `mapstructure:"name" json:"name"`
	Type            AccountType `mapstructure:"type" json:"type"`
	AccountID       string      `mapstructure:"accountId" json:"accountId,omitempty"`
	Regions         []string    `mapstructure:"regions" json:"regions,omitempty"`
	AssumeRole      string      `mapstructure:"assumeRole" json:"assumeRole,omitempty"`
	ExternalID      string      `mapstructure:"externalId" json:"externalId,omitempty"`
	AccessKeyID     string      `mapstructure:"accessKeyId" json:"accessKeyId,omitempty"`
	SecretAccessKey string      `mapstructure:"secretAccessKey" json:"-"`
	SessionToken    string      `mapstructure:"sessionToken" json:"-"`
}

// Repository is the in-memory set of configured accounts.
type Repository struct {
	mu       sync.RWMutex
	accounts map[string]Credentials
}

var _ Resolver = &Repository{}

// NewRepository validates the account configurations and builds a repository.
func NewRepository(accounts ...AccountConfig) (*Repository, humane.Error) {
	r := &Repository{accounts: make(map[string]Credentials, len(accounts))}

	for _, account := range accounts {
		if err := r.Add(account); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// NewRepositoryFromViper loads the accounts list from the viper configuration.
func NewRepositoryFromViper() (*Repository, humane.Error) {
	var accounts []AccountConfig
	if err := viper.UnmarshalKey("accounts", &accounts); err != nil {
		return nil, humane.Wrap(err, "failed to parse accounts configuration",
			"accounts must be a list of entries with at least a name and a type",
		)
	}

	return NewRepository(accounts...)
}

// Add registers one account.
func (r *Repository) Add(account AccountConfig) humane.Error {
	if account.Name == "" {
		return humane.New("account configuration is missing a name", "set a unique name for every entry of the accounts list")
	}

	creds, err := newCredentials(account)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Name]; exists {
		return humane.New(fmt.Sprintf("account %q is configured more than once", account.Name),
			"account names must be unique",
		)
	}

	r.accounts[account.Name] = creds
	return nil
}

// Get returns the credentials of an account.
func (r *Repository) Get(_ context.Context, account string) (Credentials, humane.Error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	creds, found := r.accounts[account]
	if !found {
		return nil, humane.Wrap(ErrAccountNotFound, fmt.Sprintf("no credentials configured for account %q", account),
			"add the account to the accounts section of the configuration",
			"check the spelling of the account name",
		)
	}

	return creds, nil
}

// All returns every configured account ordered by name.
func (r *Repository) All() []Credentials {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]Credentials, 0, len(r.accounts))
	for _, creds := range r.accounts {
		all = append(all, creds)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Name() < all[j].Name()
	})

	return all
}

// ResolveECS returns the ECS credentials of an account.
//
// The cause of the returned error is ErrAccountNotFound for unknown accounts
// and ErrInvalidCredentials for accounts that are not enabled for ECS.
func (r *Repository) ResolveECS(ctx context.Context, account string) (*ECSCredentials, humane.Error) {
	creds, err := r.Get(ctx, account)
	if err != nil {
		return nil, err
	}

	switch c := creds.(type) {
	case *ECSCredentials:
		return c, nil
	default:
		return nil, humane.Wrap(ErrInvalidCredentials, fmt.Sprintf("account %q is of type %q and cannot be used for ECS", account, c.Type()),
			fmt.Sprintf("set the type of account %q to %q", account, ECSAccountType),
		)
	}
}

func newCredentials(account AccountConfig) (Credentials, humane.Error) {
	base := AWSCredentials{
		name:      account.Name,
		accountID: account.AccountID,
		regions:   account.Regions,
	}

	switch account.Type {
	case AWSAccountType:
		return &base, nil

	case ECSAccountType:
		creds := &ECSCredentials{
			AWSCredentials: base,
			assumeRole:     account.AssumeRole,
			externalID:     account.ExternalID,
		}

		if account.AccessKeyID != "" || account.SecretAccessKey != "" {
			if account.AccessKeyID == "" || account.SecretAccessKey == "" {
				return nil, humane.New(fmt.Sprintf("account %q has incomplete static keys", account.Name),
					"set both accessKeyId and secretAccessKey, or neither to use the default credential chain",
				)
			}

			creds.static = &aws.Credentials{
				AccessKeyID:     account.AccessKeyID,
				SecretAccessKey: account.SecretAccessKey,
				SessionToken:    account.SessionToken,
				Source:          "ecsview configuration",
			}
		}

		return creds, nil

	default:
		return nil, humane.New(fmt.Sprintf("account %q has unknown type %q", account.Name, account.Type),
			fmt.Sprintf("set the type to either %q or %q", AWSAccountType, ECSAccountType),
		)
	}
}
