package session

import (
	"context"
	"database/sql"

	"github.com/pawpals/pawpals/internal/client/repositories/metadata"
	"github.com/pawpals/pawpals/internal/common"
	"github.com/pawpals/pawpals/internal/dbx"
)

// TokenStore is the durable single-slot home of the bearer credential.
// Token returns "" when no credential is stored. The interface is
// signature-compatible with api.TokenSource, so the same store feeds
// outgoing request headers.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type metadataTokenStore struct {
	repo metadata.Repository
}

// NewTokenStore wraps the metadata repository as a TokenStore keyed by
// common.TokenStorageKey.
func NewTokenStore(repo metadata.Repository) TokenStore {
	return &metadataTokenStore{repo: repo}
}

func (s *metadataTokenStore) Token(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *metadataTokenStore) Save(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.TokenStorageKey, []byte(token))
}

// Clear wipes the whole metadata store. The local database belongs to this
// client alone, and leaving per-user leftovers behind a logout is worse
// than dropping unrelated slots.
func (s *metadataTokenStore) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

// dbTokenStore is the durable store the application uses. Reads go straight
// to the repository; Save replaces the whole store inside one transaction,
// so a credential swap can never interleave with a concurrent clear and
// leave stale slots next to the new token.
type dbTokenStore struct {
	db   *sql.DB
	repo metadata.Repository
}

// NewDurableTokenStore wraps the local database as a TokenStore with
// transactional credential replacement.
func NewDurableTokenStore(db *sql.DB) TokenStore {
	return &dbTokenStore{db: db, repo: metadata.NewSQLiteRepository(db)}
}

func (s *dbTokenStore) Token(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *dbTokenStore) Save(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		return repo.Set(ctx, common.TokenStorageKey, []byte(token))
	})
}

func (s *dbTokenStore) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
