package badger

import (
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"

	"github.com/maivenlabs/relevancy/core"
	"github.com/maivenlabs/relevancy/storage"
)

// CompanyRepository implements storage.CompanyRepository for BadgerDB.
type CompanyRepository struct {
	backend *Backend
}

var _ storage.CompanyRepository = (*CompanyRepository)(nil)

// NewCompanyRepository creates a new CompanyRepository.
func NewCompanyRepository(backend *Backend) (*CompanyRepository, error) {
	if backend == nil {
		return nil, storage.ErrStoreNotReady
	}
	return &CompanyRepository{backend: backend}, nil
}

// Close releases repository resources. The backend is owned by the caller.
func (r *CompanyRepository) Close() error {
	return nil
}

// AddCompanies adds one or more company records to storage.
func (r *CompanyRepository) AddCompanies(ctx context.Context, companies ...*core.Company) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, company := range companies {
			if company.Id == 0 {
				return storage.ErrMissingID
			}
			if err := tx.Set(makeCompanyKey(company.Id), storage.MarshalCompany(company)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetCompany retrieves a single company by ID.
func (r *CompanyRepository) GetCompany(ctx context.Context, id core.ID) (*core.Company, error) {
	var company *core.Company
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCompanyKey(id))
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			company, err = storage.UnmarshalCompany(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return company, nil
}

// ListCompanies retrieves all company records, ordered by ID.
func (r *CompanyRepository) ListCompanies(ctx context.Context) ([]*core.Company, error) {
	var companies []*core.Company
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(companyRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var company *core.Company
			err := iter.Item().Value(func(val []byte) error {
				var err error
				company, err = storage.UnmarshalCompany(val)
				return err
			})
			if err != nil {
				return err
			}
			companies = append(companies, company)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Keys sort lexically, not numerically
	slices.SortFunc(companies, func(a, b *core.Company) int {
		switch {
		case a.Id < b.Id:
			return -1
		case a.Id > b.Id:
			return 1
		default:
			return 0
		}
	})
	return companies, nil
}
