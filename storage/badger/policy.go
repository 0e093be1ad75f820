package badger

import (
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"

	"github.com/maivenlabs/relevancy/core"
	"github.com/maivenlabs/relevancy/storage"
)

// PolicyRepository implements storage.PolicyRepository for BadgerDB.
// Besides the primary record, each policy with a non-empty geography gets a
// secondary index entry so jurisdiction scans don't touch the full corpus.
type PolicyRepository struct {
	backend *Backend
}

var _ storage.PolicyRepository = (*PolicyRepository)(nil)

// NewPolicyRepository creates a new PolicyRepository.
func NewPolicyRepository(backend *Backend) (*PolicyRepository, error) {
	if backend == nil {
		return nil, storage.ErrStoreNotReady
	}
	return &PolicyRepository{backend: backend}, nil
}

// Close releases repository resources. The backend is owned by the caller.
func (r *PolicyRepository) Close() error {
	return nil
}

// AddPolicies adds one or more policy records to storage.
func (r *PolicyRepository) AddPolicies(ctx context.Context, policies ...*core.Policy) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, policy := range policies {
			if policy.Id == 0 {
				return storage.ErrMissingID
			}

			key := makePolicyKey(policy.Id)

			// Records are immutable once loaded, but a reload may change a
			// policy's geography; drop the stale index entry first.
			old, err := r.readPolicy(tx, key)
			if err != nil {
				return err
			}
			if old != nil && old.Geography != "" && old.Geography != policy.Geography {
				if err := tx.Delete(makePolicyGeoKey(old.Geography, old.Id)); err != nil {
					return err
				}
			}

			if err := tx.Set(key, storage.MarshalPolicy(policy)); err != nil {
				return err
			}
			if policy.Geography != "" {
				geoKey := makePolicyGeoKey(policy.Geography, policy.Id)
				if err := tx.Set(geoKey, storage.MarshalID(policy.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)
}

// GetPolicy retrieves a single policy by ID.
func (r *PolicyRepository) GetPolicy(ctx context.Context, id core.ID) (*core.Policy, error) {
	var policy *core.Policy
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		policy, err = r.readPolicy(tx, makePolicyKey(id))
		if err != nil {
			return err
		}
		if policy == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return policy, nil
}

// ListPolicies retrieves all policy records, ordered by ID.
func (r *PolicyRepository) ListPolicies(ctx context.Context) ([]*core.Policy, error) {
	var policies []*core.Policy
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(policyRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var policy *core.Policy
			err := iter.Item().Value(func(val []byte) error {
				var err error
				policy, err = storage.UnmarshalPolicy(val)
				return err
			})
			if err != nil {
				return err
			}
			policies = append(policies, policy)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sortPoliciesByID(policies)
	return policies, nil
}

// GetPoliciesByGeography retrieves all policies for a geography via the
// secondary index, ordered by ID.
func (r *PolicyRepository) GetPoliciesByGeography(ctx context.Context, geography string) ([]*core.Policy, error) {
	if geography == "" {
		return nil, nil
	}

	var policies []*core.Policy
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialPolicyGeoKey(geography)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			policy, err := r.readPolicy(tx, makePolicyKey(id))
			if err != nil {
				return err
			}
			if policy == nil {
				// Dangling index entry; skip rather than fail the scan.
				continue
			}
			policies = append(policies, policy)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sortPoliciesByID(policies)
	return policies, nil
}

// readPolicy reads a policy by key within a transaction.
// Returns nil (no error) when the key does not exist.
func (r *PolicyRepository) readPolicy(tx *badger.Txn, key []byte) (*core.Policy, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var policy *core.Policy
	err = item.Value(func(val []byte) error {
		var err error
		policy, err = storage.UnmarshalPolicy(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return policy, nil
}

func sortPoliciesByID(policies []*core.Policy) {
	slices.SortFunc(policies, func(a, b *core.Policy) int {
		switch {
		case a.Id < b.Id:
			return -1
		case a.Id > b.Id:
			return 1
		default:
			return 0
		}
	})
}
