package entry

import (
	"context"
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/kmutua/dukabook-api/pkg/apperror"
	"github.com/kmutua/dukabook-api/pkg/utils"
)

// Match is one resolver result: a customer and its edit distance from the
// query after normalization.
type Match struct {
	Customer Customer
	Distance int
	Exact    bool
}

// Resolver ranks a locally cached customer set against typed queries and
// falls back to the server's find-or-create when the user confirms a name.
type Resolver struct {
	api   API
	cache []Customer
}

// NewResolver creates a resolver over the given customer set.
func NewResolver(api API, customers []Customer) *Resolver {
	return &Resolver{api: api, cache: customers}
}

// Replace swaps the cached customer set, typically after a remote search
// lands or a new customer is created.
func (r *Resolver) Replace(customers []Customer) {
	r.cache = customers
}

// Resolve ranks cached customers by edit distance from the query, nearest
// first. Candidates beyond the tolerance for the query length are dropped; an
// empty query matches nothing.
func (r *Resolver) Resolve(query string) []Match {
	queryKey := utils.NormalizeName(query)
	if queryKey == "" {
		return nil
	}

	tolerance := utils.MatchTolerance(queryKey)
	matches := make([]Match, 0, len(r.cache))
	for _, c := range r.cache {
		dist := levenshtein.ComputeDistance(queryKey, utils.NormalizeName(c.Name))
		if dist > tolerance {
			continue
		}
		matches = append(matches, Match{Customer: c, Distance: dist, Exact: dist == 0})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	return matches
}

// ExactMatch returns the cached customer whose normalized name equals the
// query's, or false when none does.
func (r *Resolver) ExactMatch(query string) (Customer, bool) {
	queryKey := utils.NormalizeName(query)
	if queryKey == "" {
		return Customer{}, false
	}
	for _, c := range r.cache {
		if utils.NormalizeName(c.Name) == queryKey {
			return c, true
		}
	}
	return Customer{}, false
}

// FindOrCreate resolves the name on the server, creating the customer when
// absent, and adopts the returned record into the local cache. A session
// without a concrete shop scope is rejected before any network call.
func (r *Resolver) FindOrCreate(ctx context.Context, sess Session, name string, phone *string) (*Customer, error) {
	if _, ok := sess.EffectiveShopID(); !ok {
		return nil, apperror.ErrScopeRequired
	}

	customer, err := r.api.FindOrCreateCustomer(ctx, sess, name, phone)
	if err != nil {
		return nil, err
	}

	// Adopt the server record: it wins over whatever the cache held.
	nameKey := utils.NormalizeName(customer.Name)
	replaced := false
	for i, c := range r.cache {
		if utils.NormalizeName(c.Name) == nameKey {
			r.cache[i] = *customer
			replaced = true
			break
		}
	}
	if !replaced {
		r.cache = append(r.cache, *customer)
	}

	return customer, nil
}
