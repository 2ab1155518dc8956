package entry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedCustomer(name string) Customer {
	return Customer{ID: uuid.New(), Name: name}
}

func TestResolver_Resolve(t *testing.T) {
	ali := namedCustomer("Ali")
	alice := namedCustomer("Alice")
	bob := namedCustomer("Bob")
	r := NewResolver(&fakeAPI{}, []Customer{alice, bob, ali})

	t.Run("case and whitespace do not matter", func(t *testing.T) {
		matches := r.Resolve("  ALI ")
		require.Len(t, matches, 1)
		assert.Equal(t, ali.ID, matches[0].Customer.ID)
		assert.True(t, matches[0].Exact)
		assert.Zero(t, matches[0].Distance)
	})

	t.Run("near misses rank after exact hits", func(t *testing.T) {
		// A five letter query tolerates two edits, so Ali trails Alice.
		matches := r.Resolve("alice")
		require.Len(t, matches, 2)
		assert.Equal(t, alice.ID, matches[0].Customer.ID)
		assert.True(t, matches[0].Exact)
		assert.Equal(t, ali.ID, matches[1].Customer.ID)
		assert.Equal(t, 2, matches[1].Distance)
	})

	t.Run("candidates beyond the tolerance are dropped", func(t *testing.T) {
		matches := r.Resolve("zzzzz")
		assert.Empty(t, matches)
	})

	t.Run("empty query matches nothing", func(t *testing.T) {
		assert.Nil(t, r.Resolve("   "))
	})
}

func TestResolver_ExactMatch(t *testing.T) {
	ali := namedCustomer("Ali")
	r := NewResolver(&fakeAPI{}, []Customer{ali})

	got, ok := r.ExactMatch("ali")
	require.True(t, ok)
	assert.Equal(t, ali.ID, got.ID)

	_, ok = r.ExactMatch("al")
	assert.False(t, ok)
}

func TestResolver_FindOrCreate_RequiresConcreteScope(t *testing.T) {
	api := &fakeAPI{}
	r := NewResolver(api, nil)

	_, err := r.FindOrCreate(context.Background(), unresolvedPrivilegedSession(), "Ali", nil)
	assert.ErrorIs(t, err, apperror.ErrScopeRequired)

	_, foc, _, _, _ := api.calls()
	assert.Zero(t, foc, "scope rejection must not reach the network")
}

func TestResolver_FindOrCreate_AdoptsServerRecord(t *testing.T) {
	serverAli := namedCustomer("Ali")
	api := &fakeAPI{
		findOrCreateFn: func(name string, phone *string) (*Customer, error) {
			return &serverAli, nil
		},
	}

	staleAli := namedCustomer("ALI")
	r := NewResolver(api, []Customer{staleAli})

	got, err := r.FindOrCreate(context.Background(), scopedSession(), "ali", nil)
	require.NoError(t, err)
	assert.Equal(t, serverAli.ID, got.ID)

	// The stale cache entry with the same normalized name was replaced.
	matches := r.Resolve("ali")
	require.Len(t, matches, 1)
	assert.Equal(t, serverAli.ID, matches[0].Customer.ID)
}

func TestResolver_FindOrCreate_AppendsNewRecord(t *testing.T) {
	serverBob := namedCustomer("Bob")
	api := &fakeAPI{
		findOrCreateFn: func(name string, phone *string) (*Customer, error) {
			return &serverBob, nil
		},
	}

	r := NewResolver(api, []Customer{namedCustomer("Ali")})

	_, err := r.FindOrCreate(context.Background(), scopedSession(), "Bob", nil)
	require.NoError(t, err)

	matches := r.Resolve("bob")
	require.Len(t, matches, 1)
	assert.Equal(t, serverBob.ID, matches[0].Customer.ID)
}
