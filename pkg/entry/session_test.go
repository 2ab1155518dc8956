package entry

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSession_EffectiveShopID(t *testing.T) {
	shopID := uuid.New()

	t.Run("scoped is always bound to its shop", func(t *testing.T) {
		sess := Session{UserID: uuid.New(), Role: ScopedRole{ShopID: shopID}}
		got, ok := sess.EffectiveShopID()
		assert.True(t, ok)
		assert.Equal(t, shopID, got)
		assert.False(t, sess.AllShops())
	})

	t.Run("privileged with a selection resolves to it", func(t *testing.T) {
		sess := Session{UserID: uuid.New(), Role: PrivilegedRole{Selected: &shopID}}
		got, ok := sess.EffectiveShopID()
		assert.True(t, ok)
		assert.Equal(t, shopID, got)
	})

	t.Run("privileged with no selection is unresolved", func(t *testing.T) {
		sess := Session{UserID: uuid.New(), Role: PrivilegedRole{}}
		_, ok := sess.EffectiveShopID()
		assert.False(t, ok)
	})

	t.Run("all shops never resolves to a single shop", func(t *testing.T) {
		sess := Session{UserID: uuid.New(), Role: PrivilegedRole{All: true}}
		_, ok := sess.EffectiveShopID()
		assert.False(t, ok)
		assert.True(t, sess.AllShops())
	})
}

func TestSession_SelectShop(t *testing.T) {
	shopID := uuid.New()
	other := uuid.New()

	t.Run("privileged can move between shops", func(t *testing.T) {
		sess := Session{UserID: uuid.New(), Role: PrivilegedRole{Selected: &shopID}}
		moved := sess.SelectShop(other)

		got, ok := moved.EffectiveShopID()
		assert.True(t, ok)
		assert.Equal(t, other, got)

		// The original session is untouched.
		got, ok = sess.EffectiveShopID()
		assert.True(t, ok)
		assert.Equal(t, shopID, got)
	})

	t.Run("scoped cannot change shop", func(t *testing.T) {
		sess := Session{UserID: uuid.New(), Role: ScopedRole{ShopID: shopID}}
		moved := sess.SelectShop(other)

		got, ok := moved.EffectiveShopID()
		assert.True(t, ok)
		assert.Equal(t, shopID, got)
	})

	t.Run("selecting a shop leaves all-shops mode", func(t *testing.T) {
		sess := Session{UserID: uuid.New(), Role: PrivilegedRole{All: true}}
		moved := sess.SelectShop(shopID)

		got, ok := moved.EffectiveShopID()
		assert.True(t, ok)
		assert.Equal(t, shopID, got)
		assert.False(t, moved.AllShops())
	})
}
