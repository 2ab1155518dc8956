package entry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SearchCustomers_RequestShape(t *testing.T) {
	var gotPath, gotName, gotLimit, gotShop string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotName = r.URL.Query().Get("name")
		gotLimit = r.URL.Query().Get("limit")
		gotShop = r.Header.Get("X-Shop-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Search results","data":[]}`))
	}))
	defer srv.Close()

	sess := scopedSession()
	c := NewClient(srv.URL, "test-token")

	_, err := c.SearchCustomers(context.Background(), sess, "ali", 5)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/customers/search", gotPath)
	assert.Equal(t, "ali", gotName)
	assert.Equal(t, "5", gotLimit)

	shopID, ok := sess.EffectiveShopID()
	require.True(t, ok)
	assert.Equal(t, shopID.String(), gotShop)
}
