package httpserver

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avdeenko/aromashop/internal/models"
	"github.com/avdeenko/aromashop/internal/transport"
)

func TestCartEndpoints(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedUser("buyer")
	v := env.seedVariant("WI-CH-1", 4500, 10)

	// Empty cart on first read.
	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil, userID)
	require.NoError(t, env.Cart.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeBody[models.Cart](t, rec)
	require.Empty(t, cart.Items)

	// Add, then merge.
	rec, c = env.doJSONRequest(http.MethodPost, "/api/v1/cart/items",
		transport.AddToCartRequest{VariantID: v.ID, Quantity: 2}, userID)
	require.NoError(t, env.Cart.AddItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, c = env.doJSONRequest(http.MethodPost, "/api/v1/cart/items",
		transport.AddToCartRequest{VariantID: v.ID, Quantity: 1}, userID)
	require.NoError(t, env.Cart.AddItem(c))
	cart = decodeBody[models.Cart](t, rec)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 3, cart.Items[0].Quantity)

	itemID := cart.Items[0].ID

	// Update quantity.
	rec, c = env.doJSONRequest(http.MethodPatch, fmt.Sprintf("/api/v1/cart/items/%d", itemID),
		transport.UpdateCartItemRequest{Quantity: 5}, userID)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(itemID))
	require.NoError(t, env.Cart.UpdateItem(c))
	cart = decodeBody[models.Cart](t, rec)
	require.Equal(t, 5, cart.Items[0].Quantity)

	// Remove.
	rec, c = env.doJSONRequest(http.MethodDelete, fmt.Sprintf("/api/v1/cart/items/%d", itemID), nil, userID)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(itemID))
	require.NoError(t, env.Cart.RemoveItem(c))
	cart = decodeBody[models.Cart](t, rec)
	require.Empty(t, cart.Items)
}

func TestCartEndpointErrors(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedUser("buyer")
	v := env.seedVariant("WI-CH-2", 4500, 2)

	// Unknown variant maps to 404.
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart/items",
		transport.AddToCartRequest{VariantID: 9999, Quantity: 1}, userID)
	require.NoError(t, env.Cart.AddItem(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Asking for more than stock maps to 400.
	rec, c = env.doJSONRequest(http.MethodPost, "/api/v1/cart/items",
		transport.AddToCartRequest{VariantID: v.ID, Quantity: 3}, userID)
	require.NoError(t, env.Cart.AddItem(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Unauthenticated.
	rec, c = env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil, 0)
	requireStatus(t, env.Cart.GetCart(c), rec, http.StatusUnauthorized)

	// Foreign cart item maps to 404.
	other := env.seedUser("other")
	rec, c = env.doJSONRequest(http.MethodPost, "/api/v1/cart/items",
		transport.AddToCartRequest{VariantID: v.ID, Quantity: 1}, other)
	require.NoError(t, env.Cart.AddItem(c))
	cart := decodeBody[models.Cart](t, rec)
	itemID := cart.Items[0].ID

	rec, c = env.doJSONRequest(http.MethodDelete, fmt.Sprintf("/api/v1/cart/items/%d", itemID), nil, userID)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(itemID))
	require.NoError(t, env.Cart.RemoveItem(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
