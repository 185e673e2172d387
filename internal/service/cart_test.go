package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddItemMergesAndCaps(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	svc := &CartService{Repo: r}

	userID := seedUser(t, r, "buyer")
	_, variant := seedCatalog(t, r, "WI-CART-1", 5000, 0, 5)

	cart, err := svc.AddItem(ctx, userID, variant.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 2, cart.Items[0].Quantity)

	cart, err = svc.AddItem(ctx, userID, variant.ID, 3)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 5, cart.Items[0].Quantity)

	// The cart already holds all available stock.
	_, err = svc.AddItem(ctx, userID, variant.ID, 1)
	require.ErrorIs(t, err, ErrValidation)
}

func TestAddItemValidation(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	svc := &CartService{Repo: r}

	userID := seedUser(t, r, "buyer")
	_, variant := seedCatalog(t, r, "WI-CART-2", 5000, 0, 5)

	_, err := svc.AddItem(ctx, userID, 9999, 1)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddItem(ctx, userID, variant.ID, 0)
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.AddItem(ctx, userID, variant.ID, -2)
	require.ErrorIs(t, err, ErrValidation)

	variant.IsActive = false
	require.NoError(t, r.SaveVariant(ctx, variant))
	_, err = svc.AddItem(ctx, userID, variant.ID, 1)
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateItemQuantity(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	svc := &CartService{Repo: r}

	userID := seedUser(t, r, "buyer")
	_, variant := seedCatalog(t, r, "WI-CART-3", 5000, 0, 5)

	cart, err := svc.AddItem(ctx, userID, variant.ID, 1)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.UpdateItem(ctx, userID, itemID, 4)
	require.NoError(t, err)
	require.Equal(t, 4, cart.Items[0].Quantity)

	_, err = svc.UpdateItem(ctx, userID, itemID, 0)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateItem(ctx, userID, itemID, 6)
	require.ErrorIs(t, err, ErrValidation)
}

func TestCartOwnership(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	svc := &CartService{Repo: r}

	owner := seedUser(t, r, "owner")
	stranger := seedUser(t, r, "stranger")
	_, variant := seedCatalog(t, r, "WI-CART-4", 5000, 0, 5)

	cart, err := svc.AddItem(ctx, owner, variant.ID, 1)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	_, err = svc.UpdateItem(ctx, stranger, itemID, 2)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.RemoveItem(ctx, stranger, itemID)
	require.ErrorIs(t, err, ErrNotFound)

	// Owner still sees the untouched line.
	mine, err := svc.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	require.Equal(t, 1, mine.Items[0].Quantity)
}

func TestRemoveAndClear(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	svc := &CartService{Repo: r}

	userID := seedUser(t, r, "buyer")
	_, v1 := seedCatalog(t, r, "WI-CART-5", 5000, 0, 5)
	_, v2 := seedCatalog(t, r, "WI-CART-6", 7000, 0, 5)

	_, err := svc.AddItem(ctx, userID, v1.ID, 1)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, userID, v2.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	cart, err = svc.RemoveItem(ctx, userID, cart.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	cart, err = svc.Clear(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}
