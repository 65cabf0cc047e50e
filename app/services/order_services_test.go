package services

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/logger"
)

func TestParseLines(t *testing.T) {
	form := url.Values{
		"quantity_1":   {"3"},
		"quantity_2":   {"0"},
		"quantity_3":   {"-1"},
		"quantity_4":   {"abc"},
		"quantity_5":   {" 2 "},
		"quantity_x":   {"1"},
		"quantity_0":   {"1"},
		"quantity_6_7": {"1"},
		"qty_8":        {"1"},
		"quantity_9":   {"1.5"},
		"quantity_10":  {},
		"quantity_11":  {"99999999999"},
		"quantity_12":  {"4 boxes"},
		"quantity_13":  {"+2"},
		"quantity_14":  {"-"},
		"quantity_7x":  {"1"},
	}

	assert.Equal(t, []OrderLine{
		{ProductID: 1, Quantity: 3},
		{ProductID: 5, Quantity: 2},
		{ProductID: 6, Quantity: 1},
		{ProductID: 9, Quantity: 1},
		{ProductID: 12, Quantity: 4},
		{ProductID: 13, Quantity: 2},
	}, ParseLines(form))
}

func TestLeadingInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"3", 3, true},
		{" 7 ", 7, true},
		{"1.5", 1, true},
		{"12abc", 12, true},
		{"-4", -4, true},
		{"abc", 0, false},
		{"", 0, false},
		{"+", 0, false},
	}
	for _, tc := range cases {
		got, ok := leadingInt(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestSubmitLogsSkippedFields(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(logger.Options{Level: "debug", Output: &buf})
	t.Cleanup(func() { logger.Init(logger.Options{Level: "error", Output: io.Discard}) })

	svc := NewOrderService(&stubOrders{}, newStubProducts(1))
	_, err := svc.Submit(context.Background(), 1, url.Values{
		"quantity_1": {"1"},
		"quantity_2": {"0"},
		"note":       {"leave at door"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"field":"quantity_2"`)
	assert.Contains(t, out, `"field":"note"`)
	assert.NotContains(t, out, `"field":"quantity_1"`)
}

func TestSubmitCreatesOneRowPerPositiveLine(t *testing.T) {
	orders := &stubOrders{}
	svc := NewOrderService(orders, newStubProducts(1, 2, 3, 4))

	created, err := svc.Submit(context.Background(), 7, url.Values{
		"quantity_1": {"3"},
		"quantity_2": {"0"},
		"quantity_3": {"-1"},
		"quantity_4": {"abc"},
	})
	require.NoError(t, err)

	require.Len(t, orders.rows, 1)
	assert.Equal(t, uint(1), orders.rows[0].ProductID)
	assert.Equal(t, uint(7), orders.rows[0].UserID)
	assert.Equal(t, 3, orders.rows[0].Quantity)
	assert.Equal(t, "in progress", orders.rows[0].Status)
	assert.Len(t, created, 1)
}

func TestSubmitSkipsUnknownProducts(t *testing.T) {
	orders := &stubOrders{}
	svc := NewOrderService(orders, newStubProducts(2))

	created, err := svc.Submit(context.Background(), 1, url.Values{
		"quantity_1": {"1"},
		"quantity_2": {"4"},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, uint(2), created[0].ProductID)
}

func TestSubmitNothingToOrder(t *testing.T) {
	orders := &stubOrders{}
	svc := NewOrderService(orders, newStubProducts(1))

	created, err := svc.Submit(context.Background(), 1, url.Values{"quantity_1": {"0"}})
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Empty(t, orders.rows)
}

func TestSubmitStoreFailureKeepsEarlierRows(t *testing.T) {
	orders := &stubOrders{failOn: 2}
	svc := NewOrderService(orders, newStubProducts(1, 2, 3))

	_, err := svc.Submit(context.Background(), 1, url.Values{
		"quantity_1": {"1"},
		"quantity_2": {"1"},
		"quantity_3": {"1"},
	})
	assert.ErrorIs(t, err, errStore)
	require.Len(t, orders.rows, 1, "rows before the failure stay committed")
	assert.Equal(t, uint(1), orders.rows[0].ProductID)
}

func TestUpdateAndDeleteOrder(t *testing.T) {
	orders := &stubOrders{}
	svc := NewOrderService(orders, newStubProducts(1))
	ctx := context.Background()

	created, err := svc.Submit(ctx, 1, url.Values{"quantity_1": {"2"}})
	require.NoError(t, err)
	id := created[0].ID

	require.NoError(t, svc.UpdateStatus(ctx, id, " shipped "))
	assert.Equal(t, "shipped", orders.rows[0].Status)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, 99, "x"), ErrNotFound)

	var verr *ValidationError
	require.ErrorAs(t, svc.UpdateStatus(ctx, id, strings.Repeat("x", 51)), &verr)
	assert.Equal(t, "shipped", orders.rows[0].Status)

	require.NoError(t, svc.Delete(ctx, id))
	assert.ErrorIs(t, svc.Delete(ctx, id), ErrNotFound, "second delete reports not found")
}
