package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wasit/internal/transferapi"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_QuoteSendsExactBody(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transfer/quote", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"available":true,"fromMethod":"VF_CASH","toMethod":{"id":"m-or","name":"Orange Cash","code":"ORANGE_CASH"},
			"amount":500,"fee":25,"total":525,"benefitType":"FEE","minAmount":null,"maxAmount":null,"feeRuleId":"r-1"}`)
	}))
	defer srv.Close()

	c := New(srv.URL + "/api/")
	q, err := c.Quote(context.Background(), transferapi.QuoteRequest{
		FromMethodID: "VF_CASH",
		ToMethodID:   "ORANGE_CASH",
		Amount:       decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"fromMethodId":"VF_CASH","toMethodId":"ORANGE_CASH","amount":500}`, gotBody)
	assert.True(t, q.Available)
	assert.Equal(t, "525", q.Total.String())
	assert.Nil(t, q.MinAmount)
	assert.Equal(t, "VF_CASH", q.FromMethod.ID())
	assert.Equal(t, "Orange Cash", q.ToMethod.Label())
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantMsg  string
	}{
		{"server message", http.StatusBadRequest, `{"message":"الحد الأدنى 100 ج.م","code":"INVALID_AMOUNT"}`, "INVALID_AMOUNT", "الحد الأدنى 100 ج.م"},
		{"no message", http.StatusInternalServerError, `{}`, "", ""},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := New(srv.URL).Confirm(context.Background(), transferapi.ConfirmRequest{})
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.True(t, IsStatus(err, tt.status))

			want := tt.wantMsg
			if want == "" {
				want = "fallback"
			}
			assert.Equal(t, want, MessageOf(err, "fallback"))
		})
	}
}

func TestClient_TransportErrorUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := New(srv.URL).Methods(context.Background())
	require.Error(t, err)
	assert.Equal(t, "fallback", MessageOf(err, "fallback"))
}

func TestClient_Orders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0100", r.URL.Query().Get("phone"))
		assert.Equal(t, "COMPLETED", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Empty(t, r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(transferapi.OrdersPage{
			Data: []transferapi.Order{{ID: "o-1", OrderNumber: "TR-ABCD2345", FromMethod: transferapi.Ref("m-vf")}},
			Meta: transferapi.PageMeta{CurrentPage: 2, PerPage: 10, TotalItems: 11, TotalPages: 2},
		})
	}))
	defer srv.Close()

	page, err := New(srv.URL).Orders(context.Background(), transferapi.OrdersQuery{Phone: "0100", Status: "COMPLETED", Page: 2})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "TR-ABCD2345", page.Data[0].OrderNumber)
	assert.Equal(t, "m-vf", page.Data[0].FromMethod.ID())
	assert.Equal(t, int64(2), page.Meta.TotalPages)
}

const (
	testTimeout = 2 * time.Second
	testTick    = 5 * time.Millisecond
)

func TestClient_UsesHTTPClientDefaults(t *testing.T) {
	assert.Zero(t, New("http://api").http.Timeout)
	assert.Zero(t, New("http://api", WithTransport(http.DefaultTransport)).http.Timeout)
	assert.Zero(t, NewAuthenticated("http://api", NewMemoryTokenStore("", "")).http.Timeout)
}
