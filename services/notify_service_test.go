package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solemate_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notifyConfig(apiBase string) *structs.Config {
	return &structs.Config{
		Telegram: &structs.TelegramConfig{
			BotToken: "test-token",
			ChatID:   "12345",
			APIBase:  apiBase,
			Timeout:  2 * time.Second,
		},
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "12.34", FormatCents(1234))
	assert.Equal(t, "1299.00", FormatCents(129900))
	assert.Equal(t, "-3.50", FormatCents(-350))
}

func TestFormatOrderMessageEscapesUserInput(t *testing.T) {
	msg := formatOrderMessage(&structs.OrderConfirmation{
		OrderNumber: "SM-260829-A1B2",
		FullName:    "<script>alert(1)</script>",
		Phone:       "+7 999 000 11 22",
		Address:     "Main & 1st",
		Lines: []structs.CartLineView{
			{ProductName: "Runner", VariantName: "Black", SizeValue: "42", Quantity: 2, LineTotalCents: 16000},
		},
		TotalCents: 16000,
	})

	assert.Contains(t, msg, "SM-260829-A1B2")
	assert.Contains(t, msg, "&lt;script&gt;")
	assert.NotContains(t, msg, "<script>")
	assert.Contains(t, msg, "Main &amp; 1st")
	assert.Contains(t, msg, "Runner / Black, size 42 x2")
	assert.Contains(t, msg, "Total: 160.00")
}

func TestFormatContactMessage(t *testing.T) {
	msg := formatContactMessage(&structs.ContactRequest{
		Name:    "Anna",
		Phone:   "+7 111 222 33 44",
		Message: "call me back",
	})

	assert.Contains(t, msg, "Contact request")
	assert.Contains(t, msg, "Anna")
	assert.Contains(t, msg, "call me back")
}

func TestNotifyOrderDisabledIsNoop(t *testing.T) {
	cfg := &structs.Config{Telegram: &structs.TelegramConfig{Timeout: time.Second}}
	ns := NewNotifyService(gecho.NewDefaultLogger(), cfg)

	sent, err := ns.NotifyOrder(context.Background(), &structs.OrderConfirmation{OrderID: uuid.New()})
	assert.False(t, sent)
	assert.NoError(t, err)
}

func TestNotifyOrderDelivers(t *testing.T) {
	var gotPath, gotChatID, gotParseMode, gotText string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotPath = r.URL.Path
		gotChatID = r.FormValue("chat_id")
		gotParseMode = r.FormValue("parse_mode")
		gotText = r.FormValue("text")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ns := NewNotifyService(gecho.NewDefaultLogger(), notifyConfig(server.URL))

	sent, err := ns.NotifyOrder(context.Background(), &structs.OrderConfirmation{
		OrderNumber: "SM-260829-A1B2",
		FullName:    "Ivan Petrov",
		Phone:       "+7 999 000 11 22",
		Address:     "Main st. 1",
		TotalCents:  9900,
	})

	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "12345", gotChatID)
	assert.Equal(t, "HTML", gotParseMode)
	assert.Contains(t, gotText, "SM-260829-A1B2")
}

func TestNotifyOrderReportsRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false}`, http.StatusBadRequest)
	}))
	defer server.Close()

	ns := NewNotifyService(gecho.NewDefaultLogger(), notifyConfig(server.URL))

	sent, err := ns.NotifyOrder(context.Background(), &structs.OrderConfirmation{OrderNumber: "SM-260829-A1B2"})
	assert.True(t, sent)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestNotifyContactDelivers(t *testing.T) {
	var gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotText = r.FormValue("text")
	}))
	defer server.Close()

	ns := NewNotifyService(gecho.NewDefaultLogger(), notifyConfig(server.URL))

	sent, err := ns.NotifyContact(context.Background(), &structs.ContactRequest{
		Name:  "Anna",
		Phone: "+7 111 222 33 44",
	})

	require.NoError(t, err)
	assert.True(t, sent)
	assert.Contains(t, gotText, "Anna")
}
