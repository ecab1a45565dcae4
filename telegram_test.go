package cartera

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTelegramNotify(t *testing.T) {
	var gotPath, gotChat, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotChat = r.URL.Query().Get("chat_id")
		gotText = r.URL.Query().Get("text")
	}))
	defer srv.Close()

	n := &TelegramNotifier{Token: "tok", ChatID: "42", BaseURL: srv.URL, Client: srv.Client()}
	if err := n.Notify("hola 🟢"); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/bottok/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if gotChat != "42" || gotText != "hola 🟢" {
		t.Errorf("chat_id = %q, text = %q", gotChat, gotText)
	}
}

func TestTelegramNotifyFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	n := &TelegramNotifier{Token: "tok", ChatID: "42", BaseURL: srv.URL, Client: srv.Client()}
	err := n.Notify("hola")
	if err == nil || !strings.Contains(err.Error(), "400") {
		t.Errorf("Notify error = %v, want a status failure", err)
	}
}
