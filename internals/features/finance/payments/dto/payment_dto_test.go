package dto

import (
	"encoding/json"
	"testing"

	helper "sponsorku_backend/internals/helpers"
)

func TestParseMidtransNotification(t *testing.T) {
	body := []byte(`{
		"order_id": "PAY-abc",
		"status_code": "200",
		"gross_amount": 50000.00,
		"signature_key": "deadbeef",
		"transaction_status": "settlement",
		"payment_type": "qris",
		"fraud_status": "accept"
	}`)

	n, err := ParseMidtransNotification(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if n.GrossAmount != "50000.00" {
		t.Fatalf("gross_amount = %q, textual form must be kept", n.GrossAmount)
	}
	if n.OrderID != "PAY-abc" || n.TransactionStatus != "settlement" || n.PaymentType != "qris" {
		t.Fatalf("got %+v", n)
	}
	if _, ok := n.Raw["gross_amount"].(json.Number); !ok {
		t.Fatalf("raw gross_amount type = %T", n.Raw["gross_amount"])
	}
}

func TestParseMidtransNotificationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", "  "},
		{"broken json", `{"order_id":`},
		{"missing order", `{"status_code":"200"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMidtransNotification([]byte(tt.body))
			if helper.StatusOf(err) != 400 {
				t.Fatalf("status = %d", helper.StatusOf(err))
			}
		})
	}
}
