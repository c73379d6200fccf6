package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"sponsorku_backend/internals/features/finance/payments/model"
	helper "sponsorku_backend/internals/helpers"
)

/* =======================================================================
   Create
======================================================================= */

type CreatePaymentResponse struct {
	Payment     model.PaymentModel `json:"payment"`
	Token       string             `json:"token"`
	RedirectURL string             `json:"redirect_url"`
}

/* =======================================================================
   Webhook Midtrans
======================================================================= */

// MidtransNotification: field yang dipakai dari body notifikasi.
// Raw disimpan apa adanya ke payment_gateway_response.
type MidtransNotification struct {
	OrderID           string
	StatusCode        string
	GrossAmount       string
	SignatureKey      string
	TransactionStatus string // capture, settlement, pending, deny, cancel, expire, failure
	FraudStatus       string // accept / challenge / deny
	PaymentType       string
	TransactionID     string

	Raw map[string]any
}

// ParseMidtransNotification: angka dibaca sebagai json.Number supaya
// gross_amount "50000.00" tetap sama persis dengan yang ditandatangani.
func ParseMidtransNotification(body []byte) (*MidtransNotification, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, helper.ErrBadRequest("Payload kosong")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	raw := map[string]any{}
	if err := dec.Decode(&raw); err != nil {
		return nil, helper.ErrBadRequest("Invalid payload")
	}

	n := &MidtransNotification{
		OrderID:           field(raw, "order_id"),
		StatusCode:        field(raw, "status_code"),
		GrossAmount:       field(raw, "gross_amount"),
		SignatureKey:      field(raw, "signature_key"),
		TransactionStatus: field(raw, "transaction_status"),
		FraudStatus:       field(raw, "fraud_status"),
		PaymentType:       field(raw, "payment_type"),
		TransactionID:     field(raw, "transaction_id"),
		Raw:               raw,
	}
	if n.OrderID == "" {
		return nil, helper.ErrValidation("order_id wajib ada")
	}
	return n, nil
}

func field(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}
