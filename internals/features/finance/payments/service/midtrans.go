package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"sponsorku_backend/internals/constants"
	"sponsorku_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Midtrans Snap Gateway
========================================================= */

const (
	FastTrackItemID   = "FASTTRACK"
	FastTrackItemName = "Fast Track Event"
)

// Gateway: pembuat transaksi Snap (diganti fake di test)
type Gateway interface {
	CreateTransaction(ctx context.Context, p *model.PaymentModel, cust CustomerInput) (token, redirectURL string, err error)
}

type SnapGateway struct {
	client snap.Client
}

// NewSnapGateway: useProduction=true untuk Production, false untuk Sandbox.
func NewSnapGateway(serverKey string, useProduction bool) *SnapGateway {
	g := &SnapGateway{}
	if useProduction {
		g.client.New(serverKey, midtrans.Production)
	} else {
		g.client.New(serverKey, midtrans.Sandbox)
	}
	return g
}

type CustomerInput struct {
	FirstName string
	Email     string
	Phone     string
}

// BuildSnapRequest: 1 item FASTTRACK seharga gross amount
func BuildSnapRequest(p *model.PaymentModel, cust CustomerInput) *snap.Request {
	return &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.PaymentOrderID,
			GrossAmt: p.PaymentGrossAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.FirstName,
			Email: cust.Email,
			Phone: cust.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    FastTrackItemID,
				Name:  FastTrackItemName,
				Price: p.PaymentGrossAmount,
				Qty:   1,
			},
		},
	}
}

func (g *SnapGateway) CreateTransaction(_ context.Context, p *model.PaymentModel, cust CustomerInput) (string, string, error) {
	if p.PaymentGrossAmount <= 0 {
		return "", "", errors.New("invalid payment_gross_amount")
	}
	if p.PaymentOrderID == "" {
		return "", "", errors.New("payment_order_id is required")
	}
	resp, merr := g.client.CreateTransaction(BuildSnapRequest(p, cust))
	if merr != nil {
		return "", "", merr
	}
	return resp.Token, resp.RedirectURL, nil
}

/* =========================================================
   Webhook helpers
========================================================= */

// VerifySignature: SHA512(order_id + status_code + gross_amount + ServerKey), hex lowercase
func VerifySignature(orderID, statusCode, grossAmount, serverKey, signature string) bool {
	want := strings.ToLower(strings.TrimSpace(signature))
	if want == "" || serverKey == "" {
		return false
	}
	got := sha512sum(orderID + statusCode + grossAmount + serverKey)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func sha512sum(s string) string {
	h := sha512.Sum512([]byte(s))
	return hex.EncodeToString(h[:])
}

// MapMidtransStatus mengonversi status Midtrans menjadi status internal.
// Status tidak dikenal → current.
func MapMidtransStatus(current, transactionStatus, fraudStatus string) string {
	ts := strings.ToLower(strings.TrimSpace(transactionStatus))
	fraud := strings.ToLower(strings.TrimSpace(fraudStatus))

	switch ts {
	case "capture":
		// cc: fraud=accept → paid, challenge → tunggu
		switch fraud {
		case "accept":
			return constants.PaymentPaid
		case "challenge":
			return constants.PaymentPending
		}
		return constants.PaymentFailed
	case "settlement":
		return constants.PaymentPaid
	case "pending":
		return constants.PaymentPending
	case "deny", "cancel", "expire", "failure":
		return constants.PaymentFailed
	}
	return current
}

// NextStatus: PAID final, FAILED hanya bisa naik ke PAID (settlement telat).
func NextStatus(current, incoming string) string {
	switch current {
	case constants.PaymentPaid:
		return constants.PaymentPaid
	case constants.PaymentFailed:
		if incoming == constants.PaymentPaid {
			return incoming
		}
		return current
	}
	return incoming
}
