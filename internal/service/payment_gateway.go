package service

import (
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"github.com/hackdesk/hackdesk/config"
)

type CustomerDetails struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// PaymentGateway opens a hosted-checkout transaction for an order id. The
// order id doubles as the idempotency key: callers must reuse it for the same
// pending purchase instead of opening a second gateway order.
type PaymentGateway interface {
	CreateTransaction(orderID string, amount int64, cust CustomerDetails) (token string, redirectURL string, err error)
}

type midtransGateway struct {
	client snap.Client
}

func NewMidtransGateway(cfg *config.Config) PaymentGateway {
	env := midtrans.Sandbox
	if cfg.Midtrans.Production {
		env = midtrans.Production
	}
	var client snap.Client
	client.New(cfg.Midtrans.ServerKey, env)
	return &midtransGateway{client: client}
}

func (g *midtransGateway) CreateTransaction(orderID string, amount int64, cust CustomerDetails) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.FirstName,
			LName: cust.LastName,
			Email: cust.Email,
			Phone: cust.Phone,
		},
	}
	resp, err := g.client.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}
