package midtrans

import (
	"crypto/sha512"
	"encoding/hex"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// NewSnapClient builds the hosted-checkout client. Checkout only ever needs
// the redirect URL it returns; everything after that arrives via webhook.
func NewSnapClient(serverKey string, production bool) *snap.Client {
	var client snap.Client

	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	client.New(serverKey, env)

	return &client
}

// VerifySignature checks the sha512 signature midtrans sends with webhook
// notifications.
func VerifySignature(
	orderID string,
	statusCode string,
	grossAmount string,
	signature string,
	serverKey string,
) bool {

	raw := orderID + statusCode + grossAmount + serverKey
	hash := sha512.Sum512([]byte(raw))
	expected := hex.EncodeToString(hash[:])

	return expected == signature
}
