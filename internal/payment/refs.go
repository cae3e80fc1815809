package payment

import "math/rand"

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// randomRef produces an n-character base36 reference for simulated
// transaction identifiers. Not cryptographic; the gateway is a mock.
func randomRef(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return string(b)
}
