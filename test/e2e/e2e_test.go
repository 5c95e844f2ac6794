package e2e

import (
	"encoding/hex"
	"testing"

	"github.com/umbra-network/go-umbra/internal/crypto/elgamal"
)

// TestConfidentialTransfer walks a full payment: the sender encrypts the
// amount for the receiver, a validator folds it into the receiver's
// balance without ever seeing the plaintext, and the receiver decrypts
// the new balance.
func TestConfidentialTransfer(t *testing.T) {
	// 1. Key Generation Phase
	receiverKey, err := elgamal.GenerateKey(nil)
	if err != nil {
		t.Fatalf("receiver failed to generate key: %v", err)
	}
	receiverPub := receiverKey.PublicKey()

	// 2. The receiver starts with an encrypted balance of 500.
	balance, err := receiverPub.Encrypt(nil, 500)
	if err != nil {
		t.Fatalf("encrypting initial balance: %v", err)
	}

	// 3. Transfer Phase: the sender encrypts 125 for the receiver and
	// ships the compressed ciphertext over the wire.
	transfer, err := receiverPub.Encrypt(nil, 125)
	if err != nil {
		t.Fatalf("encrypting transfer: %v", err)
	}
	wire := transfer.Compress()
	payload := hex.EncodeToString(wire[:])

	// 4. Validator Phase: decode the untrusted payload and apply it to
	// the balance homomorphically. No key material involved.
	raw, err := hex.DecodeString(payload)
	if err != nil {
		t.Fatalf("decoding payload hex: %v", err)
	}
	compressed, err := elgamal.CompressedCiphertextFromBytes(raw)
	if err != nil {
		t.Fatalf("parsing compressed ciphertext: %v", err)
	}
	received, err := compressed.Decompress()
	if err != nil {
		t.Fatalf("decompressing ciphertext: %v", err)
	}
	balance = balance.Add(received)

	// The network fee of 25 is public, so only the commitment moves.
	balance = balance.SubAmount(elgamal.AmountScalar(25))

	// 5. Receiver Phase: decrypt the updated balance.
	got, err := receiverKey.Decrypt(balance, 1<<20)
	if err != nil {
		t.Fatalf("decrypting balance: %v", err)
	}
	if got != 600 {
		t.Errorf("decrypted balance does not match. Got %d, want 600", got)
	}
}

// TestBalanceConservation checks the equation a validator enforces:
// after a transfer the sum of sender and receiver balances is unchanged,
// verifiable on ciphertexts alone.
func TestBalanceConservation(t *testing.T) {
	senderKey, err := elgamal.GenerateKey(nil)
	if err != nil {
		t.Fatalf("sender key: %v", err)
	}
	receiverKey, err := elgamal.GenerateKey(nil)
	if err != nil {
		t.Fatalf("receiver key: %v", err)
	}
	senderPub := senderKey.PublicKey()
	receiverPub := receiverKey.PublicKey()

	// The transfer amount is committed with the same blinding for both
	// parties, so the commitments cancel exactly.
	blinding, err := elgamal.RandomScalar(nil)
	if err != nil {
		t.Fatalf("blinding: %v", err)
	}
	outgoing := senderPub.EncryptWithBlinding(200, blinding)
	incoming := receiverPub.EncryptWithBlinding(200, blinding)

	senderBalance, err := senderPub.Encrypt(nil, 1000)
	if err != nil {
		t.Fatalf("sender balance: %v", err)
	}

	newSenderBalance := senderBalance.Sub(outgoing)

	// The validator checks the commitments balance out without any key:
	// old sender commitment == new sender commitment + transfer commitment.
	lhs := senderBalance.Commitment()
	rhs := newSenderBalance.Commitment().Add(incoming.Commitment())
	if !lhs.Equal(rhs) {
		t.Error("commitments do not balance after transfer")
	}

	// And the sender can still open the new balance.
	got, err := senderKey.Decrypt(newSenderBalance, 1<<20)
	if err != nil {
		t.Fatalf("decrypting sender balance: %v", err)
	}
	if got != 800 {
		t.Errorf("sender balance after transfer. Got %d, want 800", got)
	}
}

// TestCorruptedWirePayloadRejected makes sure a tampered ciphertext is
// caught at decode time rather than producing garbage balances.
func TestCorruptedWirePayloadRejected(t *testing.T) {
	key, err := elgamal.GenerateKey(nil)
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	ct, err := key.PublicKey().Encrypt(nil, 42)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	wire := ct.Compress()

	// Force a non-canonical point encoding in the commitment half.
	for i := 0; i < elgamal.PointSize; i++ {
		wire[i] = 0xFF
	}
	compressed, err := elgamal.CompressedCiphertextFromBytes(wire[:])
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if _, err := compressed.Decompress(); err == nil {
		t.Error("expected corrupted ciphertext to be rejected")
	}
}
