//go:build js && wasm

// WASM bindings exposing the confidential-amount engine to browser
// wallets. All values cross the JS boundary hex-encoded in their
// canonical compressed form.
package main

import (
	"encoding/hex"
	"fmt"
	"syscall/js"

	"github.com/gtank/ristretto255"

	"github.com/umbra-network/go-umbra/internal/crypto/elgamal"
)

func main() {
	c := make(chan struct{})

	fmt.Println("Umbra confidential engine WASM initialized")

	js.Global().Set("UmbraConfidential", map[string]interface{}{
		"GenerateKey": js.FuncOf(generateKey),
		"Encrypt":     js.FuncOf(encrypt),
		"Add":         js.FuncOf(add),
		"Sub":         js.FuncOf(sub),
		"SubAmount":   js.FuncOf(subAmount),
		"AddAmount":   js.FuncOf(addAmount),
		"Decrypt":     js.FuncOf(decrypt),
	})

	<-c
}

// generateKey returns {privateKey, publicKey} hex strings.
func generateKey(this js.Value, args []js.Value) interface{} {
	sk, err := elgamal.GenerateKey(nil)
	if err != nil {
		return errString(err)
	}
	return map[string]interface{}{
		"privateKey": hex.EncodeToString(sk.Bytes()),
		"publicKey":  hex.EncodeToString(sk.PublicKey().Bytes()),
	}
}

// encrypt(publicKeyHex, amount) returns a compressed ciphertext hex.
func encrypt(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (publicKey, amount)"
	}
	pk, err := parsePublicKey(args[0].String())
	if err != nil {
		return errString(err)
	}
	ct, err := pk.Encrypt(nil, uint64(args[1].Int()))
	if err != nil {
		return errString(err)
	}
	compressed := ct.Compress()
	return hex.EncodeToString(compressed[:])
}

// add(ciphertextHex, ciphertextHex) returns the homomorphic sum.
func add(this js.Value, args []js.Value) interface{} {
	return combine(args, func(a, b elgamal.Ciphertext) elgamal.Ciphertext {
		return a.Add(b)
	})
}

// sub(ciphertextHex, ciphertextHex) returns the homomorphic difference.
func sub(this js.Value, args []js.Value) interface{} {
	return combine(args, func(a, b elgamal.Ciphertext) elgamal.Ciphertext {
		return a.Sub(b)
	})
}

// addAmount(ciphertextHex, amount) credits a public amount.
func addAmount(this js.Value, args []js.Value) interface{} {
	return adjust(args, elgamal.Ciphertext.AddAmount)
}

// subAmount(ciphertextHex, amount) debits a public amount, e.g. a fee.
func subAmount(this js.Value, args []js.Value) interface{} {
	return adjust(args, elgamal.Ciphertext.SubAmount)
}

// decrypt(privateKeyHex, ciphertextHex, max) recovers the amount.
func decrypt(this js.Value, args []js.Value) interface{} {
	if len(args) != 3 {
		return "error: expected 3 arguments (privateKey, ciphertext, max)"
	}
	skBytes, err := hex.DecodeString(args[0].String())
	if err != nil {
		return errString(err)
	}
	sk, err := elgamal.PrivateKeyFromBytes(skBytes)
	if err != nil {
		return errString(err)
	}
	ct, err := parseCiphertext(args[1].String())
	if err != nil {
		return errString(err)
	}
	amount, err := sk.Decrypt(ct, uint64(args[2].Int()))
	if err != nil {
		return errString(err)
	}
	return amount
}

func combine(args []js.Value, op func(a, b elgamal.Ciphertext) elgamal.Ciphertext) interface{} {
	if len(args) != 2 {
		return "error: expected 2 ciphertext arguments"
	}
	a, err := parseCiphertext(args[0].String())
	if err != nil {
		return errString(err)
	}
	b, err := parseCiphertext(args[1].String())
	if err != nil {
		return errString(err)
	}
	compressed := op(a, b).Compress()
	return hex.EncodeToString(compressed[:])
}

func adjust(args []js.Value, op func(elgamal.Ciphertext, *ristretto255.Scalar) elgamal.Ciphertext) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (ciphertext, amount)"
	}
	ct, err := parseCiphertext(args[0].String())
	if err != nil {
		return errString(err)
	}
	scalar := elgamal.AmountScalar(uint64(args[1].Int()))
	compressed := op(ct, scalar).Compress()
	return hex.EncodeToString(compressed[:])
}

func parsePublicKey(s string) (*elgamal.PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return elgamal.PublicKeyFromBytes(b)
}

func parseCiphertext(s string) (elgamal.Ciphertext, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return elgamal.Ciphertext{}, err
	}
	compressed, err := elgamal.CompressedCiphertextFromBytes(b)
	if err != nil {
		return elgamal.Ciphertext{}, err
	}
	return compressed.Decompress()
}

func errString(err error) string {
	return fmt.Sprintf("error: %v", err)
}
