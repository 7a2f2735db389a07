// Package security provides the credential primitives of tipline: salted
// password hashing, whistleblower receipt generation and hashing, and salt
// generation. Hashes are compared in constant time.
package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"math/big"

	"golang.org/x/crypto/argon2"

	"github.com/tipline/tipline/errors"
)

// Argon2id parameters. Receipts get a heavier time cost than passwords
// because a receipt is short and numeric, so brute force is cheaper per
// guess.
const (
	saltBytes = 16

	passwordTime    = 1
	passwordMemory  = 64 * 1024
	passwordThreads = 4
	passwordKeyLen  = 32

	receiptTime   = 4
	receiptKeyLen = 32

	// ReceiptDigits is the length of a whistleblower receipt.
	ReceiptDigits = 16
)

// GenerateSalt returns a fresh random salt in hex form.
func GenerateSalt() (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "generate salt")
	}
	return hex.EncodeToString(salt), nil
}

// HashPassword derives the stored hash for a password under the given salt.
func HashPassword(password, salt string) string {
	key := argon2.IDKey([]byte(password), []byte(salt), passwordTime, passwordMemory, passwordThreads, passwordKeyLen)
	return hex.EncodeToString(key)
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(password, salt, hash string) bool {
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

// GenerateReceipt returns a fresh numeric whistleblower receipt.
func GenerateReceipt() (string, error) {
	digits := make([]byte, ReceiptDigits)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", errors.Wrap(err, "generate receipt")
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// HashReceipt derives the stored hash for a receipt under the node receipt
// salt.
func HashReceipt(receipt, salt string) string {
	key := argon2.IDKey([]byte(receipt), []byte(salt), receiptTime, passwordMemory, passwordThreads, receiptKeyLen)
	return hex.EncodeToString(key)
}

// CheckReceipt reports whether the receipt matches the stored hash.
func CheckReceipt(receipt, salt, hash string) bool {
	computed := HashReceipt(receipt, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
