package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSalt(t *testing.T) {
	a, err := GenerateSalt()
	require.NoError(t, err)
	b, err := GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, a, saltBytes*2, "hex encoded")
	assert.NotEqual(t, a, b)
}

func TestPasswordHashing(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	hash := HashPassword("correct horse battery staple", salt)

	assert.True(t, CheckPassword("correct horse battery staple", salt, hash))
	assert.False(t, CheckPassword("wrong", salt, hash))

	otherSalt, err := GenerateSalt()
	require.NoError(t, err)
	assert.False(t, CheckPassword("correct horse battery staple", otherSalt, hash),
		"same password under a different salt does not match")
}

func TestGenerateReceipt(t *testing.T) {
	receipt, err := GenerateReceipt()
	require.NoError(t, err)

	assert.Len(t, receipt, ReceiptDigits)
	for _, c := range receipt {
		assert.True(t, c >= '0' && c <= '9', "receipts are numeric")
	}

	second, err := GenerateReceipt()
	require.NoError(t, err)
	assert.NotEqual(t, receipt, second)
}

func TestReceiptHashing(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	receipt, err := GenerateReceipt()
	require.NoError(t, err)

	hash := HashReceipt(receipt, salt)
	assert.True(t, CheckReceipt(receipt, salt, hash))
	assert.False(t, CheckReceipt("0000000000000000", salt, hash))
}
