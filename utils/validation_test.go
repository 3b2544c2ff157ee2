package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	dec, err := ValidateAmount("1009.90")
	require.NoError(t, err)
	assert.Equal(t, "1009.9", dec.String())

	_, err = ValidateAmount("")
	assert.Error(t, err)

	_, err = ValidateAmount("-5")
	assert.Error(t, err)

	_, err = ValidateAmount("ten")
	assert.Error(t, err)
}

func TestValidateReceivingAddress_EVM(t *testing.T) {
	err := ValidateReceivingAddress("0xE4d365a5a8fC0DCEE9E3C5985D7FcBab8B4A0fE1", "ETH")
	assert.NoError(t, err)

	err = ValidateReceivingAddress("0xE4d365a5a8fC0DCEE9E3C5985D7FcBab8B4A0fE1", "USDT")
	assert.NoError(t, err)

	err = ValidateReceivingAddress("ethereum_wallet_address", "ETH")
	assert.Error(t, err)
}

func TestValidateReceivingAddress_BTC(t *testing.T) {
	err := ValidateReceivingAddress("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", "BTC")
	assert.NoError(t, err)

	err = ValidateReceivingAddress("bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq", "BTC")
	assert.NoError(t, err)

	// "0" and "O" are outside the base58 alphabet.
	err = ValidateReceivingAddress("0OIl0OIl0OIl0OIl0OIl0OIl0O", "BTC")
	assert.Error(t, err)
}

func TestValidateReceivingAddress_Unsupported(t *testing.T) {
	err := ValidateReceivingAddress("whatever", "EUR")
	assert.Error(t, err)

	err = ValidateReceivingAddress("", "BTC")
	assert.Error(t, err)
}

func TestMaskCode(t *testing.T) {
	assert.Equal(t, "******", MaskCode("123456"))
	assert.Equal(t, "", MaskCode(""))
}
