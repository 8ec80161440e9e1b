package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOSCRoundTripFloat(t *testing.T) {
	data := EncodeMessage("/layer/0/level", float32(0.5))
	addr, args, err := DecodeMessage(data)
	assert.NoError(t, err)
	assert.Equal(t, "/layer/0/level", addr)
	assert.Equal(t, []interface{}{float32(0.5)}, args)
}

func TestOSCRoundTripNoArgs(t *testing.T) {
	data := EncodeMessage("/layer/0/bump")
	addr, args, err := DecodeMessage(data)
	assert.NoError(t, err)
	assert.Equal(t, "/layer/0/bump", addr)
	assert.Empty(t, args)
}

func TestOSCRoundTripMixedArgs(t *testing.T) {
	data := EncodeMessage("/preset", int32(3), "warm", float32(1.0))
	addr, args, err := DecodeMessage(data)
	assert.NoError(t, err)
	assert.Equal(t, "/preset", addr)
	assert.Equal(t, []interface{}{int32(3), "warm", float32(1.0)}, args)
}

func TestOSCDecodeTruncatedMessageErrors(t *testing.T) {
	_, _, err := DecodeMessage([]byte{0x00})
	assert.Error(t, err)
}
