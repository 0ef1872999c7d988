// Package contracts provides minimal call-data codecs for exactly the
// contract methods the core invokes. It is deliberately decoupled from any
// full contract ABI so unused surface cannot leak in.
package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	coreerr "github.com/somniflow/somniflow/pkg/errors"
)

// wordSize is the ABI word width in bytes.
const wordSize = 32

// selector returns the 4-byte function selector for a canonical signature.
func selector(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4]
}

// eventTopic returns the 32-byte topic hash for a canonical event signature.
func eventTopic(signature string) common.Hash {
	return common.BytesToHash(crypto.Keccak256([]byte(signature)))
}

// encodeCall builds call data from a selector and 32-byte-padded arguments.
func encodeCall(sel []byte, words ...[]byte) []byte {
	data := make([]byte, 0, len(sel)+len(words)*wordSize)
	data = append(data, sel...)
	for _, w := range words {
		data = append(data, common.LeftPadBytes(w, wordSize)...)
	}
	return data
}

// addressWord pads an address to a 32-byte argument.
func addressWord(addr string) []byte {
	return common.HexToAddress(addr).Bytes()
}

// uintWord pads a big integer to a 32-byte argument.
func uintWord(v *big.Int) []byte {
	if v == nil {
		return []byte{}
	}
	return v.Bytes()
}

// boolWord encodes a bool as a 32-byte argument.
func boolWord(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeUint256 decodes a single uint256 return value. A short or empty
// result decodes as zero, matching node behavior for empty returns.
func DecodeUint256(result []byte) *big.Int {
	if len(result) < wordSize {
		return new(big.Int).SetBytes(result)
	}
	return new(big.Int).SetBytes(result[:wordSize])
}

// DecodeAddress decodes an address return value from an ABI word.
func DecodeAddress(word []byte) string {
	return common.BytesToAddress(word).Hex()
}

// DecodeBool decodes a bool return value.
func DecodeBool(result []byte) bool {
	return DecodeUint256(result).Sign() != 0
}

// splitWords slices an ABI-encoded return into 32-byte words and verifies the
// expected count.
func splitWords(result []byte, want int) ([][]byte, error) {
	if len(result) < want*wordSize {
		return nil, coreerr.WithDetails(coreerr.ErrRPC, map[string]string{
			"reason": "short contract return",
		})
	}

	words := make([][]byte, want)
	for i := 0; i < want; i++ {
		words[i] = result[i*wordSize : (i+1)*wordSize]
	}
	return words, nil
}

// IsZeroAddress reports whether an address string is the zero address.
func IsZeroAddress(addr string) bool {
	return common.HexToAddress(addr) == (common.Address{})
}
