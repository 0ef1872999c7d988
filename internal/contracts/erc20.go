package contracts

import "math/big"

// ERC20 function selectors, computed from canonical signatures.
//
//nolint:gochecknoglobals // ERC20 constants
var (
	erc20AllowanceSelector = selector("allowance(address,address)")
	erc20ApproveSelector   = selector("approve(address,uint256)")
)

// AllowanceCallData builds the call data for allowance(owner, spender).
func AllowanceCallData(owner, spender string) []byte {
	return encodeCall(erc20AllowanceSelector, addressWord(owner), addressWord(spender))
}

// ApproveCallData builds the call data for approve(spender, amount).
func ApproveCallData(spender string, amount *big.Int) []byte {
	return encodeCall(erc20ApproveSelector, addressWord(spender), uintWord(amount))
}
