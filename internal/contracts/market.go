package contracts

import "math/big"

// Marketplace and NFT collection selectors.
//
//nolint:gochecknoglobals // contract constants
var (
	listItemSelector          = selector("listItem(uint256,uint256)")
	buyItemSelector           = selector("buyItem(uint256)")
	listingsSelector          = selector("listings(uint256)")
	isApprovedForAllSelector  = selector("isApprovedForAll(address,address)")
	setApprovalForAllSelector = selector("setApprovalForAll(address,bool)")
	ownerOfSelector           = selector("ownerOf(uint256)")
)

// Listing is the seller/price pair for a listed token.
type Listing struct {
	Seller   string
	PriceWei *big.Int
}

// ListItemCallData builds the call data for listItem(tokenId, price).
func ListItemCallData(tokenID, priceWei *big.Int) []byte {
	return encodeCall(listItemSelector, uintWord(tokenID), uintWord(priceWei))
}

// BuyItemCallData builds the call data for buyItem(tokenId).
func BuyItemCallData(tokenID *big.Int) []byte {
	return encodeCall(buyItemSelector, uintWord(tokenID))
}

// ListingsCallData builds the call data for listings(tokenId).
func ListingsCallData(tokenID *big.Int) []byte {
	return encodeCall(listingsSelector, uintWord(tokenID))
}

// DecodeListing decodes a listings(tokenId) return. A zero seller address
// means the token has never been listed and decodes to nil.
func DecodeListing(result []byte) (*Listing, error) {
	words, err := splitWords(result, 2)
	if err != nil {
		return nil, err
	}

	seller := DecodeAddress(words[0])
	if IsZeroAddress(seller) {
		return nil, nil
	}

	return &Listing{
		Seller:   seller,
		PriceWei: new(big.Int).SetBytes(words[1]),
	}, nil
}

// IsApprovedForAllCallData builds the call data for
// isApprovedForAll(owner, operator).
func IsApprovedForAllCallData(owner, operator string) []byte {
	return encodeCall(isApprovedForAllSelector, addressWord(owner), addressWord(operator))
}

// SetApprovalForAllCallData builds the call data for
// setApprovalForAll(operator, approved).
func SetApprovalForAllCallData(operator string, approved bool) []byte {
	return encodeCall(setApprovalForAllSelector, addressWord(operator), boolWord(approved))
}

// OwnerOfCallData builds the call data for ownerOf(tokenId).
func OwnerOfCallData(tokenID *big.Int) []byte {
	return encodeCall(ownerOfSelector, uintWord(tokenID))
}
