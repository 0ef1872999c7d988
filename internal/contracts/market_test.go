package contracts

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func encodeListingReturn(seller string, price int64) []byte {
	out := make([]byte, 0, 64)
	out = append(out, common.LeftPadBytes(common.HexToAddress(seller).Bytes(), 32)...)
	out = append(out, common.LeftPadBytes(big.NewInt(price).Bytes(), 32)...)
	return out
}

func TestDecodeListing(t *testing.T) {
	seller := "0x3333333333333333333333333333333333333333"

	listing, err := DecodeListing(encodeListingReturn(seller, 5000))
	if err != nil {
		t.Fatalf("DecodeListing() unexpected error = %v", err)
	}
	if listing == nil {
		t.Fatal("DecodeListing() = nil, want listing")
	}
	if listing.Seller != common.HexToAddress(seller).Hex() {
		t.Errorf("Seller = %s", listing.Seller)
	}
	if listing.PriceWei.Int64() != 5000 {
		t.Errorf("PriceWei = %s, want 5000", listing.PriceWei)
	}
}

func TestDecodeListing_ZeroSellerMeansNotListed(t *testing.T) {
	listing, err := DecodeListing(encodeListingReturn("0x0000000000000000000000000000000000000000", 0))
	if err != nil {
		t.Fatalf("DecodeListing() unexpected error = %v", err)
	}
	if listing != nil {
		t.Errorf("DecodeListing() = %+v, want nil for zero seller", listing)
	}
}

func TestDecodeListing_ShortReturn(t *testing.T) {
	if _, err := DecodeListing(make([]byte, 32)); err == nil {
		t.Error("DecodeListing() expected error for short return")
	}
}

func TestListItemCallData_Layout(t *testing.T) {
	data := ListItemCallData(big.NewInt(7), big.NewInt(1000))
	if len(data) != 4+2*32 {
		t.Fatalf("call data length = %d", len(data))
	}
	if got := new(big.Int).SetBytes(data[4:36]); got.Int64() != 7 {
		t.Errorf("tokenId word = %s, want 7", got)
	}
	if got := new(big.Int).SetBytes(data[36:]); got.Int64() != 1000 {
		t.Errorf("price word = %s, want 1000", got)
	}
}

func TestSetApprovalForAllCallData_BoolEncoding(t *testing.T) {
	data := SetApprovalForAllCallData("0x9C41e6F02a7d85B3c0A7E9b64D12F5a8E3B60D27", true)
	if len(data) != 4+2*32 {
		t.Fatalf("call data length = %d", len(data))
	}
	if data[len(data)-1] != 1 {
		t.Error("approved word should encode true as 1")
	}

	data = SetApprovalForAllCallData("0x9C41e6F02a7d85B3c0A7E9b64D12F5a8E3B60D27", false)
	if data[len(data)-1] != 0 {
		t.Error("approved word should encode false as 0")
	}
}
