package types

import (
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the contract host module name
	ModuleName = "contracts"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

var (
	// ContractInfoKeyPrefix is the prefix for contract metadata records
	ContractInfoKeyPrefix = []byte{0x01}

	// ContractStoreKeyPrefix is the prefix for per-instance contract storage
	ContractStoreKeyPrefix = []byte{0x02}

	// InstanceSeqKey holds the next instance sequence number
	InstanceSeqKey = []byte{0x03}
)

// GetContractInfoKey returns the store key for a contract's metadata
func GetContractInfoKey(contract []byte) []byte {
	return append(append([]byte{}, ContractInfoKeyPrefix...), address.MustLengthPrefix(contract)...)
}

// GetContractStorePrefix returns the prefix under which a contract keeps its own state
func GetContractStorePrefix(contract []byte) []byte {
	return append(append([]byte{}, ContractStoreKeyPrefix...), address.MustLengthPrefix(contract)...)
}
