package types

const (
	// ModuleName defines the module name
	ModuleName = "dex"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName

	// LPDenomPrefix prefixes every LP share denom
	LPDenomPrefix = "lp"

	// PotAccountName derives the account collecting native-asset swap fees
	PotAccountName = "pot"
)
