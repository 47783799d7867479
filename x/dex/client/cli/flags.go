package cli

// Flag constants for dex CLI commands
const (
	// Message flags
	FlagFrom      = "from"
	FlagRecipient = "recipient"
	FlagDeadline  = "deadline"

	// Slippage flags
	FlagAmountAMin = "amount-a-min"
	FlagAmountBMin = "amount-b-min"

	// Protocol fee flags
	FlagFeePoint = "fee-point"
)
