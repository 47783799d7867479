package types

// Event types for the DEX module
const (
	// Liquidity Events
	EventTypeLiquidityAdded   = "liquidity_added"
	EventTypeLiquidityRemoved = "liquidity_removed"

	// Swap Events
	EventTypeAssetSwap = "asset_swap"

	// Bootstrap Events
	EventTypeBootstrapContribute = "bootstrap_contribute"
	EventTypeBootstrapEnd        = "bootstrap_end"
	EventTypeBootstrapClaim      = "bootstrap_claim"
	EventTypeBootstrapRefund     = "bootstrap_refund"
	EventTypeDistributeReward    = "distribute_reward"
	EventTypeBootstrapCreated    = "bootstrap_created"
	EventTypeBootstrapUpdated    = "bootstrap_updated"
	EventTypeChargeReward        = "charge_reward"
	EventTypeWithdrawReward      = "withdraw_reward"

	// Admin Events
	EventTypePairCreated    = "pair_created"
	EventTypeFeeMetaUpdated = "fee_meta_updated"
)

// Event attribute keys
const (
	AttributeKeyPair           = "pair"
	AttributeKeyAsset0         = "asset_0"
	AttributeKeyAsset1         = "asset_1"
	AttributeKeyAmount0        = "amount_0"
	AttributeKeyAmount1        = "amount_1"
	AttributeKeyLiquidity      = "liquidity"
	AttributeKeyOwner          = "owner"
	AttributeKeyRecipient      = "recipient"
	AttributeKeyPath           = "path"
	AttributeKeyAmounts        = "amounts"
	AttributeKeyTotalLiquidity = "total_liquidity"
	AttributeKeyTarget         = "target_supply"
	AttributeKeyCapacity       = "capacity_supply"
	AttributeKeyAccumulated    = "accumulated_supply"
	AttributeKeyEndBlock       = "end_block"
	AttributeKeyRewards        = "rewards"
	AttributeKeyFeeReceiver    = "fee_receiver"
	AttributeKeyFeePoint       = "fee_point"
)
