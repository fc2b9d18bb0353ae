package types

// AMM event attribute keys
const (
	AttributeKeyAction            = "action"
	AttributeKeySender            = "sender"
	AttributeKeyReceiver          = "receiver"
	AttributeKeyOfferAsset        = "offer_asset"
	AttributeKeyAskAsset          = "ask_asset"
	AttributeKeyOfferAmount       = "offer_amount"
	AttributeKeyReturnAmount      = "return_amount"
	AttributeKeyTaxAmount         = "tax_amount"
	AttributeKeySpreadAmount      = "spread_amount"
	AttributeKeyCommissionAmount  = "commission_amount"
	AttributeKeyOperatorFeeAmount = "operator_fee_amount"
	AttributeKeyAssets            = "assets"
	AttributeKeyDonatedAssets     = "donated_assets"
	AttributeKeyShare             = "share"
	AttributeKeyWithdrawnShare    = "withdrawn_share"
	AttributeKeyRefundAssets      = "refund_assets"
	AttributeKeyPair              = "pair"
	AttributeKeyPairContractAddr  = "pair_contract_address"
	AttributeKeyLiquidityToken    = "liquidity_token_address"
	AttributeKeyCreator           = "creator"
	AttributeKeyPrefix            = "prefix"
	AttributeKeyStatus            = "status"
	AttributeKeyOperator          = "operator"
	AttributeKeyFrom              = "from"
	AttributeKeyTo                = "to"
	AttributeKeyAmount            = "amount"
	AttributeKeyMinter            = "minter"
	AttributeKeySpender           = "spender"
	AttributeKeyOwner             = "owner"
	AttributeKeyBy                = "by"
	AttributeKeyAddresses         = "addresses"
)

// Action attribute values
const (
	ActionProvideLiquidity     = "provide_liquidity"
	ActionWithdrawLiquidity    = "withdraw_liquidity"
	ActionSwap                 = "swap"
	ActionEnableWhitelist      = "enable_whitelist"
	ActionRegisterTrader       = "register_trader"
	ActionDeregisterTrader     = "deregister_trader"
	ActionRegisterWithdrawLp   = "register_withdraw_lp"
	ActionDeregisterWithdrawLp = "deregister_withdraw_lp"
	ActionUpdateOperator       = "update_operator"
	ActionCreatePair           = "create_pair"
	ActionRegisterPair         = "register"
	ActionAddPair              = "add_pair"
	ActionUpdateConfig         = "update_config"
	ActionAddCreator           = "add_creator"
	ActionRemoveCreator        = "remove_creator"
	ActionRestrictAsset        = "restrict_asset"
	ActionMigrate              = "migrate"
	ActionTransfer             = "transfer"
	ActionSend                 = "send"
	ActionMint                 = "mint"
	ActionBurn                 = "burn"
	ActionBurnFrom             = "burn_from"
	ActionTransferFrom         = "transfer_from"
	ActionIncreaseAllowance    = "increase_allowance"
	ActionDecreaseAllowance    = "decrease_allowance"
	ActionUpdateTaxRate        = "update_tax_rate"
	ActionUpdateTaxCap         = "update_tax_cap"
	ActionUpdateAdmin          = "update_admin"
)
