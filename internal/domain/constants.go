package domain

// Currency is the single settlement currency for the whole platform.
const Currency = "USD"

// Wallet transaction types.
const (
	TxTypeDeposit         = "deposit"
	TxTypeWithdrawal      = "withdrawal"
	TxTypeEscrowDeposit   = "escrow_deposit"
	TxTypeEscrowRelease   = "escrow_release"
	TxTypeEscrowRefund    = "escrow_refund"
	TxTypeShippingPayment = "shipping_payment"
	TxTypeTradeFee        = "trade_fee"
	TxTypeRefund          = "refund"
)

// Wallet transaction statuses.
const (
	TxStatusPending    = "pending"
	TxStatusProcessing = "processing"
	TxStatusCompleted  = "completed"
	TxStatusFailed     = "failed"
	TxStatusCancelled  = "cancelled"
	TxStatusRefunded   = "refunded"
)

// Payment method types.
const (
	PaymentMethodCard        = "card"
	PaymentMethodPayPal      = "paypal"
	PaymentMethodBankAccount = "bank_account"
)

// txTransitions is the allowed status graph. Terminal states have no outgoing
// edges except completed -> refunded (driven by the refund operation only).
var txTransitions = map[string][]string{
	TxStatusPending:    {TxStatusProcessing, TxStatusCompleted, TxStatusFailed, TxStatusCancelled},
	TxStatusProcessing: {TxStatusCompleted, TxStatusFailed},
	TxStatusCompleted:  {TxStatusRefunded},
}

// CanTransition reports whether a transaction may move from one status to another.
func CanTransition(from, to string) bool {
	for _, s := range txTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether a status admits no further transition other
// than the single completed -> refunded edge.
func IsTerminalStatus(status string) bool {
	switch status {
	case TxStatusFailed, TxStatusCancelled, TxStatusRefunded:
		return true
	}
	return false
}
