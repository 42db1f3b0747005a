package billing

import "math"

// CreditDraft is the resolver's intent to create a Credit row.
type CreditDraft struct {
	FromInvoiceToAccount bool
	TransferAmount       int64
}

// PaymentDraft is the resolver's intent to create a Payment row.
type PaymentDraft struct {
	Amount int64
}

// Settlement is the outcome of applying an account's credit balance to an
// invoice total. At most one of the sign paths produces rows: a positive
// total may yield a credit consumption and/or a payment, a negative total
// yields exactly one credit grant, and a zero total yields neither.
type Settlement struct {
	Credit     *CreditDraft
	Payment    *PaymentDraft
	NewBalance int64
}

// ResolveSettlement decides how an invoice total interacts with the account's
// credit balance. It is a pure function; the caller is responsible for
// invoking it against the balance read under the account lock.
//
// For a positive total, up to min(balance, total) is consumed from the
// balance as a credit transfer toward the invoice, and any remainder becomes
// a payment owed. For a negative total, the absolute value is granted back to
// the account as credit, saturating at math.MaxInt64. The returned balance is
// never negative; a corrupt negative input balance is treated as zero.
func ResolveSettlement(invoiceTotal, creditBalance int64) Settlement {
	if creditBalance < 0 {
		creditBalance = 0
	}

	switch {
	case invoiceTotal > 0:
		s := Settlement{NewBalance: creditBalance}
		remaining := invoiceTotal
		if creditBalance > 0 {
			consumed := creditBalance
			if remaining < consumed {
				consumed = remaining
			}
			s.Credit = &CreditDraft{FromInvoiceToAccount: false, TransferAmount: consumed}
			s.NewBalance = creditBalance - consumed
			remaining -= consumed
		}
		if remaining > 0 {
			s.Payment = &PaymentDraft{Amount: remaining}
		}
		return s

	case invoiceTotal < 0:
		// Negating math.MinInt64 would overflow back to itself; the grant
		// and the resulting balance both saturate at math.MaxInt64.
		grant := int64(math.MaxInt64)
		if invoiceTotal != math.MinInt64 {
			grant = -invoiceTotal
		}
		newBalance := int64(math.MaxInt64)
		if grant <= math.MaxInt64-creditBalance {
			newBalance = creditBalance + grant
		}
		return Settlement{
			Credit:     &CreditDraft{FromInvoiceToAccount: true, TransferAmount: grant},
			NewBalance: newBalance,
		}

	default:
		return Settlement{NewBalance: creditBalance}
	}
}
