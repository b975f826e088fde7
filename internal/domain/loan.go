/**
 * @description
 * This file defines the Mambu loan domain entities consumed by the proxy:
 * loan accounts, clients, loan products, loan transactions, and deposit
 * accounts, together with the enriched projections returned to the
 * front-end.
 *
 * @notes
 * - Fallback constructors produce the documented "N/A" shapes so every
 *   failure path yields a statically known struct instead of an ad-hoc
 *   literal.
 * - All of these are request-scoped; nothing here is persisted.
 */
package domain

// FallbackFieldValue is substituted for client and product fields whose
// fetch failed or whose key was never referenced.
const FallbackFieldValue = "N/A"

// DisbursementDetails holds the disbursement portion of a loan account.
// A loan with no disbursement date has never been disbursed.
type DisbursementDetails struct {
	DisbursementDate string `json:"disbursementDate,omitempty"`
}

// LoanBalances holds the balance figures of a loan account.
type LoanBalances struct {
	PrincipalBalance float64 `json:"principalBalance"`
	PrincipalPaid    float64 `json:"principalPaid"`
}

// LoanAccount is a Mambu loan account as returned by loans:search.
type LoanAccount struct {
	EncodedKey          string               `json:"encodedKey"`
	ID                  string               `json:"id"`
	LoanName            string               `json:"loanName,omitempty"`
	AccountHolderKey    string               `json:"accountHolderKey"`
	ProductTypeKey      string               `json:"productTypeKey"`
	AccountState        string               `json:"accountState,omitempty"`
	LoanAmount          float64              `json:"loanAmount,omitempty"`
	DisbursementDetails *DisbursementDetails `json:"disbursementDetails,omitempty"`
	Balances            *LoanBalances        `json:"balances,omitempty"`
}

// Disbursed reports whether the loan has a disbursement date, i.e. whether
// a disbursement-transaction lookup is warranted at all.
func (l LoanAccount) Disbursed() bool {
	return l.DisbursementDetails != nil && l.DisbursementDetails.DisbursementDate != ""
}

// Client is the minimal Mambu client entity fetched per account holder.
type Client struct {
	ID         string `json:"id"`
	EncodedKey string `json:"encodedKey"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
}

// FallbackClient returns the substitute client used when the fetch for the
// given encoded key failed. The key is preserved so map lookups still hit.
func FallbackClient(encodedKey string) Client {
	return Client{
		ID:         FallbackFieldValue,
		EncodedKey: encodedKey,
		FirstName:  FallbackFieldValue,
		LastName:   FallbackFieldValue,
	}
}

// LoanProduct is the minimal Mambu loan product entity.
type LoanProduct struct {
	ID         string `json:"id"`
	EncodedKey string `json:"encodedKey"`
	Name       string `json:"name"`
}

// FallbackProduct returns the substitute product for a failed fetch.
func FallbackProduct(encodedKey string) LoanProduct {
	return LoanProduct{
		ID:         FallbackFieldValue,
		EncodedKey: encodedKey,
		Name:       FallbackFieldValue,
	}
}

// LoanTransaction is a single entry from loans/transactions:search. Only
// the amount participates in the disbursement total.
type LoanTransaction struct {
	ID     int64   `json:"id,omitempty"`
	Type   string  `json:"type,omitempty"`
	Amount float64 `json:"amount"`
}

// DepositBalances holds the balance block of a deposit account.
type DepositBalances struct {
	AvailableBalance float64 `json:"availableBalance"`
}

// DepositAccount is the funding deposit account whose available balance is
// attached to every search response.
type DepositAccount struct {
	Balances *DepositBalances `json:"balances,omitempty"`
}

// AvailableBalance returns the available balance, or 0 when the upstream
// payload carried no balances block.
func (d DepositAccount) AvailableBalance() float64 {
	if d.Balances == nil {
		return 0
	}
	return d.Balances.AvailableBalance
}

// ClientDetails is the client projection embedded in an enriched loan.
type ClientDetails struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ProductDetails is the product projection embedded in an enriched loan.
type ProductDetails struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EnrichedLoan is a loan account joined with its client, product, and
// computed disbursement total. This is the unit the front-end renders.
type EnrichedLoan struct {
	LoanAccount
	ClientDetails  ClientDetails  `json:"clientDetails"`
	ProductDetails ProductDetails `json:"productDetails"`
	TotalDisbursed float64        `json:"totalDisbursed"`
}

// SearchLoansResult is the aggregate payload of /api/loans-search.
type SearchLoansResult struct {
	Loans                 []EnrichedLoan `json:"loans"`
	DepositAccountBalance float64        `json:"depositAccountBalance"`
}
