/**
 * @description
 * This file defines the Go structs that map to the Mambu v2 search API
 * payloads shared by the loans and loan-transactions search endpoints,
 * plus the state-change request and the raw upstream result used for
 * verbatim relay.
 *
 * @notes
 * - Mambu search bodies are the same shape for every resource: a list of
 *   filter criteria and a single optional sorting criteria.
 */
package domain

import "encoding/json"

// Mambu filter operators and transaction types used by this service.
const (
	OperatorEqualsCaseSensitive = "EQUALS_CASE_SENSITIVE"

	TransactionTypeDisbursement = "DISBURSEMENT"

	SortOrderAsc = "ASC"
)

// FilterCriterion is a single Mambu search filter clause.
type FilterCriterion struct {
	Field    string      `json:"field"`
	Operator string      `json:"operator"`
	Value    interface{} `json:"value"`
}

// SortingCriteria orders a Mambu search result set by one field.
type SortingCriteria struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// SearchRequest is the body for Mambu `:search` endpoints
// (loans:search and loans/transactions:search).
type SearchRequest struct {
	FilterCriteria  []FilterCriterion `json:"filterCriteria"`
	SortingCriteria *SortingCriteria  `json:"sortingCriteria,omitempty"`
}

// DefaultSorting returns the sorting applied when a caller omits it.
func DefaultSorting() *SortingCriteria {
	return &SortingCriteria{Field: "id", Order: SortOrderAsc}
}

// DisbursementSearch builds the transaction search that selects the
// non-adjusted DISBURSEMENT transactions of one loan account.
func DisbursementSearch(loanEncodedKey string) SearchRequest {
	return SearchRequest{
		FilterCriteria: []FilterCriterion{
			{Field: "parentAccountKey", Operator: OperatorEqualsCaseSensitive, Value: loanEncodedKey},
			{Field: "type", Operator: OperatorEqualsCaseSensitive, Value: TransactionTypeDisbursement},
			{Field: "wasAdjusted", Operator: OperatorEqualsCaseSensitive, Value: false},
		},
		SortingCriteria: DefaultSorting(),
	}
}

// ChangeStateRequest is the body for `POST /loans/{id}:changeState`.
type ChangeStateRequest struct {
	Action string `json:"action"`
	Notes  string `json:"notes"`
}

// UpstreamResult carries a raw Mambu response for verbatim relay to the
// caller: the status code and the unparsed JSON body.
type UpstreamResult struct {
	Status int
	Body   json.RawMessage
}
