package domain

import (
	"encoding/json"
	"testing"
)

func TestDisbursed(t *testing.T) {
	tests := []struct {
		name string
		loan LoanAccount
		want bool
	}{
		{name: "no details", loan: LoanAccount{}, want: false},
		{name: "details without date", loan: LoanAccount{DisbursementDetails: &DisbursementDetails{}}, want: false},
		{name: "details with date", loan: LoanAccount{DisbursementDetails: &DisbursementDetails{DisbursementDate: "2024-01-01"}}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loan.Disbursed(); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAvailableBalance_NilBalancesIsZero(t *testing.T) {
	if got := (DepositAccount{}).AvailableBalance(); got != 0 {
		t.Fatalf("expected 0, got %f", got)
	}
}

func TestFallbackClient_PreservesKey(t *testing.T) {
	client := FallbackClient("C1")
	if client.EncodedKey != "C1" {
		t.Fatalf("expected key to be preserved, got %q", client.EncodedKey)
	}
	if client.ID != FallbackFieldValue || client.FirstName != FallbackFieldValue || client.LastName != FallbackFieldValue {
		t.Fatalf("expected all fields to be %q, got %+v", FallbackFieldValue, client)
	}
}

func TestDisbursementSearch_FilterShape(t *testing.T) {
	req := DisbursementSearch("L1")

	if len(req.FilterCriteria) != 3 {
		t.Fatalf("expected 3 filters, got %d", len(req.FilterCriteria))
	}
	if req.FilterCriteria[0].Field != "parentAccountKey" || req.FilterCriteria[0].Value != "L1" {
		t.Fatalf("unexpected parent filter: %+v", req.FilterCriteria[0])
	}
	if req.FilterCriteria[1].Value != TransactionTypeDisbursement {
		t.Fatalf("unexpected type filter: %+v", req.FilterCriteria[1])
	}
	if req.FilterCriteria[2].Field != "wasAdjusted" || req.FilterCriteria[2].Value != false {
		t.Fatalf("unexpected adjusted filter: %+v", req.FilterCriteria[2])
	}
	if req.SortingCriteria == nil || req.SortingCriteria.Field != "id" || req.SortingCriteria.Order != SortOrderAsc {
		t.Fatalf("unexpected sorting: %+v", req.SortingCriteria)
	}
}

func TestEnrichedLoan_FlattensLoanFields(t *testing.T) {
	loan := EnrichedLoan{
		LoanAccount: LoanAccount{
			EncodedKey:       "L1",
			ID:               "LOAN-1",
			AccountHolderKey: "C1",
			ProductTypeKey:   "P1",
			AccountState:     "PENDING_APPROVAL",
		},
		ClientDetails:  ClientDetails{ID: "42", FirstName: "Ada", LastName: "Lovelace"},
		ProductDetails: ProductDetails{ID: "p1", Name: "Term Loan"},
		TotalDisbursed: 150,
	}

	raw, err := json.Marshal(loan)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	// Loan fields sit at the top level beside the enrichment blocks, the
	// way the front-end table reads them.
	if payload["encodedKey"] != "L1" || payload["accountState"] != "PENDING_APPROVAL" {
		t.Fatalf("expected embedded loan fields at top level, got %v", payload)
	}
	if _, ok := payload["clientDetails"]; !ok {
		t.Fatal("expected clientDetails block")
	}
	if payload["totalDisbursed"] != 150.0 {
		t.Fatalf("expected totalDisbursed 150, got %v", payload["totalDisbursed"])
	}
}
