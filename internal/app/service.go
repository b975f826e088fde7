/**
 * @description
 * This file contains the core business logic for the loan-proxy-service,
 * implemented as a `LoanService`. It orchestrates the Mambu API calls behind
 * the two proxy routes: the aggregated loan search and the loan state change.
 *
 * @notes
 * - This service layer keeps the API handlers (controllers) thin and focused
 *   on HTTP concerns, while the orchestration logic remains independent.
 * - The loan search and the deposit balance fetch are independent, so they
 *   run concurrently; a balance failure never fails the loan path.
 */
package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lendview/loan-proxy-service/internal/domain"
)

// LendingAPI defines the Mambu operations the service depends on. It is
// implemented by mambuclient.Client.
type LendingAPI interface {
	SearchLoans(ctx context.Context, req domain.SearchRequest) ([]domain.LoanAccount, error)
	SearchLoanTransactions(ctx context.Context, req domain.SearchRequest) ([]domain.LoanTransaction, error)
	GetClient(ctx context.Context, encodedKey string) (*domain.Client, error)
	GetLoanProduct(ctx context.Context, encodedKey string) (*domain.LoanProduct, error)
	GetDepositAccount(ctx context.Context, accountID string) (*domain.DepositAccount, error)
	ChangeLoanState(ctx context.Context, loanID string, req domain.ChangeStateRequest) (*domain.UpstreamResult, error)
}

// LoanService provides the aggregated loan search and state-change operations.
type LoanService struct {
	api              LendingAPI
	depositAccountID string
	logger           *slog.Logger
}

// NewLoanService creates a new instance of LoanService.
func NewLoanService(api LendingAPI, depositAccountID string, logger *slog.Logger) *LoanService {
	return &LoanService{
		api:              api,
		depositAccountID: depositAccountID,
		logger:           logger,
	}
}

// SearchLoans runs the upstream loan search and the funding account balance
// fetch concurrently, enriches the result set, and assembles the aggregate
// response. The balance is 0 when its fetch fails; the loan search failing
// fails the whole call.
func (s *LoanService) SearchLoans(ctx context.Context, req domain.SearchRequest) (*domain.SearchLoansResult, error) {
	if req.SortingCriteria == nil {
		req.SortingCriteria = domain.DefaultSorting()
	}

	var (
		wg       sync.WaitGroup
		loans    []domain.LoanAccount
		loansErr error
		balance  float64
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		loans, loansErr = s.api.SearchLoans(ctx, req)
	}()
	go func() {
		defer wg.Done()
		account, err := s.api.GetDepositAccount(ctx, s.depositAccountID)
		if err != nil {
			// Balance failure is non-fatal; the caller sees 0.
			s.logger.Error("failed to fetch deposit account balance",
				"accountId", s.depositAccountID, "error", err)
			return
		}
		balance = account.AvailableBalance()
	}()
	wg.Wait()

	if loansErr != nil {
		return nil, loansErr
	}

	enriched := s.enrichLoans(ctx, loans)

	return &domain.SearchLoansResult{
		Loans:                 enriched,
		DepositAccountBalance: balance,
	}, nil
}

// ChangeLoanState forwards an approve/reject action for one loan to Mambu
// and returns the upstream response untouched.
func (s *LoanService) ChangeLoanState(ctx context.Context, loanID, action, notes string) (*domain.UpstreamResult, error) {
	s.logger.Info("forwarding loan state change", "loanId", loanID, "action", action)

	return s.api.ChangeLoanState(ctx, loanID, domain.ChangeStateRequest{
		Action: action,
		Notes:  notes,
	})
}
