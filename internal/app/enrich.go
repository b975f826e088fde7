/**
 * @description
 * The join/enrichment pipeline: given a batch of loan accounts, it derives
 * the distinct client and product keys referenced across the batch, fans out
 * the related fetches concurrently, and joins everything back by key into
 * enriched loans.
 *
 * @notes
 * - Each distinct key is fetched exactly once no matter how many loans
 *   reference it.
 * - Every fan-out goroutine writes only its own slot of a preallocated
 *   result slice; the maps are built after Wait, so there is no shared
 *   mutable state during the fetch window.
 * - A failed client/product fetch degrades to the "N/A" fallback entity and
 *   a failed transaction fetch to a 0 total; enrichment never fails a batch.
 */
package app

import (
	"context"
	"sync"

	"github.com/lendview/loan-proxy-service/internal/domain"
)

// enrichLoans joins each loan with its client, product, and disbursement
// total. An empty batch returns immediately with no upstream calls.
func (s *LoanService) enrichLoans(ctx context.Context, loans []domain.LoanAccount) []domain.EnrichedLoan {
	if len(loans) == 0 {
		return []domain.EnrichedLoan{}
	}

	clientKeys, productKeys := collectKeys(loans)

	var (
		wg       sync.WaitGroup
		totals   map[string]float64
		clients  map[string]domain.Client
		products map[string]domain.LoanProduct
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		totals = s.fetchDisbursementTotals(ctx, loans)
	}()
	go func() {
		defer wg.Done()
		clients = s.fetchClients(ctx, clientKeys)
	}()
	go func() {
		defer wg.Done()
		products = s.fetchProducts(ctx, productKeys)
	}()
	wg.Wait()

	return joinLoans(loans, clients, products, totals)
}

// collectKeys returns the distinct account-holder keys and product-type keys
// referenced by the batch, in first-seen order.
func collectKeys(loans []domain.LoanAccount) (clientKeys, productKeys []string) {
	seenClients := make(map[string]bool, len(loans))
	seenProducts := make(map[string]bool, len(loans))

	for _, loan := range loans {
		if !seenClients[loan.AccountHolderKey] {
			seenClients[loan.AccountHolderKey] = true
			clientKeys = append(clientKeys, loan.AccountHolderKey)
		}
		if !seenProducts[loan.ProductTypeKey] {
			seenProducts[loan.ProductTypeKey] = true
			productKeys = append(productKeys, loan.ProductTypeKey)
		}
	}
	return clientKeys, productKeys
}

// fetchDisbursementTotals computes the total disbursed amount per loan
// encoded key. Loans without a disbursement date are 0 with no call.
func (s *LoanService) fetchDisbursementTotals(ctx context.Context, loans []domain.LoanAccount) map[string]float64 {
	totals := make([]float64, len(loans))

	var wg sync.WaitGroup
	for i, loan := range loans {
		if !loan.Disbursed() {
			continue
		}
		wg.Add(1)
		go func(i int, loan domain.LoanAccount) {
			defer wg.Done()
			transactions, err := s.api.SearchLoanTransactions(ctx, domain.DisbursementSearch(loan.EncodedKey))
			if err != nil {
				s.logger.Error("failed to fetch disbursement transactions",
					"loanEncodedKey", loan.EncodedKey, "error", err)
				return
			}
			var sum float64
			for _, tx := range transactions {
				sum += tx.Amount
			}
			totals[i] = sum
		}(i, loan)
	}
	wg.Wait()

	byKey := make(map[string]float64, len(loans))
	for i, loan := range loans {
		byKey[loan.EncodedKey] = totals[i]
	}
	return byKey
}

// fetchClients fetches each distinct client once and keys the results by
// encoded key, substituting the fallback client on failure.
func (s *LoanService) fetchClients(ctx context.Context, keys []string) map[string]domain.Client {
	results := make([]domain.Client, len(keys))

	var wg sync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			client, err := s.api.GetClient(ctx, key)
			if err != nil {
				s.logger.Error("failed to fetch client", "encodedKey", key, "error", err)
				results[i] = domain.FallbackClient(key)
				return
			}
			results[i] = *client
		}(i, key)
	}
	wg.Wait()

	byKey := make(map[string]domain.Client, len(keys))
	for i, key := range keys {
		byKey[key] = results[i]
	}
	return byKey
}

// fetchProducts fetches each distinct loan product once and keys the results
// by encoded key, substituting the fallback product on failure.
func (s *LoanService) fetchProducts(ctx context.Context, keys []string) map[string]domain.LoanProduct {
	results := make([]domain.LoanProduct, len(keys))

	var wg sync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			product, err := s.api.GetLoanProduct(ctx, key)
			if err != nil {
				s.logger.Error("failed to fetch loan product", "encodedKey", key, "error", err)
				results[i] = domain.FallbackProduct(key)
				return
			}
			results[i] = *product
		}(i, key)
	}
	wg.Wait()

	byKey := make(map[string]domain.LoanProduct, len(keys))
	for i, key := range keys {
		byKey[key] = results[i]
	}
	return byKey
}

// joinLoans merges the fetched maps into the final enriched loans. Keys
// absent from a map fall back to the "N/A" defaults so every returned loan
// has fully populated client, product, and disbursement fields.
func joinLoans(loans []domain.LoanAccount, clients map[string]domain.Client, products map[string]domain.LoanProduct, totals map[string]float64) []domain.EnrichedLoan {
	enriched := make([]domain.EnrichedLoan, 0, len(loans))

	for _, loan := range loans {
		client, ok := clients[loan.AccountHolderKey]
		if !ok {
			client = domain.FallbackClient(loan.AccountHolderKey)
		}
		product, ok := products[loan.ProductTypeKey]
		if !ok {
			product = domain.FallbackProduct(loan.ProductTypeKey)
		}

		enriched = append(enriched, domain.EnrichedLoan{
			LoanAccount: loan,
			ClientDetails: domain.ClientDetails{
				ID:        client.ID,
				FirstName: client.FirstName,
				LastName:  client.LastName,
			},
			ProductDetails: domain.ProductDetails{
				ID:   product.ID,
				Name: product.Name,
			},
			TotalDisbursed: totals[loan.EncodedKey],
		})
	}
	return enriched
}
