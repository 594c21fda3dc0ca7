package records

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// MemoryRepo is an in-memory Repo for unit tests.
type MemoryRepo struct {
	mu     sync.Mutex
	nextID int64

	Docs         []RawDocument
	Transactions []BankTransaction
	Credit       map[int64]CreditReport
	Assets       []AssetLiabilityEntry
	Resumes      map[int64]ResumeAttributes
	Features     map[string]ApplicantFeatures
}

var _ Repo = (*MemoryRepo)(nil)

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		nextID:   1,
		Credit:   make(map[int64]CreditReport),
		Resumes:  make(map[int64]ResumeAttributes),
		Features: make(map[string]ApplicantFeatures),
	}
}

func (m *MemoryRepo) DeleteDocumentsBySource(ctx context.Context, filename string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := make(map[int64]bool)
	kept := m.Docs[:0]
	for _, doc := range m.Docs {
		if doc.Filename == filename {
			removed[doc.ID] = true
			continue
		}
		kept = append(kept, doc)
	}
	m.Docs = kept
	if len(removed) == 0 {
		return nil
	}

	txns := m.Transactions[:0]
	for _, txn := range m.Transactions {
		if !removed[txn.DocID] {
			txns = append(txns, txn)
		}
	}
	m.Transactions = txns

	assets := m.Assets[:0]
	for _, entry := range m.Assets {
		if !removed[entry.DocID] {
			assets = append(assets, entry)
		}
	}
	m.Assets = assets

	for id := range removed {
		delete(m.Credit, id)
		delete(m.Resumes, id)
	}
	return nil
}

func (m *MemoryRepo) InsertRawDocument(ctx context.Context, doc RawDocument) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc.ID = m.nextID
	m.nextID++
	doc.CreatedAt = time.Now().UTC()
	m.Docs = append(m.Docs, doc)
	return doc.ID, nil
}

func (m *MemoryRepo) InsertBankTransactions(ctx context.Context, txns []BankTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions = append(m.Transactions, txns...)
	return nil
}

func (m *MemoryRepo) UpsertCreditReport(ctx context.Context, report CreditReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Credit[report.DocID] = report
	return nil
}

func (m *MemoryRepo) InsertAssetLiabilityEntries(ctx context.Context, entries []AssetLiabilityEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Assets = append(m.Assets, entries...)
	return nil
}

func (m *MemoryRepo) UpsertResume(ctx context.Context, attrs ResumeAttributes) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Resumes[attrs.DocID] = attrs
	return nil
}

func (m *MemoryRepo) ListApplicantKeys(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	var keys []string
	for _, doc := range m.Docs {
		if !seen[doc.ApplicantKey] {
			seen[doc.ApplicantKey] = true
			keys = append(keys, doc.ApplicantKey)
		}
	}
	return keys, nil
}

func (m *MemoryRepo) ListDocumentsByApplicant(ctx context.Context, applicantKey string) ([]RawDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var docs []RawDocument
	for _, doc := range m.Docs {
		if doc.ApplicantKey == applicantKey {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (m *MemoryRepo) ListTransactionsByDocs(ctx context.Context, docIDs []int64) ([]BankTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := toSet(docIDs)
	var txns []BankTransaction
	for _, txn := range m.Transactions {
		if ids[txn.DocID] {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func (m *MemoryRepo) SumAssetValuesByDocs(ctx context.Context, docIDs []int64) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := toSet(docIDs)
	sum := decimal.Zero
	for _, entry := range m.Assets {
		if ids[entry.DocID] {
			sum = sum.Add(entry.Value)
		}
	}
	return sum, nil
}

func (m *MemoryRepo) FirstCreditScoreByDocs(ctx context.Context, docIDs []int64) (*int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range docIDs {
		if report, ok := m.Credit[id]; ok && report.CreditScore != nil {
			score := *report.CreditScore
			return &score, nil
		}
	}
	return nil, nil
}

func (m *MemoryRepo) ResumeByDocs(ctx context.Context, docIDs []int64) (*ResumeAttributes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range docIDs {
		if attrs, ok := m.Resumes[id]; ok {
			copied := attrs
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MemoryRepo) ReplaceApplicantFeatures(ctx context.Context, features ApplicantFeatures) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Features[features.ApplicantKey] = features
	return nil
}

func toSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
