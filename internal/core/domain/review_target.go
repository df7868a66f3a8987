package domain

// ReviewTarget is what a review dialog operates on. It is one of UnclassifiedTarget,
// ClassifiedTarget or SplitChildTarget; the unexported marker keeps the set closed.
type ReviewTarget interface {
	Transaction() BankTransaction
	isReviewTarget()
}

// UnclassifiedTarget is a bank transaction with no active classification.
type UnclassifiedTarget struct {
	Txn BankTransaction
}

// ClassifiedTarget is a transaction covered by exactly one active classification.
type ClassifiedTarget struct {
	Txn   BankTransaction
	Child ClassificationDetail
}

// SplitChildTarget is one active classification of a transaction that was split.
type SplitChildTarget struct {
	Txn   BankTransaction
	Child ClassificationDetail
}

func (t UnclassifiedTarget) Transaction() BankTransaction { return t.Txn }
func (t ClassifiedTarget) Transaction() BankTransaction   { return t.Txn }
func (t SplitChildTarget) Transaction() BankTransaction   { return t.Txn }

func (UnclassifiedTarget) isReviewTarget() {}
func (ClassifiedTarget) isReviewTarget()   {}
func (SplitChildTarget) isReviewTarget()   {}
