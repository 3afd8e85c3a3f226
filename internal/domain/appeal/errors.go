package appeal

import "loanreview-backend/internal/domain/apperr"

var (
	ErrNotFound          = apperr.NotFound("appeal not found")
	ErrAlreadyReviewed   = apperr.Precondition("appeal already reviewed")
	ErrLoanNotRejected   = apperr.Precondition("only rejected applications can be appealed")
	ErrAppealAlreadyOpen = apperr.Precondition("an appeal for this application is already pending")
)
