package application

import "loanreview-backend/internal/domain/apperr"

var ErrNotFound = apperr.NotFound("loan application not found")
