package discount

import "errors"

var (
	ErrNotFound   = errors.New("discount not found")
	ErrValidation = errors.New("discount validation error")
)

// Reason identifies which eligibility check rejected a code. The checks run
// in a fixed order and short-circuit, so the reason is deterministic.
type Reason string

const (
	ReasonInactive           Reason = "Inactive"
	ReasonNotStarted         Reason = "NotStarted"
	ReasonExpired            Reason = "Expired"
	ReasonUsageLimitExceeded Reason = "UsageLimitExceeded"
	ReasonMinAmountNotMet    Reason = "MinAmountNotMet"
	ReasonRoomNotApplicable  Reason = "RoomNotApplicable"
	ReasonUserLimitExceeded  Reason = "UserLimitExceeded"
	ReasonUserNotApplicable  Reason = "UserNotApplicable"
	ReasonDateExcluded       Reason = "DateExcluded"
	ReasonDateBlackout       Reason = "DateBlackout"
)
