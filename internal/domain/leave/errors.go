package leave

import "errors"

var (
	ErrLeaveRequestNotFound   = errors.New("leave request not found")
	ErrLeaveAlreadyProcessed  = errors.New("leave request already processed")
	ErrLeaveNotApproved       = errors.New("leave request is not approved")
	ErrUnauthorizedAccess     = errors.New("unauthorized to access this leave request")
	ErrPartialMaterialization = errors.New("leave approved but not every day could be recorded")
	ErrFileSizeExceeds        = errors.New("attachment exceeds maximum size")
	ErrFileTypeNotAllowed     = errors.New("attachment file type not allowed")
)
