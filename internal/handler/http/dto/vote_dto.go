package dto

// ToggleVoteRequest is the POST body of the like endpoints. ID is a pointer
// so a missing field fails validation instead of defaulting to zero.
type ToggleVoteRequest struct {
	ID          *int64 `json:"id" binding:"required"`
	Fingerprint string `json:"fingerprint" binding:"required"`
}

// VoteStatusResponse is the GET response of the like endpoints.
type VoteStatusResponse struct {
	Like    int64 `json:"like"`
	IsLiked bool  `json:"isLiked"`
}

// ToggleVoteResponse is the POST response of the like endpoints.
type ToggleVoteResponse struct {
	Like   int64  `json:"like"`
	Action string `json:"action"`
}
