package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"policytrack/internal/domain/entity"
	"policytrack/internal/handler/http/dto"
	"policytrack/internal/usecase"
	usecasecontract "policytrack/internal/usecase/contract"
	"policytrack/internal/utils"
)

// VoteHandler serves the like endpoints for both subject kinds. The policy
// and campaign routes share this one implementation, parameterized by the
// subject type.
type VoteHandler struct {
	voteUsecase usecasecontract.IVoteUseCase
	logger      usecasecontract.IAppLogger
}

// NewVoteHandler creates a new VoteHandler.
func NewVoteHandler(voteUsecase usecasecontract.IVoteUseCase, logger usecasecontract.IAppLogger) *VoteHandler {
	return &VoteHandler{
		voteUsecase: voteUsecase,
		logger:      logger,
	}
}

// GetPolicyLike handles GET /api/policylike.
func (h *VoteHandler) GetPolicyLike(c *gin.Context) {
	h.getStatus(c, entity.SubjectTypePolicy)
}

// TogglePolicyLike handles POST /api/policylike.
func (h *VoteHandler) TogglePolicyLike(c *gin.Context) {
	h.toggle(c, entity.SubjectTypePolicy)
}

// GetCampaignLike handles GET /api/campaignlike.
func (h *VoteHandler) GetCampaignLike(c *gin.Context) {
	h.getStatus(c, entity.SubjectTypeCampaign)
}

// ToggleCampaignLike handles POST /api/campaignlike.
func (h *VoteHandler) ToggleCampaignLike(c *gin.Context) {
	h.toggle(c, entity.SubjectTypeCampaign)
}

func (h *VoteHandler) getStatus(c *gin.Context, subjectType entity.SubjectType) {
	idParam := c.Query("id")
	if idParam == "" {
		ErrorHandler(c, http.StatusBadRequest, "Missing "+strings.ToLower(string(subjectType))+" id")
		return
	}
	subjectID, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid "+strings.ToLower(string(subjectType))+" id")
		return
	}
	fingerprint := c.Query("fingerprint")
	client := utils.ClientInfoFromRequest(c.Request)

	status, err := h.voteUsecase.VoteStatus(c.Request.Context(), subjectType, subjectID, fingerprint, client)
	if err != nil {
		h.writeVoteError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.VoteStatusResponse{Like: status.Like, IsLiked: status.IsLiked})
}

func (h *VoteHandler) toggle(c *gin.Context, subjectType entity.SubjectType) {
	var req dto.ToggleVoteRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	client := utils.ClientInfoFromRequest(c.Request)

	receipt, err := h.voteUsecase.ToggleVote(c.Request.Context(), subjectType, *req.ID, req.Fingerprint, client)
	if err != nil {
		h.writeVoteError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToggleVoteResponse{Like: receipt.Like, Action: string(receipt.Action)})
}

// GetAbuseReports handles GET /api/abusereports, the review surface for
// rejected vote attempts.
func (h *VoteHandler) GetAbuseReports(c *gin.Context) {
	limit := int64(50)
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.ParseInt(limitParam, 10, 64)
		if err != nil || parsed < 1 {
			ErrorHandler(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	reports, err := h.voteUsecase.RecentAbuseReports(c.Request.Context(), limit)
	if err != nil {
		h.writeVoteError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, reports)
}

// writeVoteError maps usecase sentinels to HTTP statuses. Anything outside
// the taxonomy is logged server-side and reported as a generic failure.
func (h *VoteHandler) writeVoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrRateLimited), errors.Is(err, usecase.ErrCooldownActive):
		ErrorHandler(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, usecase.ErrNetworkAlreadyVoted), errors.Is(err, usecase.ErrSuspiciousActivity):
		ErrorHandler(c, http.StatusForbidden, err.Error())
	default:
		h.logger.Errorf("vote request failed: %v", err)
		ErrorHandler(c, http.StatusInternalServerError, "Internal server error")
	}
}
