package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"policytrack/internal/domain/entity"
	handler "policytrack/internal/handler/http"
	"policytrack/internal/handler/http/mocks"
	"policytrack/internal/infrastructure/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(h *handler.VoteHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	r.GET("/api/policylike", h.GetPolicyLike)
	r.POST("/api/policylike", h.TogglePolicyLike)
	r.GET("/api/campaignlike", h.GetCampaignLike)
	r.POST("/api/campaignlike", h.ToggleCampaignLike)
	r.GET("/api/abusereports", h.GetAbuseReports)
	return r
}

func newHandler(mockUsecase *mocks.MockVoteUsecase) *handler.VoteHandler {
	return handler.NewVoteHandler(mockUsecase, logger.NewStdLogger())
}

func postToggle(r *gin.Engine, path string, payload map[string]interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.10, 10.0.0.1")
	req.Header.Set("User-Agent", "test-agent")
	r.ServeHTTP(w, req)
	return w
}

func TestGetPolicyLike(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	mockUsecase.MockStatus = entity.VoteStatus{Like: 5, IsLiked: true}
	r := setupRouter(newHandler(mockUsecase))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/policylike?id=42&fingerprint=abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"like": 5, "isLiked": true}`, w.Body.String())
	assert.Equal(t, entity.SubjectTypePolicy, mockUsecase.LastSubjectType)
	assert.Equal(t, int64(42), mockUsecase.LastSubjectID)
	assert.Equal(t, "abc", mockUsecase.LastFingerprint)
}

func TestGetPolicyLike_MissingID(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	r := setupRouter(newHandler(mockUsecase))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/policylike", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing policy id")
}

func TestGetPolicyLike_InvalidID(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	r := setupRouter(newHandler(mockUsecase))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/policylike?id=not-a-number", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid policy id")
}

func TestGetCampaignLike(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	mockUsecase.MockStatus = entity.VoteStatus{Like: 2, IsLiked: false}
	r := setupRouter(newHandler(mockUsecase))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/campaignlike?id=7", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"like": 2, "isLiked": false}`, w.Body.String())
	assert.Equal(t, entity.SubjectTypeCampaign, mockUsecase.LastSubjectType)
	assert.Equal(t, "", mockUsecase.LastFingerprint)
}

func TestTogglePolicyLike(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	mockUsecase.MockReceipt = entity.VoteReceipt{Like: 1, Action: entity.VoteActionLiked}
	r := setupRouter(newHandler(mockUsecase))

	w := postToggle(r, "/api/policylike", map[string]interface{}{"id": 42, "fingerprint": "abc"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"like": 1, "action": "liked"}`, w.Body.String())
	assert.Equal(t, int64(42), mockUsecase.LastSubjectID)
	assert.Equal(t, "abc", mockUsecase.LastFingerprint)
	assert.Equal(t, "203.0.113.10", mockUsecase.LastClient.IP)
	assert.Equal(t, "test-agent", mockUsecase.LastClient.UserAgent)
}

func TestTogglePolicyLike_Unlike(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	mockUsecase.MockReceipt = entity.VoteReceipt{Like: 0, Action: entity.VoteActionUnliked}
	r := setupRouter(newHandler(mockUsecase))

	w := postToggle(r, "/api/policylike", map[string]interface{}{"id": 42, "fingerprint": "abc"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"like": 0, "action": "unliked"}`, w.Body.String())
}

func TestTogglePolicyLike_MissingFingerprint(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	r := setupRouter(newHandler(mockUsecase))

	w := postToggle(r, "/api/policylike", map[string]interface{}{"id": 42})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid payload")
}

func TestTogglePolicyLike_MissingID(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	r := setupRouter(newHandler(mockUsecase))

	w := postToggle(r, "/api/policylike", map[string]interface{}{"fingerprint": "abc"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid payload")
}

func TestTogglePolicyLike_RateLimited(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	mockUsecase.ShouldRateLimit = true
	r := setupRouter(newHandler(mockUsecase))

	w := postToggle(r, "/api/policylike", map[string]interface{}{"id": 42, "fingerprint": "abc"})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "too many requests")
}

func TestTogglePolicyLike_Cooldown(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	mockUsecase.ShouldCooldown = true
	r := setupRouter(newHandler(mockUsecase))

	w := postToggle(r, "/api/policylike", map[string]interface{}{"id": 42, "fingerprint": "abc"})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "please wait before liking again")
}

func TestTogglePolicyLike_NetworkDuplicate(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	mockUsecase.ShouldRejectNetwork = true
	r := setupRouter(newHandler(mockUsecase))

	w := postToggle(r, "/api/policylike", map[string]interface{}{"id": 42, "fingerprint": "abc"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "already liked from this network")
}

func TestTogglePolicyLike_SuspiciousActivity(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	mockUsecase.ShouldRejectVelocity = true
	r := setupRouter(newHandler(mockUsecase))

	w := postToggle(r, "/api/policylike", map[string]interface{}{"id": 42, "fingerprint": "abc"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "suspicious activity detected")
}

func TestTogglePolicyLike_InternalError(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	mockUsecase.ShouldFailInternal = true
	r := setupRouter(newHandler(mockUsecase))

	w := postToggle(r, "/api/policylike", map[string]interface{}{"id": 42, "fingerprint": "abc"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "ledger unavailable")
}

func TestToggleCampaignLike(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	mockUsecase.MockReceipt = entity.VoteReceipt{Like: 3, Action: entity.VoteActionLiked}
	r := setupRouter(newHandler(mockUsecase))

	w := postToggle(r, "/api/campaignlike", map[string]interface{}{"id": 7, "fingerprint": "xyz"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"like": 3, "action": "liked"}`, w.Body.String())
	assert.Equal(t, entity.SubjectTypeCampaign, mockUsecase.LastSubjectType)
}

func TestGetAbuseReports(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	mockUsecase.MockReports = []entity.AbuseReport{
		{ID: "r-1", SubjectType: entity.SubjectTypePolicy, SubjectID: 42, Fingerprint: "abc", IP: "203.0.113.10", Reason: entity.AbuseReasonVelocity},
		{ID: "r-2", SubjectType: entity.SubjectTypeCampaign, SubjectID: 7, Fingerprint: "xyz", IP: "203.0.113.11", Reason: entity.AbuseReasonNetworkDuplicate},
	}
	r := setupRouter(newHandler(mockUsecase))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/abusereports", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var reports []entity.AbuseReport
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &reports))
	if assert.Len(t, reports, 2) {
		assert.Equal(t, "r-1", reports[0].ID)
		assert.Equal(t, entity.AbuseReasonVelocity, reports[0].Reason)
		assert.Equal(t, entity.SubjectTypeCampaign, reports[1].SubjectType)
	}
}

func TestGetAbuseReports_LimitApplied(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	mockUsecase.MockReports = []entity.AbuseReport{
		{ID: "r-1", Reason: entity.AbuseReasonVelocity},
		{ID: "r-2", Reason: entity.AbuseReasonVelocity},
	}
	r := setupRouter(newHandler(mockUsecase))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/abusereports?limit=1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var reports []entity.AbuseReport
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &reports))
	assert.Len(t, reports, 1)
}

func TestGetAbuseReports_InvalidLimit(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	r := setupRouter(newHandler(mockUsecase))

	for _, limit := range []string{"abc", "0", "-3"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/abusereports?limit="+limit, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid limit")
	}
}

func TestGetAbuseReports_InternalError(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	mockUsecase.ShouldFailInternal = true
	r := setupRouter(newHandler(mockUsecase))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/abusereports", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "report sink unavailable")
}

// Mirrors the client flow: like, blocked retry during cooldown, unlike after
// the cooldown elapses.
func TestTogglePolicyLike_Scenario(t *testing.T) {
	mockUsecase := mocks.NewMockVoteUsecase()
	mockUsecase.MockReceipt = entity.VoteReceipt{Like: 1, Action: entity.VoteActionLiked}
	r := setupRouter(newHandler(mockUsecase))

	w := postToggle(r, "/api/policylike", map[string]interface{}{"id": 42, "fingerprint": "abc"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"like": 1, "action": "liked"}`, w.Body.String())

	mockUsecase.ShouldCooldown = true
	w = postToggle(r, "/api/policylike", map[string]interface{}{"id": 42, "fingerprint": "abc"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	mockUsecase.ShouldCooldown = false
	mockUsecase.MockReceipt = entity.VoteReceipt{Like: 0, Action: entity.VoteActionUnliked}
	w = postToggle(r, "/api/policylike", map[string]interface{}{"id": 42, "fingerprint": "abc"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"like": 0, "action": "unliked"}`, w.Body.String())
}
