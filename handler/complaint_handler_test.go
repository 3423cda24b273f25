package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"societyhub/handler"
	"societyhub/models"
	"societyhub/repository"
	"societyhub/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory stores backing a real ComplaintService so requests travel
// the full handler -> service -> store path.

type memComplaints struct {
	byID   map[int64]*models.Complaint
	votes  map[string]bool
	nextID int64
}

func newMemComplaints() *memComplaints {
	return &memComplaints{byID: make(map[int64]*models.Complaint), votes: make(map[string]bool), nextID: 1}
}

func (m *memComplaints) CreateComplaint(c *models.Complaint) error {
	c.ComplaintID = m.nextID
	m.nextID++
	stored := *c
	m.byID[c.ComplaintID] = &stored
	return nil
}

func (m *memComplaints) GetComplaintByID(id int64) (*models.Complaint, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrComplaintNotFound
	}
	copy := *c
	return &copy, nil
}

func (m *memComplaints) GetComplaintsBySociety(societyID int64) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range m.byID {
		if c.SocietyID == societyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memComplaints) ApplyUpvote(complaintID, voterID int64, threshold int) (*models.Complaint, error) {
	c, ok := m.byID[complaintID]
	if !ok {
		return nil, repository.ErrComplaintNotFound
	}
	key := fmt.Sprintf("%d:%d", complaintID, voterID)
	if m.votes[key] {
		return nil, repository.ErrDuplicateVote
	}
	m.votes[key] = true
	c.Upvotes++
	if c.Status == models.StatusPendingVerification && c.Upvotes >= threshold {
		c.Status = models.StatusOpen
	}
	copy := *c
	return &copy, nil
}

func (m *memComplaints) UpdateStatus(id int64, status models.ComplaintStatus) (*models.Complaint, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrComplaintNotFound
	}
	c.Status = status
	copy := *c
	return &copy, nil
}

func (m *memComplaints) HasVoted(complaintID, userID int64) (bool, error) {
	return m.votes[fmt.Sprintf("%d:%d", complaintID, userID)], nil
}

func (m *memComplaints) CountVotes(complaintID int64) (int, error) {
	count := 0
	prefix := fmt.Sprintf("%d:", complaintID)
	for key, voted := range m.votes {
		if voted && len(key) > len(prefix) && key[:len(prefix)] == prefix {
			count++
		}
	}
	return count, nil
}

func (m *memComplaints) AssignVendor(id, vendorID int64) (*models.Complaint, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrComplaintNotFound
	}
	c.AssignedVendorID.Int64 = vendorID
	c.AssignedVendorID.Valid = true
	copy := *c
	return &copy, nil
}

type memUsers struct {
	byID map[int64]*models.User
}

func (m *memUsers) GetUserByID(id int64) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) AdjustReputation(id int64, delta int) error { return nil }

type memSocieties struct{ ids map[int64]bool }

func (m *memSocieties) SocietyExists(id int64) (bool, error) { return m.ids[id], nil }

type stubValidator struct {
	verdict *service.MediaVerdict
	err     error
}

func (s *stubValidator) Verify(ctx context.Context, mediaURL, category, description string) (*service.MediaVerdict, error) {
	return s.verdict, s.err
}

// testRouter wires the complaint routes the same way production does.
func testRouter(validator service.MediaValidator) (*mux.Router, *memComplaints) {
	store := newMemComplaints()
	users := &memUsers{byID: map[int64]*models.User{
		10: {UserID: 10, SocietyID: 1, Role: models.RoleResident},
		11: {UserID: 11, SocietyID: 1, Role: models.RoleResident},
		12: {UserID: 12, SocietyID: 1, Role: models.RoleResident},
		13: {UserID: 13, SocietyID: 1, Role: models.RoleResident},
		20: {UserID: 20, SocietyID: 1, Role: models.RoleVendor},
	}}
	societies := &memSocieties{ids: map[int64]bool{1: true}}
	policy := service.NewVerdictPolicy(service.PolicyReject, 10, 50)
	svc := service.NewComplaintService(store, users, societies, validator, policy, 3)
	h := handler.NewComplaintHandler(svc, store)

	router := mux.NewRouter()
	router.HandleFunc("/api/complaints", h.CreateComplaint).Methods("POST")
	router.HandleFunc("/api/complaints/society/{societyId}", h.GetComplaintsBySociety).Methods("GET")
	router.HandleFunc("/api/complaints/{complaintId}/upvote/{userId}", h.UpvoteComplaint).Methods("POST")
	router.HandleFunc("/api/complaints/{complaintId}/votes/{userId}", h.GetVoteSummary).Methods("GET")
	router.HandleFunc("/api/complaints/{complaintId}/status", h.UpdateStatus).Methods("PUT")
	router.HandleFunc("/api/complaints/{id}/assign/{vendorId}", h.AssignVendor).Methods("PUT")
	return router, store
}

func postJSON(t *testing.T, router *mux.Router, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func doRequest(router *mux.Router, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"societyId":   1,
		"userId":      10,
		"title":       "Streetlight out near gate 2",
		"description": "Dark stretch at night, guards flagged it too.",
		"category":    "electrical",
	}
}

func TestCreateComplaintEndpoint(t *testing.T) {
	router, _ := testRouter(&stubValidator{})

	rr := postJSON(t, router, "/api/complaints", validBody())

	require.Equal(t, http.StatusCreated, rr.Code)
	var c models.Complaint
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &c))
	assert.Equal(t, models.StatusPendingVerification, c.Status)
	assert.Equal(t, "ELECTRICAL", c.Category)
}

func TestCreateComplaintEndpoint_MalformedBody(t *testing.T) {
	router, _ := testRouter(&stubValidator{})

	req := httptest.NewRequest(http.MethodPost, "/api/complaints", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateComplaintEndpoint_MissingTitle(t *testing.T) {
	router, _ := testRouter(&stubValidator{})

	body := validBody()
	body["title"] = ""
	rr := postJSON(t, router, "/api/complaints", body)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Validation error", resp.Error)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateComplaintEndpoint_RejectedMedia(t *testing.T) {
	router, _ := testRouter(&stubValidator{
		verdict: &service.MediaVerdict{IsValid: false, Reasoning: "no issue visible"},
	})

	body := validBody()
	body["imageUrl"] = "https://cdn.example.com/clip.mp4"
	rr := postJSON(t, router, "/api/complaints", body)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Rejected by validation", resp.Error)
	assert.Contains(t, resp.Message, "no issue visible")
}

func TestUpvoteEndpoint(t *testing.T) {
	router, _ := testRouter(&stubValidator{})
	rr := postJSON(t, router, "/api/complaints", validBody())
	require.Equal(t, http.StatusCreated, rr.Code)

	t.Run("first vote counts", func(t *testing.T) {
		rr := doRequest(router, http.MethodPost, "/api/complaints/1/upvote/11")
		require.Equal(t, http.StatusOK, rr.Code)
		var c models.Complaint
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &c))
		assert.Equal(t, 1, c.Upvotes)
	})

	t.Run("repeat vote is rejected", func(t *testing.T) {
		rr := doRequest(router, http.MethodPost, "/api/complaints/1/upvote/11")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("third distinct voter promotes to open", func(t *testing.T) {
		doRequest(router, http.MethodPost, "/api/complaints/1/upvote/12")
		rr := doRequest(router, http.MethodPost, "/api/complaints/1/upvote/13")
		require.Equal(t, http.StatusOK, rr.Code)
		var c models.Complaint
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &c))
		assert.Equal(t, models.StatusOpen, c.Status)
	})

	t.Run("unknown complaint is a client error", func(t *testing.T) {
		rr := doRequest(router, http.MethodPost, "/api/complaints/99/upvote/11")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("non-numeric id is a client error", func(t *testing.T) {
		rr := doRequest(router, http.MethodPost, "/api/complaints/abc/upvote/11")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestVoteSummaryEndpoint(t *testing.T) {
	router, _ := testRouter(&stubValidator{})
	rr := postJSON(t, router, "/api/complaints", validBody())
	require.Equal(t, http.StatusCreated, rr.Code)
	doRequest(router, http.MethodPost, "/api/complaints/1/upvote/11")
	doRequest(router, http.MethodPost, "/api/complaints/1/upvote/12")

	rr = doRequest(router, http.MethodGet, "/api/complaints/1/votes/11")
	require.Equal(t, http.StatusOK, rr.Code)
	var summary models.VoteSummaryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.Count)
	assert.True(t, summary.HasVoted)

	rr = doRequest(router, http.MethodGet, "/api/complaints/1/votes/13")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.False(t, summary.HasVoted)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	router, _ := testRouter(&stubValidator{})
	rr := postJSON(t, router, "/api/complaints", validBody())
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(router, http.MethodPut, "/api/complaints/1/status?status=resolved")
	require.Equal(t, http.StatusOK, rr.Code)
	var c models.Complaint
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &c))
	assert.Equal(t, models.StatusResolved, c.Status)

	rr = doRequest(router, http.MethodPut, "/api/complaints/1/status")
	assert.Equal(t, http.StatusBadRequest, rr.Code, "missing status query param")
}

func TestAssignVendorEndpoint(t *testing.T) {
	router, _ := testRouter(&stubValidator{})
	rr := postJSON(t, router, "/api/complaints", validBody())
	require.Equal(t, http.StatusCreated, rr.Code)

	t.Run("non-vendor is rejected", func(t *testing.T) {
		rr := doRequest(router, http.MethodPut, "/api/complaints/1/assign/11")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("vendor is assigned", func(t *testing.T) {
		rr := doRequest(router, http.MethodPut, "/api/complaints/1/assign/20")
		require.Equal(t, http.StatusOK, rr.Code)
		var c models.Complaint
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &c))
		require.True(t, c.AssignedVendorID.Valid)
		assert.Equal(t, int64(20), c.AssignedVendorID.Int64)
	})
}

func TestListBySocietyEndpoint(t *testing.T) {
	router, _ := testRouter(&stubValidator{})

	rr := doRequest(router, http.MethodGet, "/api/complaints/society/1")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String(), "empty society returns an empty array, not null")

	postJSON(t, router, "/api/complaints", validBody())
	rr = doRequest(router, http.MethodGet, "/api/complaints/society/1")
	require.Equal(t, http.StatusOK, rr.Code)
	var list []models.Complaint
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}
