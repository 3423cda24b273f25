package service_test

import (
	"context"
	"errors"

	"societyhub/models"
	"societyhub/repository"
	"societyhub/service"
)

// fakeComplaintStore is an in-memory ComplaintStore that mirrors the
// storage semantics of the real repository: a unique (complaint, voter)
// ledger, an upvote counter, and a one-way escalation at threshold.
type fakeComplaintStore struct {
	complaints map[int64]*models.Complaint
	votes      map[[2]int64]bool
	nextID     int64
	createErr  error
}

func newFakeComplaintStore() *fakeComplaintStore {
	return &fakeComplaintStore{
		complaints: make(map[int64]*models.Complaint),
		votes:      make(map[[2]int64]bool),
		nextID:     1,
	}
}

func (f *fakeComplaintStore) CreateComplaint(c *models.Complaint) error {
	if f.createErr != nil {
		return f.createErr
	}
	c.ComplaintID = f.nextID
	f.nextID++
	stored := *c
	f.complaints[c.ComplaintID] = &stored
	return nil
}

func (f *fakeComplaintStore) GetComplaintByID(id int64) (*models.Complaint, error) {
	c, ok := f.complaints[id]
	if !ok {
		return nil, repository.ErrComplaintNotFound
	}
	copy := *c
	return &copy, nil
}

func (f *fakeComplaintStore) GetComplaintsBySociety(societyID int64) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range f.complaints {
		if c.SocietyID == societyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeComplaintStore) ApplyUpvote(complaintID, voterID int64, threshold int) (*models.Complaint, error) {
	c, ok := f.complaints[complaintID]
	if !ok {
		return nil, repository.ErrComplaintNotFound
	}
	key := [2]int64{complaintID, voterID}
	if f.votes[key] {
		return nil, repository.ErrDuplicateVote
	}
	f.votes[key] = true
	c.Upvotes++
	if c.Status == models.StatusPendingVerification && c.Upvotes >= threshold {
		c.Status = models.StatusOpen
	}
	copy := *c
	return &copy, nil
}

func (f *fakeComplaintStore) UpdateStatus(complaintID int64, status models.ComplaintStatus) (*models.Complaint, error) {
	c, ok := f.complaints[complaintID]
	if !ok {
		return nil, repository.ErrComplaintNotFound
	}
	c.Status = status
	copy := *c
	return &copy, nil
}

func (f *fakeComplaintStore) AssignVendor(complaintID, vendorID int64) (*models.Complaint, error) {
	c, ok := f.complaints[complaintID]
	if !ok {
		return nil, repository.ErrComplaintNotFound
	}
	c.AssignedVendorID.Int64 = vendorID
	c.AssignedVendorID.Valid = true
	copy := *c
	return &copy, nil
}

// fakeUserStore holds users by id and records reputation adjustments.
type fakeUserStore struct {
	users       map[int64]*models.User
	adjustments map[int64]int
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	f := &fakeUserStore{
		users:       make(map[int64]*models.User),
		adjustments: make(map[int64]int),
	}
	for _, u := range users {
		f.users[u.UserID] = u
	}
	return f
}

func (f *fakeUserStore) GetUserByID(id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) AdjustReputation(id int64, delta int) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	f.adjustments[id] += delta
	f.users[id].ReputationScore += delta
	return nil
}

// fakeSocietyStore answers existence checks from a fixed id set.
type fakeSocietyStore struct {
	ids map[int64]bool
}

func newFakeSocietyStore(ids ...int64) *fakeSocietyStore {
	f := &fakeSocietyStore{ids: make(map[int64]bool)}
	for _, id := range ids {
		f.ids[id] = true
	}
	return f
}

func (f *fakeSocietyStore) SocietyExists(id int64) (bool, error) {
	return f.ids[id], nil
}

// fakeValidator returns a fixed verdict or error and counts calls.
type fakeValidator struct {
	verdict *service.MediaVerdict
	err     error
	calls   int
}

var errValidatorDown = errors.New("ai service unreachable: connection refused")

func (f *fakeValidator) Verify(ctx context.Context, mediaURL, category, description string) (*service.MediaVerdict, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.verdict, nil
}
