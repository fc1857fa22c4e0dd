package service

import (
	"context"
	"io"
	"log/slog"

	"devfolio/internal/domain"
	"devfolio/internal/domain/models"
	"devfolio/internal/domain/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// callLog records repository calls in order so tests can assert the
// statement sequence of transactional operations.
type callLog struct {
	calls []string
}

func (l *callLog) record(name string) {
	l.calls = append(l.calls, name)
}

// fakeTxManager runs the function inline, logging the transaction
// boundaries. execErr simulates a commit failure after fn succeeds.
type fakeTxManager struct {
	log       *callLog
	execErr   error
	active    bool
	committed int
	rolledBck int
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if m.log != nil {
		m.log.record("tx.begin")
	}
	m.active = true
	err := fn(ctx)
	m.active = false
	if err != nil {
		m.rolledBck++
		if m.log != nil {
			m.log.record("tx.rollback")
		}
		return err
	}
	if m.execErr != nil {
		m.rolledBck++
		return m.execErr
	}
	m.committed++
	if m.log != nil {
		m.log.record("tx.commit")
	}
	return nil
}

type fakeUserRepo struct {
	log *callLog

	usersByID    map[int64]*models.User
	usersByEmail map[string]*models.User
	createErr    error
	deleteErr    error
	updated      []*models.User
	created      []*models.User
	deleted      []int64
	emailInUse   bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByID:    map[int64]*models.User{},
		usersByEmail: map[string]*models.User{},
	}
}

func (r *fakeUserRepo) addUser(u *models.User) {
	r.usersByID[u.ID] = u
	r.usersByEmail[u.Email] = u
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if r.log != nil {
		r.log.record("users.Create")
	}
	if r.createErr != nil {
		return r.createErr
	}
	user.ID = int64(len(r.usersByID) + 1)
	r.addUser(user)
	r.created = append(r.created, user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := r.usersByID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := r.usersByEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]models.UserSummary, error) {
	out := []models.UserSummary{}
	for _, u := range r.usersByID {
		out = append(out, models.UserSummary{ID: u.ID, Name: u.Name})
	}
	return out, nil
}

func (r *fakeUserRepo) GetInfo(ctx context.Context, id int64) (*models.UserInfo, error) {
	u, ok := r.usersByID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &models.UserInfo{Name: u.Name, CreatedAt: u.CreatedAt}, nil
}

func (r *fakeUserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := r.usersByID[id]
	return ok, nil
}

func (r *fakeUserRepo) EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.emailInUse, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if r.log != nil {
		r.log.record("users.Update")
	}
	r.updated = append(r.updated, user)
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if r.log != nil {
		r.log.record("users.Delete")
	}
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleted = append(r.deleted, id)
	delete(r.usersByID, id)
	return nil
}

type fakeProjectRepo struct {
	log *callLog

	projects      map[int64]*models.Project
	nextID        int64
	createErr     error
	replaceErr    error
	replaced      map[int64][]int64
	techsDeleted  [][]int64
	ownerDeleted  []int64
	deleted       []int64
	aggregated    []models.ProjectWithTechnologies
	listOwnerArgs []*int64
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{
		projects: map[int64]*models.Project{},
		nextID:   100,
		replaced: map[int64][]int64{},
	}
}

func (r *fakeProjectRepo) addProject(p *models.Project) {
	r.projects[p.ID] = p
}

func (r *fakeProjectRepo) Create(ctx context.Context, project *models.Project) error {
	if r.log != nil {
		r.log.record("projects.Create")
	}
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	project.ID = r.nextID
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *models.Project) error {
	if r.log != nil {
		r.log.record("projects.Update")
	}
	existing, ok := r.projects[project.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Name = project.Name
	existing.Description = project.Description
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id int64) error {
	if r.log != nil {
		r.log.record("projects.Delete")
	}
	r.deleted = append(r.deleted, id)
	delete(r.projects, id)
	return nil
}

func (r *fakeProjectRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := r.projects[id]
	return ok, nil
}

func (r *fakeProjectRepo) GetCreatorID(ctx context.Context, id int64) (int64, error) {
	p, ok := r.projects[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return p.CreatorID, nil
}

func (r *fakeProjectRepo) ListIDsByOwner(ctx context.Context, ownerID int64) ([]int64, error) {
	if r.log != nil {
		r.log.record("projects.ListIDsByOwner")
	}
	ids := []int64{}
	for id, p := range r.projects {
		if p.CreatorID == ownerID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *fakeProjectRepo) DeleteByOwner(ctx context.Context, ownerID int64) error {
	if r.log != nil {
		r.log.record("projects.DeleteByOwner")
	}
	r.ownerDeleted = append(r.ownerDeleted, ownerID)
	for id, p := range r.projects {
		if p.CreatorID == ownerID {
			delete(r.projects, id)
		}
	}
	return nil
}

func (r *fakeProjectRepo) ReplaceTechnologies(ctx context.Context, projectID int64, technologyIDs []int64) error {
	if r.log != nil {
		r.log.record("projects.ReplaceTechnologies")
	}
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.replaced[projectID] = technologyIDs
	return nil
}

func (r *fakeProjectRepo) DeleteTechnologies(ctx context.Context, projectIDs []int64) error {
	if r.log != nil {
		r.log.record("projects.DeleteTechnologies")
	}
	r.techsDeleted = append(r.techsDeleted, projectIDs)
	return nil
}

func (r *fakeProjectRepo) GetWithTechnologies(ctx context.Context, id int64) (*models.ProjectWithTechnologies, error) {
	for _, p := range r.aggregated {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProjectRepo) ListWithTechnologies(ctx context.Context, ownerID *int64) ([]models.ProjectWithTechnologies, error) {
	r.listOwnerArgs = append(r.listOwnerArgs, ownerID)
	return r.aggregated, nil
}

type fakeFavoriteRepo struct {
	log *callLog

	userEdges    map[[2]int64]bool
	projectEdges map[[2]int64]bool

	userEdgesDeleted    []int64
	projectEdgesDeleted [][]int64
	projectEdgeCleared  []int64
	deleteUserEdgesErr  error
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{
		userEdges:    map[[2]int64]bool{},
		projectEdges: map[[2]int64]bool{},
	}
}

func (r *fakeFavoriteRepo) UserEdgeExists(ctx context.Context, sourceID, targetID int64) (bool, error) {
	return r.userEdges[[2]int64{sourceID, targetID}], nil
}

func (r *fakeFavoriteRepo) AddUserEdge(ctx context.Context, sourceID, targetID int64) error {
	key := [2]int64{sourceID, targetID}
	if r.userEdges[key] {
		return domain.ErrConflict
	}
	r.userEdges[key] = true
	return nil
}

func (r *fakeFavoriteRepo) RemoveUserEdge(ctx context.Context, sourceID, targetID int64) error {
	delete(r.userEdges, [2]int64{sourceID, targetID})
	return nil
}

func (r *fakeFavoriteRepo) DeleteUserEdges(ctx context.Context, userID int64) error {
	if r.log != nil {
		r.log.record("favorites.DeleteUserEdges")
	}
	if r.deleteUserEdgesErr != nil {
		return r.deleteUserEdgesErr
	}
	r.userEdgesDeleted = append(r.userEdgesDeleted, userID)
	for key := range r.userEdges {
		if key[0] == userID || key[1] == userID {
			delete(r.userEdges, key)
		}
	}
	return nil
}

func (r *fakeFavoriteRepo) ProjectEdgeExists(ctx context.Context, userID, projectID int64) (bool, error) {
	return r.projectEdges[[2]int64{userID, projectID}], nil
}

func (r *fakeFavoriteRepo) AddProjectEdge(ctx context.Context, userID, projectID int64) error {
	key := [2]int64{userID, projectID}
	if r.projectEdges[key] {
		return domain.ErrConflict
	}
	r.projectEdges[key] = true
	return nil
}

func (r *fakeFavoriteRepo) RemoveProjectEdge(ctx context.Context, userID, projectID int64) error {
	delete(r.projectEdges, [2]int64{userID, projectID})
	return nil
}

func (r *fakeFavoriteRepo) DeleteProjectEdges(ctx context.Context, userID int64, projectIDs []int64) error {
	if r.log != nil {
		r.log.record("favorites.DeleteProjectEdges")
	}
	r.projectEdgesDeleted = append(r.projectEdgesDeleted, append([]int64{userID}, projectIDs...))
	for key := range r.projectEdges {
		if key[0] == userID {
			delete(r.projectEdges, key)
			continue
		}
		for _, pid := range projectIDs {
			if key[1] == pid {
				delete(r.projectEdges, key)
			}
		}
	}
	return nil
}

func (r *fakeFavoriteRepo) DeleteProjectEdgesForProject(ctx context.Context, projectID int64) error {
	if r.log != nil {
		r.log.record("favorites.DeleteProjectEdgesForProject")
	}
	r.projectEdgeCleared = append(r.projectEdgeCleared, projectID)
	for key := range r.projectEdges {
		if key[1] == projectID {
			delete(r.projectEdges, key)
		}
	}
	return nil
}

func (r *fakeFavoriteRepo) ListFavoriteUsers(ctx context.Context, userID int64) ([]models.UserSummary, error) {
	return []models.UserSummary{}, nil
}

func (r *fakeFavoriteRepo) ListFavoriteProjectIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	for key := range r.projectEdges {
		if key[0] == userID {
			ids = append(ids, key[1])
		}
	}
	return ids, nil
}

func (r *fakeFavoriteRepo) ListFavoriteProjects(ctx context.Context, userID int64) ([]models.ProjectWithTechnologies, error) {
	return []models.ProjectWithTechnologies{}, nil
}

// fakeTokenIssuer returns a fixed token string
type fakeTokenIssuer struct {
	token  string
	issued []int64
	err    error
}

func (f *fakeTokenIssuer) Issue(userID int64, email string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.issued = append(f.issued, userID)
	return f.token, nil
}
