package service

import (
	"context"
	"errors"
	"testing"

	"devfolio/internal/domain"
	"devfolio/internal/domain/models"
)

func newFavoriteFixture() (*fakeUserRepo, *fakeProjectRepo, *fakeFavoriteRepo, *fakeTxManager) {
	users := newFakeUserRepo()
	users.addUser(&models.User{ID: 1, Name: "alice", Email: "alice@example.com"})
	users.addUser(&models.User{ID: 2, Name: "bob", Email: "bob@example.com"})

	projects := newFakeProjectRepo()
	projects.addProject(&models.Project{ID: 10, CreatorID: 1})

	return users, projects, newFakeFavoriteRepo(), &fakeTxManager{}
}

func TestAddUserFavorite(t *testing.T) {
	tests := []struct {
		name         string
		sourceID     int64
		targetID     int64
		existingEdge bool
		wantErr      error
	}{
		{name: "new edge", sourceID: 1, targetID: 2},
		{name: "self favorite", sourceID: 1, targetID: 1, wantErr: domain.ErrInvalidOperation},
		{name: "target does not exist", sourceID: 1, targetID: 404, wantErr: domain.ErrNotFound},
		{name: "source does not exist", sourceID: 404, targetID: 2, wantErr: domain.ErrNotFound},
		{name: "duplicate edge", sourceID: 1, targetID: 2, existingEdge: true, wantErr: domain.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, projects, favorites, tx := newFavoriteFixture()
			if tt.existingEdge {
				favorites.userEdges[[2]int64{tt.sourceID, tt.targetID}] = true
			}

			svc := NewFavoriteService(users, projects, favorites, tx, discardLogger())

			err := svc.AddUserFavorite(context.Background(), tt.sourceID, tt.targetID)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("AddUserFavorite() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("AddUserFavorite() unexpected error: %v", err)
			}
			if !favorites.userEdges[[2]int64{tt.sourceID, tt.targetID}] {
				t.Error("AddUserFavorite() did not insert the edge")
			}
		})
	}
}

func TestAddUserFavoriteIsDirected(t *testing.T) {
	users, projects, favorites, tx := newFavoriteFixture()
	svc := NewFavoriteService(users, projects, favorites, tx, discardLogger())

	if err := svc.AddUserFavorite(context.Background(), 1, 2); err != nil {
		t.Fatalf("AddUserFavorite() unexpected error: %v", err)
	}

	forward, err := svc.IsUserFavorite(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("IsUserFavorite() unexpected error: %v", err)
	}
	if !forward {
		t.Error("IsUserFavorite(1,2) = false, want true")
	}

	reverse, err := svc.IsUserFavorite(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("IsUserFavorite() unexpected error: %v", err)
	}
	if reverse {
		t.Error("IsUserFavorite(2,1) = true, want false; the relation is directed")
	}
}

func TestRemoveUserFavorite(t *testing.T) {
	tests := []struct {
		name         string
		sourceID     int64
		targetID     int64
		existingEdge bool
		wantErr      error
	}{
		{name: "existing edge", sourceID: 1, targetID: 2, existingEdge: true},
		{name: "self unfavorite", sourceID: 1, targetID: 1, wantErr: domain.ErrInvalidOperation},
		{name: "absent edge", sourceID: 1, targetID: 2, wantErr: domain.ErrNotFound},
		{name: "target does not exist", sourceID: 1, targetID: 404, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, projects, favorites, tx := newFavoriteFixture()
			if tt.existingEdge {
				favorites.userEdges[[2]int64{tt.sourceID, tt.targetID}] = true
			}

			svc := NewFavoriteService(users, projects, favorites, tx, discardLogger())

			err := svc.RemoveUserFavorite(context.Background(), tt.sourceID, tt.targetID)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("RemoveUserFavorite() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("RemoveUserFavorite() unexpected error: %v", err)
			}
			if favorites.userEdges[[2]int64{tt.sourceID, tt.targetID}] {
				t.Error("RemoveUserFavorite() left the edge in place")
			}
		})
	}
}

func TestIsUserFavoriteRejectsSelf(t *testing.T) {
	users, projects, favorites, tx := newFavoriteFixture()
	svc := NewFavoriteService(users, projects, favorites, tx, discardLogger())

	_, err := svc.IsUserFavorite(context.Background(), 1, 1)
	if !errors.Is(err, domain.ErrInvalidOperation) {
		t.Errorf("IsUserFavorite() error = %v, want ErrInvalidOperation", err)
	}
}

func TestAddProjectFavorite(t *testing.T) {
	tests := []struct {
		name         string
		userID       int64
		projectID    int64
		existingEdge bool
		wantErr      error
	}{
		{name: "new edge", userID: 2, projectID: 10},
		{name: "creator favorites own project", userID: 1, projectID: 10},
		{name: "project does not exist", userID: 2, projectID: 404, wantErr: domain.ErrNotFound},
		{name: "user does not exist", userID: 404, projectID: 10, wantErr: domain.ErrNotFound},
		{name: "duplicate edge", userID: 2, projectID: 10, existingEdge: true, wantErr: domain.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, projects, favorites, tx := newFavoriteFixture()
			if tt.existingEdge {
				favorites.projectEdges[[2]int64{tt.userID, tt.projectID}] = true
			}

			svc := NewFavoriteService(users, projects, favorites, tx, discardLogger())

			err := svc.AddProjectFavorite(context.Background(), tt.userID, tt.projectID)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("AddProjectFavorite() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("AddProjectFavorite() unexpected error: %v", err)
			}
			if !favorites.projectEdges[[2]int64{tt.userID, tt.projectID}] {
				t.Error("AddProjectFavorite() did not insert the edge")
			}
		})
	}
}

func TestRemoveProjectFavorite(t *testing.T) {
	tests := []struct {
		name         string
		userID       int64
		projectID    int64
		existingEdge bool
		wantErr      error
	}{
		{name: "existing edge", userID: 2, projectID: 10, existingEdge: true},
		{name: "absent edge", userID: 2, projectID: 10, wantErr: domain.ErrNotFound},
		{name: "project does not exist", userID: 2, projectID: 404, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, projects, favorites, tx := newFavoriteFixture()
			if tt.existingEdge {
				favorites.projectEdges[[2]int64{tt.userID, tt.projectID}] = true
			}

			svc := NewFavoriteService(users, projects, favorites, tx, discardLogger())

			err := svc.RemoveProjectFavorite(context.Background(), tt.userID, tt.projectID)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("RemoveProjectFavorite() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("RemoveProjectFavorite() unexpected error: %v", err)
			}
			if favorites.projectEdges[[2]int64{tt.userID, tt.projectID}] {
				t.Error("RemoveProjectFavorite() left the edge in place")
			}
		})
	}
}
