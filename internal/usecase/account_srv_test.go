package usecase

import (
	"testing"

	"github.com/gras5/api-yamdb/internal/access"
	"github.com/gras5/api-yamdb/internal/data/entity"
	"github.com/gras5/api-yamdb/internal/dto/request"
	"github.com/gras5/api-yamdb/pkg/apperr"

	"go.uber.org/zap"
)

func TestUpdateSelfIgnoresRoleForPlainUser(t *testing.T) {
	repo := newTestRepository()
	svc := NewAccountService(repo, zap.NewNop())
	caller := seedAccount(t, repo, "alice", entity.RoleUser)

	role := "admin"
	bio := "hello"
	resp, err := svc.UpdateSelf(t.Context(), caller, &request.UpdateAccountRequest{
		Role: &role,
		Bio:  &bio,
	})
	if err != nil {
		t.Fatalf("UpdateSelf: %v", err)
	}

	if resp.Role != "user" {
		t.Errorf("role = %q, plain users must not elevate themselves", resp.Role)
	}
	if resp.Bio == nil || *resp.Bio != "hello" {
		t.Errorf("bio = %v, want hello", resp.Bio)
	}
}

func TestUpdateByUsernameChangesRole(t *testing.T) {
	repo := newTestRepository()
	svc := NewAccountService(repo, zap.NewNop())
	seedAccount(t, repo, "alice", entity.RoleUser)

	role := "moderator"
	resp, err := svc.UpdateByUsername(t.Context(), "alice", &request.UpdateAccountRequest{Role: &role})
	if err != nil {
		t.Fatalf("UpdateByUsername: %v", err)
	}
	if resp.Role != "moderator" {
		t.Errorf("role = %q, want moderator", resp.Role)
	}
}

func TestGetSelfAnonymous(t *testing.T) {
	svc := NewAccountService(newTestRepository(), zap.NewNop())

	_, err := svc.GetSelf(t.Context(), access.Anonymous)
	if !apperr.IsKind(err, apperr.KindUnauthenticated) {
		t.Errorf("err = %v, want Unauthenticated", err)
	}
}

func TestDeleteUnknownAccount(t *testing.T) {
	svc := NewAccountService(newTestRepository(), zap.NewNop())

	if err := svc.DeleteByUsername(t.Context(), "ghost"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("err = %v, want NotFound", err)
	}
}
