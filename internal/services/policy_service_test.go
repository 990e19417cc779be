package services

import (
	"errors"
	"testing"

	"github.com/you/tuitionsvc/domain"
	"github.com/you/tuitionsvc/internal/mocks"
)

// createPolicyServiceForTest creates a PolicyService with a mock enforcer
func createPolicyServiceForTest(t *testing.T) (domain.PolicyService, *mocks.MockCasbinEnforcer) {
	t.Helper()

	enforcer := mocks.NewMockCasbinEnforcer()
	return NewPolicyServiceWithEnforcer(enforcer), enforcer
}

func TestPolicyServiceImpl_AddPolicy(t *testing.T) {
	addErr := errors.New("adapter unavailable")

	tests := []struct {
		name          string
		setupMock     func(enforcer *mocks.MockCasbinEnforcer, saved *bool)
		expectedError error
		expectSave    bool
	}{
		{
			name: "successful policy addition",
			setupMock: func(enforcer *mocks.MockCasbinEnforcer, saved *bool) {
				enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) {
					if len(params) != 3 || params[0].(string) != "role_user" || params[1].(string) != "/tuition/*" || params[2].(string) != "GET" {
						t.Errorf("AddPolicy params = %v", params)
					}
					return true, nil
				}
				enforcer.SavePolicyFunc = func() error {
					*saved = true
					return nil
				}
			},
			expectSave: true,
		},
		{
			name: "policy already exists still saves",
			setupMock: func(enforcer *mocks.MockCasbinEnforcer, saved *bool) {
				enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) {
					return false, nil
				}
				enforcer.SavePolicyFunc = func() error {
					*saved = true
					return nil
				}
			},
			expectSave: true,
		},
		{
			name: "add policy fails",
			setupMock: func(enforcer *mocks.MockCasbinEnforcer, saved *bool) {
				enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) {
					return false, addErr
				}
				enforcer.SavePolicyFunc = func() error {
					t.Error("SavePolicy must not run when AddPolicy fails")
					return nil
				}
			},
			expectedError: addErr,
		},
		{
			name: "save policy fails",
			setupMock: func(enforcer *mocks.MockCasbinEnforcer, saved *bool) {
				enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) {
					return true, nil
				}
				enforcer.SavePolicyFunc = func() error {
					return addErr
				}
			},
			expectedError: addErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, enforcer := createPolicyServiceForTest(t)
			saved := false
			tt.setupMock(enforcer, &saved)

			err := svc.AddPolicy("role_user", "/tuition/*", "GET")

			if !errors.Is(err, tt.expectedError) {
				t.Errorf("AddPolicy() error = %v, want %v", err, tt.expectedError)
			}
			if saved != tt.expectSave {
				t.Errorf("SavePolicy called = %t, want %t", saved, tt.expectSave)
			}
		})
	}
}

func TestPolicyServiceImpl_RemovePolicy(t *testing.T) {
	svc, enforcer := createPolicyServiceForTest(t)
	removed := false
	saved := false
	enforcer.RemovePolicyFunc = func(params ...interface{}) (bool, error) {
		removed = true
		return true, nil
	}
	enforcer.SavePolicyFunc = func() error {
		saved = true
		return nil
	}

	if err := svc.RemovePolicy("role_user", "/payments", "POST"); err != nil {
		t.Fatalf("RemovePolicy() error = %v", err)
	}
	if !removed || !saved {
		t.Errorf("removed = %t, saved = %t, want both", removed, saved)
	}
}

func TestPolicyServiceImpl_CheckPermission(t *testing.T) {
	svc, enforcer := createPolicyServiceForTest(t)
	enforcer.EnforceFunc = func(rvals ...interface{}) (bool, error) {
		return rvals[0].(string) == "role_admin", nil
	}

	allowed, err := svc.CheckPermission("role_admin", "/admin/policies", "GET")
	if err != nil || !allowed {
		t.Errorf("CheckPermission(admin) = %t, %v, want allowed", allowed, err)
	}

	allowed, err = svc.CheckPermission("role_user", "/admin/policies", "GET")
	if err != nil || allowed {
		t.Errorf("CheckPermission(user) = %t, %v, want denied", allowed, err)
	}
}

func TestPolicyServiceImpl_GetPolicies(t *testing.T) {
	svc, enforcer := createPolicyServiceForTest(t)
	want := [][]string{
		{"role_user", "/tuition/*", "GET"},
		{"role_admin", "/admin/*", "(GET|POST|PUT|DELETE)"},
	}
	enforcer.GetPolicyFunc = func() ([][]string, error) {
		return want, nil
	}

	got := svc.GetPolicies()
	if len(got) != 2 || got[0][1] != "/tuition/*" {
		t.Errorf("GetPolicies() = %v, want %v", got, want)
	}
}
