package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	authDTO "sponsorku_backend/internals/features/users/auth/dto"
	userModel "sponsorku_backend/internals/features/users/user/model"
	helper "sponsorku_backend/internals/helpers"
)

/* ===================== fakes ===================== */

type memStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*userModel.UserModel
	eo        map[uuid.UUID]*userModel.EOProfileModel
	sponsors  map[uuid.UUID]*userModel.SponsorProfileModel
	blacklist map[string]time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[uuid.UUID]*userModel.UserModel{},
		eo:        map[uuid.UUID]*userModel.EOProfileModel{},
		sponsors:  map[uuid.UUID]*userModel.SponsorProfileModel{},
		blacklist: map[string]time.Time{},
	}
}

func (m *memStore) FindUserByEmail(_ context.Context, email string) (*userModel.UserModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) FindUserByGoogleID(_ context.Context, gid string) (*userModel.UserModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.GoogleID != nil && *u.GoogleID == gid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) FindUserByID(_ context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *memStore) CreateUserWithProfile(_ context.Context, u *userModel.UserModel, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	switch u.Role {
	case "EO":
		m.eo[u.ID] = &userModel.EOProfileModel{EOProfileID: uuid.New(), EOProfileUserID: u.ID, EOProfileOrganizationName: name}
	case "SPONSOR":
		m.sponsors[u.ID] = &userModel.SponsorProfileModel{SponsorProfileID: uuid.New(), SponsorProfileUserID: u.ID, SponsorProfileCompanyName: name, SponsorProfileStatus: userModel.SponsorStatusOpen}
	}
	return nil
}

func (m *memStore) LinkGoogleID(_ context.Context, id uuid.UUID, gid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id].GoogleID = &gid
	return nil
}

func (m *memStore) FindProfiles(_ context.Context, id uuid.UUID) (*userModel.EOProfileModel, *userModel.SponsorProfileModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eo[id], m.sponsors[id], nil
}

func (m *memStore) BlacklistToken(_ context.Context, token string, exp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blacklist[token] = exp
	return nil
}

type stubGoogle struct {
	ident *GoogleIdentity
	err   error
}

func (s stubGoogle) Verify(string) (*GoogleIdentity, error) { return s.ident, s.err }

func newTestService(store Store, g GoogleVerifier) *Service {
	return NewService(store, g, "unit-secret", time.Hour)
}

func validRegister(role string) authDTO.RegisterRequest {
	return authDTO.RegisterRequest{
		Name:            "Budi",
		Email:           " Budi@Example.com ",
		Role:            role,
		Phone:           "+6281234567890",
		Password:        "rahasia1",
		ConfirmPassword: "rahasia1",
	}
}

/* ===================== tests ===================== */

func TestRegister(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *authDTO.RegisterRequest)
		status int
	}{
		{"ok eo", func(r *authDTO.RegisterRequest) {}, 0},
		{"ok lowercase role", func(r *authDTO.RegisterRequest) { r.Role = "sponsor" }, 0},
		{"missing name", func(r *authDTO.RegisterRequest) { r.Name = "" }, 400},
		{"bad role", func(r *authDTO.RegisterRequest) { r.Role = "ADMIN" }, 400},
		{"password mismatch", func(r *authDTO.RegisterRequest) { r.ConfirmPassword = "other12" }, 400},
		{"short password", func(r *authDTO.RegisterRequest) { r.Password, r.ConfirmPassword = "abc", "abc" }, 400},
		{"bad phone", func(r *authDTO.RegisterRequest) { r.Phone = "08-12" }, 400},
		{"bad email", func(r *authDTO.RegisterRequest) { r.Email = "not-an-email" }, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newMemStore(), nil)
			req := validRegister("EO")
			tt.mutate(&req)
			res, err := svc.Register(context.Background(), req)
			if tt.status == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if res.Token == "" || res.User.Email != "budi@example.com" {
					t.Fatalf("unexpected response %+v", res)
				}
				return
			}
			if got := helper.StatusOf(err); got != tt.status {
				t.Fatalf("status = %d, want %d (%v)", got, tt.status, err)
			}
		})
	}
}

func TestRegisterCreatesRoleProfileAndRejectsDuplicate(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil)
	req := validRegister("SPONSOR")
	req.CompanyName = "PT Kopi Nusantara"

	res, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	sp := store.sponsors[res.User.ID]
	if sp == nil || sp.SponsorProfileCompanyName != "PT Kopi Nusantara" || sp.SponsorProfileStatus != "Open" {
		t.Fatalf("sponsor profile not created correctly: %+v", sp)
	}

	claims, err := helper.ParseAccessToken("unit-secret", res.Token, time.Now(), 0)
	if err != nil || claims.Role != "SPONSOR" || claims.UserID != res.User.ID {
		t.Fatalf("bad token claims %+v err=%v", claims, err)
	}

	_, err = svc.Register(context.Background(), validRegister("EO"))
	if helper.StatusOf(err) != 409 {
		t.Fatalf("duplicate email should be 409, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil)
	reg, err := svc.Register(context.Background(), validRegister("EO"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		status   int
	}{
		{"ok", "BUDI@example.com", "rahasia1", 0},
		{"missing password", "budi@example.com", "", 400},
		{"wrong password", "budi@example.com", "salah123", 401},
		{"unknown email", "nobody@example.com", "rahasia1", 401},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(context.Background(), authDTO.LoginRequest{Email: tt.email, Password: tt.password})
			if tt.status == 0 {
				if err != nil || res.User.ID != reg.User.ID {
					t.Fatalf("login failed: %v", err)
				}
				return
			}
			if got := helper.StatusOf(err); got != tt.status {
				t.Fatalf("status = %d, want %d", got, tt.status)
			}
		})
	}

	store.users[reg.User.ID].IsActive = false
	_, err = svc.Login(context.Background(), authDTO.LoginRequest{Email: "budi@example.com", Password: "rahasia1"})
	if helper.StatusOf(err) != 401 {
		t.Fatalf("inactive account should be 401, got %v", err)
	}
}

func TestLoginGoogle(t *testing.T) {
	ident := &GoogleIdentity{Sub: "g-123", Email: "budi@example.com", EmailVerified: true, Name: "Budi G"}

	t.Run("invalid token", func(t *testing.T) {
		svc := newTestService(newMemStore(), stubGoogle{err: errors.New("bad sig")})
		_, err := svc.LoginGoogle(context.Background(), authDTO.GoogleLoginRequest{IDToken: "x"})
		if helper.StatusOf(err) != 401 {
			t.Fatalf("want 401, got %v", err)
		}
	})

	t.Run("new user needs role", func(t *testing.T) {
		svc := newTestService(newMemStore(), stubGoogle{ident: ident})
		_, err := svc.LoginGoogle(context.Background(), authDTO.GoogleLoginRequest{IDToken: "x"})
		if helper.StatusOf(err) != 400 {
			t.Fatalf("want 400, got %v", err)
		}
	})

	t.Run("new user created with profile", func(t *testing.T) {
		store := newMemStore()
		svc := newTestService(store, stubGoogle{ident: ident})
		res, err := svc.LoginGoogle(context.Background(), authDTO.GoogleLoginRequest{IDToken: "x", Role: "eo"})
		if err != nil {
			t.Fatal(err)
		}
		if store.eo[res.User.ID] == nil || !res.User.HasGoogle {
			t.Fatal("eo profile / google link missing")
		}
	})

	t.Run("existing email gets linked", func(t *testing.T) {
		store := newMemStore()
		svc := newTestService(store, stubGoogle{ident: ident})
		reg, err := svc.Register(context.Background(), validRegister("EO"))
		if err != nil {
			t.Fatal(err)
		}
		res, err := svc.LoginGoogle(context.Background(), authDTO.GoogleLoginRequest{IDToken: "x"})
		if err != nil {
			t.Fatal(err)
		}
		if res.User.ID != reg.User.ID {
			t.Fatal("should log into existing account")
		}
		if g := store.users[reg.User.ID].GoogleID; g == nil || *g != "g-123" {
			t.Fatal("google id not linked")
		}
	})

	t.Run("unverified email never links existing account", func(t *testing.T) {
		store := newMemStore()
		unverified := &GoogleIdentity{Sub: "g-evil", Email: "budi@example.com", Name: "Bukan Budi"}
		svc := newTestService(store, stubGoogle{ident: unverified})
		reg, err := svc.Register(context.Background(), validRegister("EO"))
		if err != nil {
			t.Fatal(err)
		}
		res, err := svc.LoginGoogle(context.Background(), authDTO.GoogleLoginRequest{IDToken: "x"})
		if helper.StatusOf(err) != 401 || res != nil {
			t.Fatalf("want 401 without token, got %v", err)
		}
		if store.users[reg.User.ID].GoogleID != nil {
			t.Fatal("google id must not be linked from an unverified email")
		}
	})

	t.Run("unverified email cannot create account", func(t *testing.T) {
		store := newMemStore()
		unverified := &GoogleIdentity{Sub: "g-new", Email: "baru@example.com"}
		svc := newTestService(store, stubGoogle{ident: unverified})
		_, err := svc.LoginGoogle(context.Background(), authDTO.GoogleLoginRequest{IDToken: "x", Role: "SPONSOR"})
		if helper.StatusOf(err) != 401 {
			t.Fatalf("want 401, got %v", err)
		}
		if len(store.users) != 0 {
			t.Fatal("no user should be created")
		}
	})

	t.Run("already linked account still logs in", func(t *testing.T) {
		store := newMemStore()
		svc := newTestService(store, stubGoogle{ident: ident})
		first, err := svc.LoginGoogle(context.Background(), authDTO.GoogleLoginRequest{IDToken: "x", Role: "EO"})
		if err != nil {
			t.Fatal(err)
		}
		svc.Google = stubGoogle{ident: &GoogleIdentity{Sub: "g-123", Email: "budi@example.com"}}
		again, err := svc.LoginGoogle(context.Background(), authDTO.GoogleLoginRequest{IDToken: "x"})
		if err != nil {
			t.Fatal(err)
		}
		if again.User.ID != first.User.ID {
			t.Fatal("linked google_id should resolve the same user")
		}
	})
}

func TestLogoutBlacklistsUntilExpiry(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil)
	res, err := svc.Register(context.Background(), validRegister("EO"))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(context.Background(), res.Token); err != nil {
		t.Fatal(err)
	}
	exp, ok := store.blacklist[res.Token]
	if !ok || !exp.Equal(res.ExpiresAt.Truncate(time.Second)) {
		t.Fatalf("blacklist exp = %v, want %v", exp, res.ExpiresAt)
	}
	if helper.StatusOf(svc.Logout(context.Background(), "")) != 401 {
		t.Fatal("empty token should be 401")
	}
}

func TestMeReturnsRoleProfile(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil)
	res, _ := svc.Register(context.Background(), validRegister("EO"))

	me, err := svc.Me(context.Background(), res.User.ID)
	if err != nil {
		t.Fatal(err)
	}
	if me.EOProfile == nil || me.SponsorProfile != nil {
		t.Fatalf("unexpected profile shape %+v", me)
	}
	if _, err := svc.Me(context.Background(), uuid.New()); helper.StatusOf(err) != 404 {
		t.Fatalf("unknown user should be 404, got %v", err)
	}
}
