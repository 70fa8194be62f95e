package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/directorylabs/user-directory/internal/core/domain"
	"github.com/directorylabs/user-directory/internal/core/ports"
)

type stubUserService struct {
	createFn      func(ctx context.Context, input ports.CreateUserInput) (*ports.UserView, error)
	findOneFn     func(ctx context.Context, idOrName string, includePassword bool) (*ports.UserView, error)
	findAllFn     func(ctx context.Context, input ports.ListUsersInput) (*ports.ListUsersResult, error)
	deleteFn      func(ctx context.Context, idOrName string) error
	hasRolesFn    func(ctx context.Context, idOrName string, roles []string) (map[string]bool, error)
	addRolesFn    func(ctx context.Context, idOrName string, roles []string) (*ports.UserView, error)
	removeRolesFn func(ctx context.Context, idOrName string, roles []string) (*ports.UserView, error)
}

func (s *stubUserService) Create(ctx context.Context, input ports.CreateUserInput) (*ports.UserView, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) FindOne(ctx context.Context, idOrName string, includePassword bool) (*ports.UserView, error) {
	return s.findOneFn(ctx, idOrName, includePassword)
}

func (s *stubUserService) FindAll(ctx context.Context, input ports.ListUsersInput) (*ports.ListUsersResult, error) {
	return s.findAllFn(ctx, input)
}

func (s *stubUserService) Delete(ctx context.Context, idOrName string) error {
	return s.deleteFn(ctx, idOrName)
}

func (s *stubUserService) HasRoles(ctx context.Context, idOrName string, roles []string) (map[string]bool, error) {
	return s.hasRolesFn(ctx, idOrName, roles)
}

func (s *stubUserService) AddRoles(ctx context.Context, idOrName string, roles []string) (*ports.UserView, error) {
	return s.addRolesFn(ctx, idOrName, roles)
}

func (s *stubUserService) RemoveRoles(ctx context.Context, idOrName string, roles []string) (*ports.UserView, error) {
	return s.removeRolesFn(ctx, idOrName, roles)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_Create_Success(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*ports.UserView, error) {
			if input.Name != "alice" || input.Password != "x" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.UserView{ID: "id-1", Name: "alice", Roles: []string{domain.RoleUser}}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/users", `{"name":"alice","password":"x"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	meta, _ := resp["meta"].(map[string]any)
	if meta["code"] != domain.CodeUserCreated {
		t.Errorf("expected code USER_CREATED, got %v", meta["code"])
	}
	data, _ := resp["data"].(map[string]any)
	if data["name"] != "alice" {
		t.Errorf("unexpected data payload: %v", data)
	}
	if _, exposed := data["password"]; exposed {
		t.Error("credential must not appear in the create response")
	}
}

func TestUserHandler_Create_MissingFields(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*ports.UserView, error) {
			t.Fatal("service must not be called on validation failure")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/users", `{"name":"alice"}`)
	err := h.Create(c)

	var he *echo.HTTPError
	if err == nil || !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_FindOne_PasswordFlag(t *testing.T) {
	var gotInclude bool
	stub := &stubUserService{
		findOneFn: func(ctx context.Context, idOrName string, includePassword bool) (*ports.UserView, error) {
			gotInclude = includePassword
			return &ports.UserView{ID: "id-1", Name: idOrName}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/users/alice?psw=true", "")
	c.SetParamNames("idOrName")
	c.SetParamValues("alice")
	if err := h.FindOne(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !gotInclude {
		t.Error("psw=true must request the credential")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newTestContext(http.MethodGet, "/users/alice?psw=1", "")
	c.SetParamNames("idOrName")
	c.SetParamValues("alice")
	_ = h.FindOne(c)
	if gotInclude {
		t.Error("only the literal \"true\" may include the credential")
	}
}

func TestUserHandler_FindAll_DefaultsAndParams(t *testing.T) {
	var got ports.ListUsersInput
	stub := &stubUserService{
		findAllFn: func(ctx context.Context, input ports.ListUsersInput) (*ports.ListUsersResult, error) {
			got = input
			return &ports.ListUsersResult{
				Users:      []*ports.UserView{},
				Pagination: ports.Pagination{Page: input.Page, PageSize: input.PageSize},
			}, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(http.MethodGet, "/users", "")
	if err := h.FindAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Page != 1 || got.PageSize != 10 {
		t.Errorf("expected defaults page=1 limit=10, got %+v", got)
	}

	c, _ = newTestContext(http.MethodGet, "/users?search=ali&page=2&limit=5", "")
	if err := h.FindAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Search != "ali" || got.Page != 2 || got.PageSize != 5 {
		t.Errorf("unexpected parsed input: %+v", got)
	}
}

func TestUserHandler_Delete_Success(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, idOrName string) error {
			if idOrName != "alice" {
				t.Fatalf("unexpected identifier: %s", idOrName)
			}
			return nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(http.MethodDelete, "/users/alice", "")
	c.SetParamNames("idOrName")
	c.SetParamValues("alice")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	meta, _ := resp["meta"].(map[string]any)
	if meta["code"] != domain.CodeUserDeleted {
		t.Errorf("expected code USER_DELETED, got %v", meta["code"])
	}
}

func TestUserHandler_HasRoles_ParsesCommaList(t *testing.T) {
	var gotRoles []string
	stub := &stubUserService{
		hasRolesFn: func(ctx context.Context, idOrName string, roles []string) (map[string]bool, error) {
			gotRoles = roles
			return map[string]bool{"USER": true, "ADMIN": false}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/users/alice/roles?roles=USER,ADMIN,", "")
	c.SetParamNames("idOrName")
	c.SetParamValues("alice")
	if err := h.HasRoles(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(gotRoles) != 2 || gotRoles[0] != "USER" || gotRoles[1] != "ADMIN" {
		t.Errorf("unexpected parsed roles: %v", gotRoles)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	data, _ := resp["data"].(map[string]any)
	if data["USER"] != true || data["ADMIN"] != false {
		t.Errorf("unexpected membership map: %v", data)
	}
}

func TestUserHandler_AddRoles_Success(t *testing.T) {
	stub := &stubUserService{
		addRolesFn: func(ctx context.Context, idOrName string, roles []string) (*ports.UserView, error) {
			if len(roles) != 1 || roles[0] != "ADMIN" {
				t.Fatalf("unexpected roles: %v", roles)
			}
			return &ports.UserView{ID: "id-1", Name: idOrName, Roles: []string{"USER", "ADMIN"}}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/users/alice/roles/add", `{"roles":["ADMIN"]}`)
	c.SetParamNames("idOrName")
	c.SetParamValues("alice")
	if err := h.AddRoles(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_AddRoles_EmptyList(t *testing.T) {
	stub := &stubUserService{
		addRolesFn: func(ctx context.Context, idOrName string, roles []string) (*ports.UserView, error) {
			t.Fatal("service must not be called for an empty role list")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(http.MethodPut, "/users/alice/roles/add", `{"roles":[]}`)
	c.SetParamNames("idOrName")
	c.SetParamValues("alice")
	err := h.AddRoles(c)

	var he *echo.HTTPError
	if err == nil || !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_RemoveRoles_ServiceErrorPropagates(t *testing.T) {
	stub := &stubUserService{
		removeRolesFn: func(ctx context.Context, idOrName string, roles []string) (*ports.UserView, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(http.MethodPut, "/users/ghost/roles/remove", `{"roles":["USER"]}`)
	c.SetParamNames("idOrName")
	c.SetParamValues("ghost")

	if err := h.RemoveRoles(c); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound to propagate to the error handler, got %v", err)
	}
}
