package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"user-presence-api/internal/application/ports"
	"user-presence-api/internal/domain/binary_content"
	domain "user-presence-api/internal/domain/user"
	"user-presence-api/internal/domain/user_status"
	jwtSvc "user-presence-api/internal/infrastructure/jwt"
)

const testSecret = "test-secret"

var errNotUsed = errors.New("not used")

type FakeUserService struct {
	CreateFunc         func(ctx context.Context, req ports.UserCreateRequest) (*domain.View, error)
	FindFunc           func(ctx context.Context, id domain.UUID) (*domain.View, error)
	FindAllFunc        func(ctx context.Context) ([]domain.View, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	UpdateFunc         func(ctx context.Context, id domain.UUID, req ports.UserUpdateRequest) (*domain.View, error)
	DeleteFunc         func(ctx context.Context, id domain.UUID) error
}

func (f *FakeUserService) Create(ctx context.Context, req ports.UserCreateRequest) (*domain.View, error) {
	if f.CreateFunc == nil {
		return nil, errNotUsed
	}
	return f.CreateFunc(ctx, req)
}
func (f *FakeUserService) Find(ctx context.Context, id domain.UUID) (*domain.View, error) {
	if f.FindFunc == nil {
		return nil, errNotUsed
	}
	return f.FindFunc(ctx, id)
}
func (f *FakeUserService) FindAll(ctx context.Context) ([]domain.View, error) {
	if f.FindAllFunc == nil {
		return nil, errNotUsed
	}
	return f.FindAllFunc(ctx)
}
func (f *FakeUserService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if f.FindByUsernameFunc == nil {
		return nil, errNotUsed
	}
	return f.FindByUsernameFunc(ctx, username)
}
func (f *FakeUserService) Update(ctx context.Context, id domain.UUID, req ports.UserUpdateRequest) (*domain.View, error) {
	if f.UpdateFunc == nil {
		return nil, errNotUsed
	}
	return f.UpdateFunc(ctx, id, req)
}
func (f *FakeUserService) Delete(ctx context.Context, id domain.UUID) error {
	if f.DeleteFunc == nil {
		return errNotUsed
	}
	return f.DeleteFunc(ctx, id)
}

type FakeUserStatusService struct {
	FindFunc           func(ctx context.Context, id uuid.UUID) (*user_status.UserStatus, error)
	FindAllFunc        func(ctx context.Context) (user_status.UserStatuses, error)
	UpdateFunc         func(ctx context.Context, id uuid.UUID, ts time.Time) (*user_status.UserStatus, error)
	UpdateByUserIDFunc func(ctx context.Context, userID uuid.UUID, ts time.Time) (*user_status.UserStatus, error)
	Online             bool
}

func (f *FakeUserStatusService) Create(context.Context, uuid.UUID, time.Time) (*user_status.UserStatus, error) {
	return nil, errNotUsed
}
func (f *FakeUserStatusService) Find(ctx context.Context, id uuid.UUID) (*user_status.UserStatus, error) {
	if f.FindFunc == nil {
		return nil, errNotUsed
	}
	return f.FindFunc(ctx, id)
}
func (f *FakeUserStatusService) FindByUserID(context.Context, uuid.UUID) (*user_status.UserStatus, error) {
	return nil, errNotUsed
}
func (f *FakeUserStatusService) FindAll(ctx context.Context) (user_status.UserStatuses, error) {
	if f.FindAllFunc == nil {
		return nil, errNotUsed
	}
	return f.FindAllFunc(ctx)
}
func (f *FakeUserStatusService) Update(ctx context.Context, id uuid.UUID, ts time.Time) (*user_status.UserStatus, error) {
	if f.UpdateFunc == nil {
		return nil, errNotUsed
	}
	return f.UpdateFunc(ctx, id, ts)
}
func (f *FakeUserStatusService) UpdateByUserID(ctx context.Context, userID uuid.UUID, ts time.Time) (*user_status.UserStatus, error) {
	if f.UpdateByUserIDFunc == nil {
		return nil, errNotUsed
	}
	return f.UpdateByUserIDFunc(ctx, userID, ts)
}
func (f *FakeUserStatusService) Delete(context.Context, uuid.UUID) error         { return errNotUsed }
func (f *FakeUserStatusService) DeleteByUserID(context.Context, uuid.UUID) error { return errNotUsed }
func (f *FakeUserStatusService) IsOnline(user_status.UserStatus) bool           { return f.Online }

type FakeBinaryContentService struct {
	FindFunc                 func(ctx context.Context, id uuid.UUID) (*binary_content.BinaryContent, error)
	FindAllByIDsFunc         func(ctx context.Context, ids []uuid.UUID) (binary_content.BinaryContents, error)
	FindMetadataFunc         func(ctx context.Context, id uuid.UUID) (*binary_content.BinaryContent, error)
	FindAllMetadataByIDsFunc func(ctx context.Context, ids []uuid.UUID) (binary_content.BinaryContents, error)
}

func (f *FakeBinaryContentService) Create(context.Context, ports.BinaryContentCreateRequest) (*binary_content.BinaryContent, error) {
	return nil, errNotUsed
}
func (f *FakeBinaryContentService) Find(ctx context.Context, id uuid.UUID) (*binary_content.BinaryContent, error) {
	if f.FindFunc == nil {
		return nil, errNotUsed
	}
	return f.FindFunc(ctx, id)
}
func (f *FakeBinaryContentService) FindAllByIDs(ctx context.Context, ids []uuid.UUID) (binary_content.BinaryContents, error) {
	if f.FindAllByIDsFunc == nil {
		return nil, errNotUsed
	}
	return f.FindAllByIDsFunc(ctx, ids)
}
func (f *FakeBinaryContentService) FindMetadata(ctx context.Context, id uuid.UUID) (*binary_content.BinaryContent, error) {
	if f.FindMetadataFunc == nil {
		return nil, errNotUsed
	}
	return f.FindMetadataFunc(ctx, id)
}
func (f *FakeBinaryContentService) FindAllMetadataByIDs(ctx context.Context, ids []uuid.UUID) (binary_content.BinaryContents, error) {
	if f.FindAllMetadataByIDsFunc == nil {
		return nil, errNotUsed
	}
	return f.FindAllMetadataByIDsFunc(ctx, ids)
}
func (f *FakeBinaryContentService) Exists(context.Context, uuid.UUID) (bool, error) {
	return false, errNotUsed
}
func (f *FakeBinaryContentService) Delete(context.Context, uuid.UUID) error { return errNotUsed }

type fakeAuthService struct {
	GenerateTokenFunc func(u *domain.User, password string) (string, error)
}

func (f *fakeAuthService) GenerateToken(u *domain.User, password string) (string, error) {
	return f.GenerateTokenFunc(u, password)
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func bearer(t *testing.T, userID uuid.UUID) map[string]string {
	t.Helper()
	token, err := jwtSvc.New(testSecret).GenerateJWT(userID.String(), "ada", time.Minute)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf io.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type formFile struct {
	name    string
	content []byte
}

func doMultipart(
	t *testing.T,
	r *gin.Engine,
	method, path string,
	fields map[string]string,
	file *formFile,
	headers map[string]string,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		fw, err := w.CreateFormFile(profileField, file.name)
		require.NoError(t, err)
		_, err = fw.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func ptr[T any](v T) *T { return &v }
