package leaverequest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leavemgmt/internal/leaverequest"
	leaverequesterrors "leavemgmt/internal/leaverequest/errors"
	"leavemgmt/internal/shared/contextutil"
	"leavemgmt/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeLeaveRequestService struct {
	CreateFn        func(ctx context.Context, actorID string, req leaverequest.CreateLeaveRequestRequest) (response.CommandResponse, error)
	GetAllFn        func(ctx context.Context) ([]leaverequest.LeaveRequestResponse, error)
	GetByEmployeeFn func(ctx context.Context, employeeID string) ([]leaverequest.LeaveRequestResponse, error)
	GetByIDFn       func(ctx context.Context, id string) (leaverequest.LeaveRequestResponse, error)
	ApproveFn       func(ctx context.Context, actorID, id string) (response.CommandResponse, error)
	RejectFn        func(ctx context.Context, actorID, id string) (response.CommandResponse, error)
	CancelFn        func(ctx context.Context, actorID, id string) (response.CommandResponse, error)
	DeleteFn        func(ctx context.Context, id string) error
}

func (f *fakeLeaveRequestService) Create(ctx context.Context, actorID string, req leaverequest.CreateLeaveRequestRequest) (response.CommandResponse, error) {
	return f.CreateFn(ctx, actorID, req)
}

func (f *fakeLeaveRequestService) GetAll(ctx context.Context) ([]leaverequest.LeaveRequestResponse, error) {
	return f.GetAllFn(ctx)
}

func (f *fakeLeaveRequestService) GetByEmployee(ctx context.Context, employeeID string) ([]leaverequest.LeaveRequestResponse, error) {
	return f.GetByEmployeeFn(ctx, employeeID)
}

func (f *fakeLeaveRequestService) GetByID(ctx context.Context, id string) (leaverequest.LeaveRequestResponse, error) {
	return f.GetByIDFn(ctx, id)
}

func (f *fakeLeaveRequestService) Approve(ctx context.Context, actorID, id string) (response.CommandResponse, error) {
	return f.ApproveFn(ctx, actorID, id)
}

func (f *fakeLeaveRequestService) Reject(ctx context.Context, actorID, id string) (response.CommandResponse, error) {
	return f.RejectFn(ctx, actorID, id)
}

func (f *fakeLeaveRequestService) Cancel(ctx context.Context, actorID, id string) (response.CommandResponse, error) {
	return f.CancelFn(ctx, actorID, id)
}

func (f *fakeLeaveRequestService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func setupHandlerTest(svc leaverequest.Service, actorID string, method, body string) (*leaverequest.Handler, *httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)

	h := leaverequest.NewHandler(svc, zap.NewNop())
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, "/leave-requests", reader)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(contextutil.WithActorID(req.Context(), actorID))
	c.Request = req

	return h, w, c
}

func TestLeaveRequestHandler_Create(t *testing.T) {
	actorID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			CreateFn: func(ctx context.Context, aid string, req leaverequest.CreateLeaveRequestRequest) (response.CommandResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, "2026-03-02", req.StartDate)
				return response.CommandOK("Request submitted", uuid.New().String()), nil
			},
		}

		body := `{"leave_type_id":"` + uuid.New().String() + `","start_date":"2026-03-02","end_date":"2026-03-06"}`
		h, w, c := setupHandlerTest(svc, actorID, http.MethodPost, body)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Request submitted")
	})

	t.Run("validation failure surfaces violations", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			CreateFn: func(ctx context.Context, aid string, req leaverequest.CreateLeaveRequestRequest) (response.CommandResponse, error) {
				return response.CommandFailed("Request failed", []string{leaverequest.ViolationInsufficientBalance}), nil
			},
		}

		body := `{"leave_type_id":"` + uuid.New().String() + `","start_date":"2026-03-02","end_date":"2026-03-20"}`
		h, w, c := setupHandlerTest(svc, actorID, http.MethodPost, body)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), leaverequest.ViolationInsufficientBalance)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := &fakeLeaveRequestService{}
		h, w, c := setupHandlerTest(svc, actorID, http.MethodPost, `{"leave_type_id":`)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveRequestHandler_Approve(t *testing.T) {
	actorID := uuid.New().String()
	requestID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			ApproveFn: func(ctx context.Context, aid, id string) (response.CommandResponse, error) {
				assert.Equal(t, requestID, id)
				return response.CommandOK("Request approved", id), nil
			},
		}

		h, w, c := setupHandlerTest(svc, actorID, http.MethodPost, "")
		c.Params = gin.Params{{Key: "id", Value: requestID}}

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Request approved")
	})

	t.Run("insufficient balance conflicts", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			ApproveFn: func(ctx context.Context, aid, id string) (response.CommandResponse, error) {
				return response.CommandFailed("Approval failed", []string{leaverequest.ViolationInsufficientBalance}), nil
			},
		}

		h, w, c := setupHandlerTest(svc, actorID, http.MethodPost, "")
		c.Params = gin.Params{{Key: "id", Value: requestID}}

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			ApproveFn: func(ctx context.Context, aid, id string) (response.CommandResponse, error) {
				return response.CommandResponse{}, leaverequesterrors.ErrLeaveRequestNotFound
			},
		}

		h, w, c := setupHandlerTest(svc, actorID, http.MethodPost, "")
		c.Params = gin.Params{{Key: "id", Value: requestID}}

		h.Approve(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLeaveRequestHandler_Cancel(t *testing.T) {
	actorID := uuid.New().String()
	requestID := uuid.New().String()

	t.Run("not owner maps to 403", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			CancelFn: func(ctx context.Context, aid, id string) (response.CommandResponse, error) {
				return response.CommandResponse{}, leaverequesterrors.ErrNotRequestOwner
			},
		}

		h, w, c := setupHandlerTest(svc, actorID, http.MethodPost, "")
		c.Params = gin.Params{{Key: "id", Value: requestID}}

		h.Cancel(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestLeaveRequestHandler_GetMine(t *testing.T) {
	actorID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			GetByEmployeeFn: func(ctx context.Context, employeeID string) ([]leaverequest.LeaveRequestResponse, error) {
				assert.Equal(t, actorID, employeeID)
				return []leaverequest.LeaveRequestResponse{
					{ID: uuid.New().String(), Status: "PENDING", TotalDays: 3},
				}, nil
			},
		}

		h, w, c := setupHandlerTest(svc, actorID, http.MethodGet, "")

		h.GetMine(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "PENDING")
	})
}
