package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/jobtrack-backend/internal/domain"
	"github.com/yungbote/jobtrack-backend/internal/platform/apierr"
	"github.com/yungbote/jobtrack-backend/internal/services"
)

type fakeApplicationService struct {
	created   services.ApplicationInput
	updatedID uuid.UUID
	err       error
}

func (f *fakeApplicationService) List(context.Context) ([]*types.JobApplication, error) {
	return []*types.JobApplication{}, f.err
}

func (f *fakeApplicationService) Create(_ context.Context, in services.ApplicationInput) (*types.JobApplication, error) {
	f.created = in
	if f.err != nil {
		return nil, f.err
	}
	return &types.JobApplication{ID: uuid.New(), Company: *in.Company}, nil
}

func (f *fakeApplicationService) Update(_ context.Context, id uuid.UUID, _ services.ApplicationInput) (*types.JobApplication, error) {
	f.updatedID = id
	if f.err != nil {
		return nil, f.err
	}
	return &types.JobApplication{ID: id}, nil
}

func (f *fakeApplicationService) Delete(context.Context, uuid.UUID) error {
	return f.err
}

func (f *fakeApplicationService) Stats(context.Context) ([]types.StatusCount, error) {
	return []types.StatusCount{}, f.err
}

func newApplicationRouter(svc *fakeApplicationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewApplicationHandler(svc)
	r := gin.New()
	r.POST("/api/applications", h.Create)
	r.PUT("/api/applications/:id", h.Update)
	r.DELETE("/api/applications/:id", h.Delete)
	return r
}

func TestCreateApplicationBindsCamelCase(t *testing.T) {
	svc := &fakeApplicationService{}
	body := `{"company":"Acme","position":"SRE","jobDescription":"On call","requiredSkills":[{"name":"Go","importance":"required"}],"offerDetails":{"salary":1000}}`
	req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newApplicationRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if svc.created.JobDescription == nil || *svc.created.JobDescription != "On call" {
		t.Fatalf("jobDescription not bound: %+v", svc.created)
	}
	if len(svc.created.RequiredSkills) != 1 || svc.created.RequiredSkills[0].Name != "Go" {
		t.Fatalf("requiredSkills not bound: %+v", svc.created.RequiredSkills)
	}
	if svc.created.Offer == nil || svc.created.Offer.Salary == nil || *svc.created.Offer.Salary != 1000 {
		t.Fatalf("offerDetails not bound: %+v", svc.created.Offer)
	}
}

func TestApplicationHandlerRejectsBadIDs(t *testing.T) {
	svc := &fakeApplicationService{}
	r := newApplicationRouter(svc)

	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/api/applications/not-a-uuid", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: unexpected status: got=%d want=%d", method, rec.Code, http.StatusBadRequest)
		}
		if !strings.Contains(rec.Body.String(), `"invalid_id"`) {
			t.Fatalf("%s: unexpected body: %s", method, rec.Body.String())
		}
	}
}

func TestDeleteApplicationNotFound(t *testing.T) {
	svc := &fakeApplicationService{err: apierr.NotFound("application_not_found", "application not found")}
	req := httptest.NewRequest(http.MethodDelete, "/api/applications/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	newApplicationRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), `"application_not_found"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
