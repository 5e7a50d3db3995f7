package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"AeroComply/internal/modules/compliance/domain/entity"
	"AeroComply/internal/modules/notification/application/dto/request"
	"AeroComply/internal/modules/notification/application/dto/respond"
	notificationEntity "AeroComply/internal/modules/notification/domain/entity"
	"AeroComply/pkg/xerr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePreferenceService struct {
	gotUser string
	gotReq  request.UpdatePreferencesRequest
}

func (f *fakePreferenceService) GetPreferences(ctx context.Context, userID string) (*notificationEntity.NotificationPreferences, error) {
	f.gotUser = userID
	if userID == "" {
		return nil, xerr.New(xerr.Unauthorized, "未登录")
	}
	return notificationEntity.DefaultPreferences(userID), nil
}

func (f *fakePreferenceService) ReplacePreferences(ctx context.Context, userID string, req request.UpdatePreferencesRequest) (*notificationEntity.NotificationPreferences, error) {
	f.gotUser = userID
	f.gotReq = req
	return &notificationEntity.NotificationPreferences{UserID: userID, DefectCritical: req.DefectCritical}, nil
}

type fakeDelivery struct {
	gotReq request.BroadcastRequest
}

func (f *fakeDelivery) DispatchAlerts(ctx context.Context, alerts []*entity.RiskAlert) {}

func (f *fakeDelivery) NotifyScanCompleted(ctx context.Context, created int) {}

func (f *fakeDelivery) Broadcast(ctx context.Context, req request.BroadcastRequest) (*respond.BroadcastRespond, error) {
	f.gotReq = req
	return &respond.BroadcastRespond{Delivered: 3}, nil
}

type envelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
}

func newEngine(userID string, register func(rg *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rg := r.Group("/")
	rg.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("uuid", userID)
		}
		c.Next()
	})
	register(rg)
	return r
}

func serve(t *testing.T, r *gin.Engine, method, path string, body []byte) envelope {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestPreferenceHandler(t *testing.T) {
	svc := &fakePreferenceService{}
	r := newEngine("u-1", NewPreferenceHandler(svc).RegisterRoutes)

	env := serve(t, r, http.MethodGet, "/notification/preferences", nil)
	assert.Equal(t, xerr.OK, env.Code)
	assert.Equal(t, "u-1", svc.gotUser)
	assert.Contains(t, string(env.Data), `"realtime_enabled":true`)

	env = serve(t, r, http.MethodPut, "/notification/preferences", []byte(`{"defect_critical":true,"email_enabled":false}`))
	assert.Equal(t, xerr.OK, env.Code)
	assert.True(t, svc.gotReq.DefectCritical)
	assert.False(t, svc.gotReq.EmailEnabled)

	env = serve(t, r, http.MethodPut, "/notification/preferences", []byte(`{"defect_critical":"yes"}`))
	assert.Equal(t, xerr.BadRequest, env.Code)
}

func TestPreferenceHandler_Anonymous(t *testing.T) {
	r := newEngine("", NewPreferenceHandler(&fakePreferenceService{}).RegisterRoutes)
	env := serve(t, r, http.MethodGet, "/notification/preferences", nil)
	assert.Equal(t, xerr.Unauthorized, env.Code)
}

func TestBroadcastHandler(t *testing.T) {
	svc := &fakeDelivery{}
	r := newEngine("ops", NewBroadcastHandler(svc).RegisterRoutes)

	env := serve(t, r, http.MethodPost, "/realtime/broadcast", []byte(`{"type":"notice","message":"runway 09 closed","org_id":"org-a"}`))
	assert.Equal(t, xerr.OK, env.Code)
	assert.JSONEq(t, `{"delivered":3}`, string(env.Data))
	assert.Equal(t, "org-a", svc.gotReq.OrgID)

	env = serve(t, r, http.MethodPost, "/realtime/broadcast", []byte(`{"message":"no type"}`))
	assert.Equal(t, xerr.BadRequest, env.Code)
}
