package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"Gigbell/internal/config"
	"Gigbell/internal/initial"
	alertEntity "Gigbell/internal/modules/alert/domain/entity"
	notificationEntity "Gigbell/internal/modules/notification/domain/entity"
	userEntity "Gigbell/internal/modules/user/domain/entity"
	"Gigbell/internal/testutil"
	"Gigbell/pkg/back"
	"Gigbell/pkg/util/myjwt"
	"Gigbell/pkg/xerr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	conf := config.Default()
	conf.JwtConfig.Key = "app-test"
	conf.KafkaConfig.Brokers = nil
	conf.NotifyConfig.SchedulerEnabled = false
	conf.PushConfig.Enabled = false
	return conf
}

func newTestApp(t *testing.T, conf *config.Config) (*App, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t, initial.Models()...)
	a, err := New(conf, db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return a, db
}

func request(t *testing.T, a *App, method, path, token string, body interface{}) back.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp back.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func dataMap(t *testing.T, resp back.Response) map[string]interface{} {
	t.Helper()
	require.Equal(t, xerr.OK, resp.Code, resp.Message)
	m, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "%#v", resp.Data)
	return m
}

func token(t *testing.T, a *App, userID int64, role string) string {
	t.Helper()
	tok, err := a.JWT.GenerateToken(userID, "", role)
	require.NoError(t, err)
	return tok
}

func TestApp_EndToEnd(t *testing.T) {
	var pushed atomic.Int32
	expo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushed.Add(1)
		_, _ = w.Write([]byte(`{"data":{"status":"ok","id":"ticket"}}`))
	}))
	defer expo.Close()

	conf := testConfig()
	conf.PushConfig.Enabled = true
	conf.PushConfig.Endpoint = expo.URL
	a, db := newTestApp(t, conf)

	pushToken := "ExponentPushToken[fan]"
	require.NoError(t, db.Create(&userEntity.User{ID: 1, Nickname: "fan", AlarmEnabled: true, PushToken: &pushToken}).Error)
	require.NoError(t, db.Create(&userEntity.User{ID: 2, Nickname: "watcher"}).Error)
	require.NoError(t, db.Create(&alertEntity.UserFavoriteArtist{UserID: 1, ArtistID: 100, CreatedAt: time.Now()}).Error)

	admin := token(t, a, 99, myjwt.RoleAdmin)
	fan := token(t, a, 1, myjwt.RoleUser)
	watcher := token(t, a, 2, myjwt.RoleUser)

	// 新演出：关注艺人的用户收到通知
	created := dataMap(t, request(t, a, http.MethodPost, "/performance", admin, map[string]interface{}{
		"title":            "Winter Live",
		"date":             "2030-01-10",
		"ticket_open_date": "2030-01-01",
		"artist_ids":       []int64{100},
	}))
	perfID := int64(created["id"].(float64))

	resp := request(t, a, http.MethodGet, "/notifications", fan, nil)
	require.Equal(t, xerr.OK, resp.Code)
	items := resp.Data.([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, notificationEntity.TypeNewPerformanceByArtist, items[0].(map[string]interface{})["type"])

	// 开票提醒
	resp = request(t, a, http.MethodPost, "/alerts", watcher, map[string]interface{}{"type": "ticket_open", "refId": perfID})
	require.Equal(t, xerr.OK, resp.Code, resp.Message)

	due := "/notifications/dispatch-due?now=2029-12-31T12:00:00%2B09:00"
	res := dataMap(t, request(t, a, http.MethodPost, due, admin, nil))
	assert.EqualValues(t, 1, res["created_ticket_open"])
	assert.EqualValues(t, 0, res["created_favorite_d1"])

	res = dataMap(t, request(t, a, http.MethodPost, due, admin, nil))
	assert.EqualValues(t, 0, res["created_ticket_open"])

	res = dataMap(t, request(t, a, http.MethodGet, "/notices/unread-count", watcher, nil))
	assert.EqualValues(t, 1, res["count"])

	// 补发不会重复
	res = dataMap(t, request(t, a, http.MethodPost, "/notifications/reconcile-new-performances?hours=1", admin, nil))
	assert.EqualValues(t, 1, res["scanned_performances"])
	assert.EqualValues(t, 0, res["created_notifications"])

	// 关闭时本地推送队列先发完：只有 fan 登记了设备
	require.NoError(t, a.Close(context.Background()))
	assert.Equal(t, int32(1), pushed.Load())
}

func TestApp_UserRoutes(t *testing.T) {
	a, db := newTestApp(t, testConfig())
	require.NoError(t, db.Create(&userEntity.User{ID: 5, Nickname: "u"}).Error)
	user := token(t, a, 5, myjwt.RoleUser)

	res := dataMap(t, request(t, a, http.MethodPut, "/users/me/push", user, map[string]interface{}{
		"push_token": "ExponentPushToken[x]", "alarm_enabled": true,
	}))
	assert.Equal(t, true, res["alarm_enabled"])

	resp := request(t, a, http.MethodPost, "/likes", user, map[string]interface{}{"type": "artist", "refId": 7})
	assert.Equal(t, xerr.OK, resp.Code)
	resp = request(t, a, http.MethodPost, "/likes", user, map[string]interface{}{"type": "artist", "refId": 7})
	assert.Equal(t, xerr.Conflict, resp.Code)

	resp = request(t, a, http.MethodGet, "/performance/404", user, nil)
	assert.Equal(t, xerr.NotFound, resp.Code)

	resp = request(t, a, http.MethodPost, "/notifications/dispatch-due", user, nil)
	assert.Equal(t, xerr.Forbidden, resp.Code)
}

func TestApp_OptionalComponents(t *testing.T) {
	conf := testConfig()
	conf.NotifyConfig.SchedulerEnabled = true
	conf.MCPConfig.Enabled = true
	a, _ := newTestApp(t, conf)
	assert.NotNil(t, a.scheduler)
	require.NotNil(t, a.MCPServer)
	assert.Len(t, a.MCPServer.ListTools(), 3)

	conf = testConfig()
	conf.NotifyConfig.DispatchSpec = "not a spec"
	conf.NotifyConfig.SchedulerEnabled = true
	_, err := New(conf, testutil.NewDB(t, initial.Models()...))
	assert.Error(t, err)
}
