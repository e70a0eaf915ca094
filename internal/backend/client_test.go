package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

type observerStub struct {
	ops []string
}

func (o *observerStub) ObserveUpstream(operation string, status int, _ time.Duration) {
	o.ops = append(o.ops, operation)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...func(*Options)) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	o := Options{BaseURL: srv.URL + "/api/"}
	for _, fn := range opts {
		fn(&o)
	}
	return New(o)
}

func TestClientSendsBearerTokenAndUnwrapsEnvelope(t *testing.T) {
	obs := &observerStub{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/Users", r.URL.Path)
		assert.Equal(t, "Teacher", r.URL.Query().Get("role"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		_, _ = io.WriteString(w, `{"data":[{"id":"t1","name":"Dr Smith","role":"Teacher","isActive":true}],"message":"","isSuccess":true}`)
	}, func(o *Options) { o.Observer = obs })

	ctx := WithRequestID(WithToken(context.Background(), "tok"), "req-1")
	users, err := client.ListUsers(ctx, models.RoleTeacher)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "t1", *users[0].ID)
	assert.Equal(t, []string{"admin.users.list"}, obs.ops)
}

func TestClientAcceptsSuccessFlagAlias(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":12,"success":true}`)
	})

	total, err := client.AdminTotal(context.Background(), TotalStudents)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
}

func TestClientUnsuccessfulEnvelopeSurfacesMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":null,"message":"Department name already exists","isSuccess":false,"errorCode":409}`)
	})

	err := client.CreateDepartment(context.Background(), dto.DepartmentPayload{Name: "Science"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrBackendFailure.Code, appErr.Code)
	assert.Equal(t, "Department name already exists", appErr.Message)
}

func TestClientEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := client.ListCourses(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.MessageEmptyResponse, appErrors.FromError(err).Message)
}

func TestClientMalformedPayloadIsMappingError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":"not-a-list","isSuccess":true}`)
	})

	_, err := client.ListCourses(context.Background())
	assert.True(t, appErrors.Is(err, appErrors.ErrMapping))
}

func TestClientStatusMapping(t *testing.T) {
	cases := []struct {
		status  int
		body    string
		code    string
		message string
	}{
		{http.StatusUnauthorized, "", appErrors.ErrSessionExpired.Code, appErrors.MessageSessionExpired},
		{http.StatusForbidden, "", appErrors.ErrForbidden.Code, appErrors.MessageForbidden},
		{http.StatusNotFound, "", appErrors.ErrNotFound.Code, appErrors.MessageNotFound},
		{http.StatusInternalServerError, "", appErrors.ErrUpstreamServer.Code, appErrors.MessageServerError},
		{http.StatusBadRequest, `{"message":"Semester is invalid"}`, appErrors.ErrBackendFailure.Code, "Semester is invalid"},
		{http.StatusConflict, "", appErrors.ErrBackendFailure.Code, appErrors.MessageGeneric},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			var unauthorized int32
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}, func(o *Options) {
				o.OnUnauthorized = func(context.Context) { atomic.AddInt32(&unauthorized, 1) }
			})

			err := client.DeleteClass(context.Background(), 3)
			appErr := appErrors.FromError(err)
			assert.Equal(t, tc.code, appErr.Code)
			assert.Equal(t, tc.message, appErr.Message)
			if tc.status == http.StatusUnauthorized {
				assert.Equal(t, int32(1), atomic.LoadInt32(&unauthorized))
			} else {
				assert.Zero(t, atomic.LoadInt32(&unauthorized))
			}
		})
	}
}

func TestClientUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := New(Options{BaseURL: srv.URL, Timeout: time.Second})
	_, err := client.ListManagedClasses(context.Background())
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrBackendUnreachable.Code, appErr.Code)
	assert.Equal(t, appErrors.MessageBackendUnreachable, appErr.Message)
}

func TestUpdateClassSendsFullPayload(t *testing.T) {
	var got map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/management/Classes/7", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"data":true,"isSuccess":true}`)
	})

	courseID := int64(5)
	err := client.UpdateClass(context.Background(), 7, dto.ClassPayload{Name: "10A", Semester: 1, CourseID: &courseID})
	require.NoError(t, err)
	assert.Equal(t, float64(7), got["id"])
	assert.Equal(t, float64(5), got["courseId"])
	assert.Nil(t, got["teacherId"])
	assert.Equal(t, []interface{}{}, got["studentIds"])
}

func TestSubmitAssignmentUploadsMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "essay.pdf", header.Filename)
		assert.Equal(t, "hello", string(content))
		_, _ = io.WriteString(w, `{"data":true,"isSuccess":true}`)
	})

	require.NoError(t, client.SubmitAssignment(context.Background(), 4, "essay.pdf", strings.NewReader("hello")))
}

func TestOpenNotificationStream(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "data: {\"id\":1}\n\n")
	})

	body, err := client.OpenNotificationStream(WithToken(context.Background(), "tok"))
	require.NoError(t, err)
	defer body.Close()
	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `{"id":1}`)
}

func TestOpenNotificationStreamRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.OpenNotificationStream(context.Background())
	assert.Equal(t, MessageStreamUnavailable, appErrors.FromError(err).Message)
}
