// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-repair-desk/internal/service"
	"github.com/MKhiriev/go-repair-desk/internal/store"
	"github.com/MKhiriev/go-repair-desk/models"
)

func sampleRequest() models.RepairRequest {
	return models.RepairRequest{
		RequestID:          5,
		StartDate:          models.NewDate(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)),
		EquipmentType:      "Refrigerator",
		EquipmentModel:     "X1",
		ProblemDescription: "No cooling",
		Status:             models.StatusNew,
		ClientID:           10,
	}
}

func TestListRequests(t *testing.T) {
	t.Run("query parameters reach the service", func(t *testing.T) {
		h, m := newTestHandler(t)
		token := m.expectAuth(clientCaller)
		m.requests.EXPECT().ListRequests(gomock.Any(), clientCaller, models.RequestQuery{
			Page:   2,
			Limit:  5,
			Status: "New",
			Search: "5",
		}).Return(models.RequestPage{
			Data:       []models.RepairRequest{sampleRequest()},
			Pagination: models.NewPagination(2, 5, 6),
		}, nil)

		rr := serve(h, http.MethodGet, "/api/requests/?page=2&limit=5&status=New&search=5", "", token)

		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Equal(t, int64(1), gjson.Get(body, "data.#").Int())
		assert.Equal(t, "Refrigerator", gjson.Get(body, "data.0.climate_tech_type").String())
		assert.Equal(t, "2026-03-11", gjson.Get(body, "data.0.start_date").String())
		assert.Equal(t, int64(2), gjson.Get(body, "pagination.page").Int())
		assert.Equal(t, int64(6), gjson.Get(body, "pagination.total").Int())
		assert.Equal(t, int64(2), gjson.Get(body, "pagination.pages").Int())
	})

	t.Run("malformed numbers fall back to defaults", func(t *testing.T) {
		h, m := newTestHandler(t)
		token := m.expectAuth(managerCaller)
		m.requests.EXPECT().ListRequests(gomock.Any(), managerCaller, models.RequestQuery{}).
			Return(models.RequestPage{Pagination: models.NewPagination(1, 10, 0)}, nil)

		rr := serve(h, http.MethodGet, "/api/requests/?page=x&limit=", "", token)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, gjson.Get(rr.Body.String(), "data").IsArray())
		assert.Equal(t, int64(0), gjson.Get(rr.Body.String(), "data.#").Int())
	})
}

func TestGetRequest(t *testing.T) {
	tests := []struct {
		name       string
		caller     models.Caller
		err        error
		wantStatus int
	}{
		{name: "owner", caller: clientCaller, wantStatus: http.StatusOK},
		{name: "staff", caller: operatorCaller, wantStatus: http.StatusOK},
		{
			name:       "other client",
			caller:     models.Caller{UserID: 11, Role: models.RoleClient},
			err:        &service.ForbiddenError{Actual: models.RoleClient, Reason: "access denied"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing",
			caller:     managerCaller,
			err:        fmt.Errorf("get request: %w", store.ErrRequestNotFound),
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			token := m.expectAuth(tt.caller)
			request := sampleRequest()
			if tt.err != nil {
				request = models.RepairRequest{}
			}
			m.requests.EXPECT().GetRequest(gomock.Any(), tt.caller, int64(5)).Return(request, tt.err)

			rr := serve(h, http.MethodGet, "/api/requests/5", "", token)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.err == nil {
				assert.Equal(t, int64(5), gjson.Get(rr.Body.String(), "request_id").Int())
				assert.Equal(t, gjson.Null, gjson.Get(rr.Body.String(), "master_id").Type)
			}
		})
	}
}

func TestGetRequest_OwnershipErrorMessage(t *testing.T) {
	other := models.Caller{UserID: 11, Role: models.RoleClient}
	h, m := newTestHandler(t)
	token := m.expectAuth(other)
	m.requests.EXPECT().GetRequest(gomock.Any(), other, int64(5)).
		Return(models.RepairRequest{}, &service.ForbiddenError{Actual: models.RoleClient, Reason: "access denied"})

	rr := serve(h, http.MethodGet, "/api/requests/5", "", token)

	require.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "access denied", gjson.Get(rr.Body.String(), "error").String())
	assert.False(t, gjson.Get(rr.Body.String(), "required_roles").Exists())
}

func TestCreateRequest(t *testing.T) {
	body := `{"climate_tech_type":"Refrigerator","climate_tech_model":"X1","problem_description":"No cooling","client_id":10}`

	t.Run("created", func(t *testing.T) {
		h, m := newTestHandler(t)
		token := m.expectAuth(clientCaller)
		m.requests.EXPECT().CreateRequest(gomock.Any(), clientCaller, models.CreateRequestInput{
			EquipmentType:      "Refrigerator",
			EquipmentModel:     "X1",
			ProblemDescription: "No cooling",
			ClientID:           10,
		}).Return(sampleRequest(), nil)

		rr := serve(h, http.MethodPost, "/api/requests/", body, token)

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t,
			`{"message":"Request created successfully","request_id":5,"request_status":"New"}`,
			rr.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		h, m := newTestHandler(t)
		token := m.expectAuth(operatorCaller)
		m.requests.EXPECT().CreateRequest(gomock.Any(), operatorCaller, gomock.Any()).
			Return(models.RepairRequest{}, fmt.Errorf("%w: missing required fields", service.ErrInvalidInput))

		rr := serve(h, http.MethodPost, "/api/requests/", `{"climate_tech_type":"Fridge"}`, token)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "invalid input: missing required fields", gjson.Get(rr.Body.String(), "error").String())
	})
}

func TestUpdateRequest(t *testing.T) {
	t.Run("partial update with explicit null", func(t *testing.T) {
		h, m := newTestHandler(t)
		token := m.expectAuth(specialistCaller)
		updated := sampleRequest()
		updated.Status = models.StatusInRepair

		m.requests.EXPECT().UpdateRequest(gomock.Any(), specialistCaller, int64(5), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ models.Caller, _ int64, input models.UpdateRequestInput) (models.RepairRequest, error) {
				assert.Equal(t, models.Some("In repair"), input.Status)
				assert.Equal(t, models.Null[int64](), input.MasterID)
				assert.False(t, input.RepairParts.Set)
				assert.False(t, input.CompletionDate.Set)
				return updated, nil
			})

		rr := serve(h, http.MethodPut, "/api/requests/5", `{"request_status":"In repair","master_id":null}`, token)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Request updated successfully", gjson.Get(rr.Body.String(), "message").String())
		assert.Equal(t, "In repair", gjson.Get(rr.Body.String(), "request_status").String())
	})

	t.Run("illegal transition", func(t *testing.T) {
		h, m := newTestHandler(t)
		token := m.expectAuth(managerCaller)
		m.requests.EXPECT().UpdateRequest(gomock.Any(), managerCaller, int64(5), gomock.Any()).
			Return(models.RepairRequest{}, fmt.Errorf("%w: %q -> %q", service.ErrIllegalStatusTransition, "Ready for pickup", "New"))

		rr := serve(h, http.MethodPut, "/api/requests/5", `{"request_status":"New"}`, token)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, gjson.Get(rr.Body.String(), "error").String(), service.ErrIllegalStatusTransition.Error())
	})

	t.Run("client is rejected by the gate", func(t *testing.T) {
		h, m := newTestHandler(t)
		token := m.expectAuth(clientCaller)

		rr := serve(h, http.MethodPut, "/api/requests/5", `{"request_status":"Completed"}`, token)

		require.Equal(t, http.StatusForbidden, rr.Code)
		body := rr.Body.String()
		assert.Equal(t, string(models.RoleClient), gjson.Get(body, "user_role").String())
		assert.Equal(t, int64(len(service.RequestUpdateRoles)), gjson.Get(body, "required_roles.#").Int())
	})

	t.Run("invalid date", func(t *testing.T) {
		h, m := newTestHandler(t)
		token := m.expectAuth(managerCaller)

		rr := serve(h, http.MethodPut, "/api/requests/5", `{"completion_date":"14.03.2026"}`, token)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestDeleteRequest(t *testing.T) {
	t.Run("manager deletes", func(t *testing.T) {
		h, m := newTestHandler(t)
		token := m.expectAuth(managerCaller)
		m.requests.EXPECT().DeleteRequest(gomock.Any(), managerCaller, int64(5)).Return(nil)

		rr := serve(h, http.MethodDelete, "/api/requests/5", "", token)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message":"Request deleted successfully","request_id":5}`, rr.Body.String())
	})

	t.Run("missing request", func(t *testing.T) {
		h, m := newTestHandler(t)
		token := m.expectAuth(managerCaller)
		m.requests.EXPECT().DeleteRequest(gomock.Any(), managerCaller, int64(404)).
			Return(fmt.Errorf("delete request: %w", store.ErrRequestNotFound))

		rr := serve(h, http.MethodDelete, "/api/requests/404", "", token)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, store.ErrRequestNotFound.Error(), gjson.Get(rr.Body.String(), "error").String())
	})
}
