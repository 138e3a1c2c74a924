// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-repair-desk/internal/config"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/service"
	"github.com/MKhiriev/go-repair-desk/internal/store"
	"github.com/MKhiriev/go-repair-desk/models"
)

type desk struct {
	services *service.Services
	storages *store.Storages
	manager  models.Caller
}

func newDesk(t *testing.T) desk {
	t.Helper()
	ctx := context.Background()

	cfg := config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "e2e-key",
			TokenIssuer:   "repair-desk-e2e",
			TokenDuration: time.Hour,
			BcryptCost:    bcrypt.MinCost,
			Version:       "e2e",
		},
		Storage: config.Storage{DB: config.DB{Driver: config.DriverSQLite, DSN: ":memory:"}},
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	services, err := service.NewServices(storages, cfg, service.Dependencies{}, logger.Nop())
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("root-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	manager, err := storages.UserRepository.CreateUser(ctx, models.User{
		FullName: "Head Manager", Phone: "100", Login: "manager", Password: string(hash), Role: models.RoleManager,
	})
	require.NoError(t, err)

	return desk{
		services: services,
		storages: storages,
		manager:  models.Caller{UserID: manager.UserID, Login: manager.Login, Role: manager.Role},
	}
}

func (d desk) login(t *testing.T, login, password string) models.Caller {
	t.Helper()
	_, token, err := d.services.AuthService.Login(context.Background(), login, password)
	require.NoError(t, err)

	verified, err := d.services.AuthService.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	caller, err := models.CallerFromClaims(&verified.Claims)
	require.NoError(t, err)
	return caller
}

func TestScenario_RegisterLoginCreateAndList(t *testing.T) {
	d := newDesk(t)
	ctx := context.Background()

	alice, err := d.services.UserService.CreateUser(ctx, d.manager, models.CreateUserInput{
		FullName: "Alice", Phone: "555", Login: "alice", Password: "secret1",
	})
	require.NoError(t, err)

	caller := d.login(t, "alice", "secret1")
	assert.Equal(t, alice.UserID, caller.UserID)

	created, err := d.services.RequestService.CreateRequest(ctx, caller, models.CreateRequestInput{
		EquipmentType:      "Refrigerator",
		EquipmentModel:     "X1",
		ProblemDescription: "No cooling",
		ClientID:           caller.UserID,
	})
	require.NoError(t, err)

	page, err := d.services.RequestService.ListRequests(ctx, caller, models.RequestQuery{Status: "New"})
	require.NoError(t, err)

	var matches []models.RepairRequest
	for _, r := range page.Data {
		if r.RequestID == created.RequestID {
			matches = append(matches, r)
		}
	}
	require.Len(t, matches, 1)
	assert.Equal(t, models.StatusNew, matches[0].Status)
	assert.Equal(t, models.NewDate(time.Now()), matches[0].StartDate)
	assert.Equal(t, int64(1), page.Pagination.Total)

	_, err = d.services.UserService.CreateUser(ctx, d.manager, models.CreateUserInput{
		FullName: "Alice Again", Phone: "556", Login: "alice", Password: "secret2",
	})
	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)

	all, err := d.services.UserService.ListUsers(ctx, d.manager)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestScenario_StoredHashLoginKeepsRealPassword(t *testing.T) {
	d := newDesk(t)
	ctx := context.Background()

	alice, err := d.services.UserService.CreateUser(ctx, d.manager, models.CreateUserInput{
		FullName: "Alice", Phone: "555", Login: "alice", Password: "secret1",
	})
	require.NoError(t, err)

	stored, err := d.storages.UserRepository.GetUserByID(ctx, alice.UserID)
	require.NoError(t, err)

	_, _, err = d.services.AuthService.Login(ctx, "alice", stored.Password)
	require.NoError(t, err)

	caller := d.login(t, "alice", "secret1")
	assert.Equal(t, alice.UserID, caller.UserID)

	after, err := d.storages.UserRepository.GetUserByID(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, stored.Password, after.Password)
}

func TestScenario_CompletionUpdatesStatistics(t *testing.T) {
	d := newDesk(t)
	ctx := context.Background()

	client, err := d.services.UserService.CreateUser(ctx, d.manager, models.CreateUserInput{
		FullName: "Bob", Phone: "1", Login: "bob", Password: "secret1",
	})
	require.NoError(t, err)
	specialist, err := d.services.UserService.CreateUser(ctx, d.manager, models.CreateUserInput{
		FullName: "Ivan", Phone: "2", Login: "ivan", Password: "secret1", Role: "Specialist",
	})
	require.NoError(t, err)

	request, err := d.services.RequestService.CreateRequest(ctx, d.manager, models.CreateRequestInput{
		EquipmentType: "Conditioner", EquipmentModel: "TCL", ProblemDescription: "Noise", ClientID: client.UserID,
	})
	require.NoError(t, err)

	completedBefore, err := d.services.StatisticsService.CompletedCount(ctx)
	require.NoError(t, err)
	averageBefore, err := d.services.StatisticsService.AverageCompletionDays(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), averageBefore)

	caller := d.login(t, "ivan", "secret1")
	completion := models.NewDate(request.StartDate.AddDate(0, 0, 3))
	updated, err := d.services.RequestService.UpdateRequest(ctx, caller, request.RequestID, models.UpdateRequestInput{
		Status:         models.Some(string(models.StatusReadyForPickup)),
		MasterID:       models.Some(specialist.UserID),
		CompletionDate: models.Some(completion),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusReadyForPickup, updated.Status)

	completedAfter, err := d.services.StatisticsService.CompletedCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, completedBefore+1, completedAfter)

	averageAfter, err := d.services.StatisticsService.AverageCompletionDays(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), averageAfter)

	workload, err := d.services.StatisticsService.SpecialistWorkload(ctx)
	require.NoError(t, err)
	require.Len(t, workload, 1)
	assert.Equal(t, int64(1), workload[0].TotalAssigned)

	_, err = d.services.CommentService.CreateComment(ctx, caller, models.CreateCommentInput{
		Message: "Fan bearing replaced", RequestID: request.RequestID,
	})
	require.NoError(t, err)

	require.NoError(t, d.services.RequestService.DeleteRequest(ctx, d.manager, request.RequestID))
	_, err = d.services.CommentService.ListComments(ctx, d.manager, request.RequestID)
	assert.ErrorIs(t, err, store.ErrRequestNotFound)
}

func TestScenario_ManagerCannotDeleteThemself(t *testing.T) {
	d := newDesk(t)

	err := d.services.UserService.DeleteUser(context.Background(), d.manager, d.manager.UserID)
	assert.ErrorIs(t, err, service.ErrSelfDeleteForbidden)

	ping := d.services.AppInfoService.Ping(context.Background())
	assert.NoError(t, ping)
}
