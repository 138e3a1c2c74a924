// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/go-repair-desk/models"

// Role allow-lists shared by the services and the HTTP authorization gate.
var (
	UserAdminRoles = []models.Role{models.RoleManager}

	RequestCreateRoles = []models.Role{
		models.RoleOperator,
		models.RoleSpecialist,
		models.RoleManager,
		models.RoleQualityManager,
		models.RoleClient,
	}

	RequestUpdateRoles = []models.Role{
		models.RoleSpecialist,
		models.RoleManager,
		models.RoleQualityManager,
	}

	RequestDeleteRoles = []models.Role{models.RoleManager}

	CommentCreateRoles = []models.Role{
		models.RoleOperator,
		models.RoleSpecialist,
		models.RoleManager,
		models.RoleQualityManager,
	}
)

// requireRole returns a [ForbiddenError] unless caller holds one of roles.
func requireRole(caller models.Caller, roles ...models.Role) error {
	if caller.Role.In(roles...) {
		return nil
	}
	return forbiddenRole(caller, roles...)
}

// canReadRequest reports whether caller may see request. Clients only see
// their own requests.
func canReadRequest(caller models.Caller, request models.RepairRequest) bool {
	if caller.Role == models.RoleClient {
		return request.ClientID == caller.UserID
	}
	return caller.Role.IsKnown()
}
