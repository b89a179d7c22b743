package types

import (
	ierr "github.com/jurisflow/jurisflow/internal/errors"
)

// Permission is a single capability token checked by the authorization
// gate. Tokens are resource-verb pairs plus a few standalone grants.
type Permission string

const (
	PermissionViewMatters     Permission = "view_matters"
	PermissionCreateMatters   Permission = "create_matters"
	PermissionEditMatters     Permission = "edit_matters"
	PermissionDeleteMatters   Permission = "delete_matters"
	PermissionViewClients     Permission = "view_clients"
	PermissionCreateClients   Permission = "create_clients"
	PermissionEditClients     Permission = "edit_clients"
	PermissionDeleteClients   Permission = "delete_clients"
	PermissionViewDocuments   Permission = "view_documents"
	PermissionCreateDocuments Permission = "create_documents"
	PermissionEditDocuments   Permission = "edit_documents"
	PermissionDeleteDocuments Permission = "delete_documents"
	PermissionViewInvoices    Permission = "view_invoices"
	PermissionCreateInvoices  Permission = "create_invoices"
	PermissionEditInvoices    Permission = "edit_invoices"
	PermissionDeleteInvoices  Permission = "delete_invoices"
	PermissionViewEvents      Permission = "view_events"
	PermissionCreateEvents    Permission = "create_events"
	PermissionEditEvents      Permission = "edit_events"
	PermissionDeleteEvents    Permission = "delete_events"
	PermissionViewTasks       Permission = "view_tasks"
	PermissionCreateTasks     Permission = "create_tasks"
	PermissionEditTasks       Permission = "edit_tasks"
	PermissionDeleteTasks     Permission = "delete_tasks"

	PermissionManageUsers     Permission = "manage_users"
	PermissionViewAudit       Permission = "view_audit"
	PermissionManageSettings  Permission = "manage_settings"
	PermissionRecordPayments  Permission = "record_payments"
	PermissionUploadDocuments Permission = "upload_documents"
)

func (p Permission) String() string {
	return string(p)
}

// allPermissions is the closed token set; matrix edits may only use
// tokens the services actually check
var allPermissions = map[Permission]bool{
	PermissionViewMatters: true, PermissionCreateMatters: true, PermissionEditMatters: true, PermissionDeleteMatters: true,
	PermissionViewClients: true, PermissionCreateClients: true, PermissionEditClients: true, PermissionDeleteClients: true,
	PermissionViewDocuments: true, PermissionCreateDocuments: true, PermissionEditDocuments: true, PermissionDeleteDocuments: true,
	PermissionViewInvoices: true, PermissionCreateInvoices: true, PermissionEditInvoices: true, PermissionDeleteInvoices: true,
	PermissionViewEvents: true, PermissionCreateEvents: true, PermissionEditEvents: true, PermissionDeleteEvents: true,
	PermissionViewTasks: true, PermissionCreateTasks: true, PermissionEditTasks: true, PermissionDeleteTasks: true,
	PermissionManageUsers: true, PermissionViewAudit: true, PermissionManageSettings: true,
	PermissionRecordPayments: true, PermissionUploadDocuments: true,
}

func (p Permission) Validate() error {
	if !allPermissions[p] {
		return ierr.NewError("invalid permission").
			WithHint("Invalid permission").
			WithReportableDetails(map[string]any{
				"permission": p,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
