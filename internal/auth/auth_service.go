// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"github.com/tillhouse/tillhouse/internal/observability"
	"github.com/tillhouse/tillhouse/internal/permission"
	"github.com/tillhouse/tillhouse/pkg/errutil"
)

// DefaultRemoteTimeout bounds the provider and document-store calls a
// single login performs.
const DefaultRemoteTimeout = 10 * time.Second

// Service authenticates employees against the document store and the
// external identity provider.
type Service struct {
	employees EmployeeStore
	provider  IdentityProvider
	audit     AuditRecorder
	logger    *slog.Logger
	timeout   time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithAudit enables best-effort audit recording.
func WithAudit(audit AuditRecorder) Option {
	return func(s *Service) { s.audit = audit }
}

// WithTimeout overrides the per-login remote call budget.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) { s.timeout = timeout }
}

// NewService creates a Service.
func NewService(employees EmployeeStore, provider IdentityProvider, opts ...Option) (*Service, error) {
	if employees == nil {
		return nil, oops.Code("AUTH_INVALID_DEPS").New("employees store is required")
	}
	if provider == nil {
		return nil, oops.Code("AUTH_INVALID_DEPS").New("identity provider is required")
	}
	s := &Service{
		employees: employees,
		provider:  provider,
		logger:    slog.Default(),
		timeout:   DefaultRemoteTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		return nil, oops.Code("AUTH_INVALID_DEPS").New("logger cannot be nil")
	}
	return s, nil
}

// LoginWithEmail authenticates an employee by email through the
// identity provider.
//
// On success the returned employee carries normalized permissions.
// Every authorization-relevant failure (rejected credential, unknown
// email, tenant mismatch) returns ErrAuthenticationFailed with no
// further detail; only transport failures surface as distinct errors.
//
// The loaded record's tenant must equal the tenant the provider
// associated with the identity. On mismatch the provider session is
// signed back out so no half-authenticated state survives, and the
// login fails. This keeps an employee record pasted into the wrong
// tenant's collection from ever being usable.
func (s *Service) LoginWithEmail(ctx context.Context, email, credential string) (*Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	identity, err := s.provider.VerifyCredential(ctx, email, credential)
	if err != nil {
		if errors.Is(err, ErrCredentialRejected) {
			s.deny(ctx, AuditLoginEmail, "", "", "credential rejected")
			return nil, ErrAuthenticationFailed
		}
		observability.RecordLoginAttempt("email", observability.OutcomeError)
		return nil, oops.Code("AUTH_PROVIDER_UNAVAILABLE").
			With("operation", "verify credential").
			Wrap(err)
	}

	employee, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.deny(ctx, AuditLoginEmail, identity.AccountID, "", "no employee record")
			return nil, ErrAuthenticationFailed
		}
		observability.RecordLoginAttempt("email", observability.OutcomeError)
		return nil, oops.Code("AUTH_STORE_FAILED").
			With("operation", "get employee by email").
			Wrap(err)
	}

	employee.NormalizePermissions()

	if employee.TenantID != identity.AccountID {
		if signOutErr := s.provider.SignOut(ctx); signOutErr != nil {
			errutil.LogError(s.logger, "sign-out after tenant mismatch failed", signOutErr)
		}
		s.deny(ctx, AuditLoginEmail, employee.TenantID, employee.ID, "tenant mismatch")
		return nil, ErrAuthenticationFailed
	}

	observability.RecordLoginAttempt("email", observability.OutcomeSuccess)
	s.recordAudit(ctx, NewAuditEntry(employee.TenantID, employee.ID, AuditLoginEmail, AuditOutcomeSuccess, ""))
	return employee, nil
}

// Resume restores the employee for an already-active provider session,
// as on application relaunch. It performs the same tenant cross-check
// as LoginWithEmail and fails with ErrAuthenticationFailed when no
// session is active, the record is missing, or the tenant mismatches.
func (s *Service) Resume(ctx context.Context) (*Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	identity, err := s.provider.CurrentIdentity(ctx)
	if err != nil {
		return nil, oops.Code("AUTH_PROVIDER_UNAVAILABLE").
			With("operation", "current identity").
			Wrap(err)
	}
	if identity == nil {
		return nil, ErrAuthenticationFailed
	}

	employee, err := s.employees.GetByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, oops.Code("AUTH_STORE_FAILED").
			With("operation", "get employee by email").
			Wrap(err)
	}

	employee.NormalizePermissions()

	if employee.TenantID != identity.AccountID {
		if signOutErr := s.provider.SignOut(ctx); signOutErr != nil {
			errutil.LogError(s.logger, "sign-out after tenant mismatch failed", signOutErr)
		}
		return nil, ErrAuthenticationFailed
	}

	return employee, nil
}

// LoginWithPIN authenticates an employee by id and register PIN.
//
// The PIN comparison is constant-time and the stored value is never
// echoed to the caller. When an admin record carries a delegated
// provider credential, a provider session is additionally established
// best-effort: its failure is logged but the local login stands.
//
// As defense in depth, every normalized instance is re-checked against
// the employee's tenant before the record is returned; instances that
// somehow kept a foreign stamp are dropped.
func (s *Service) LoginWithPIN(ctx context.Context, employeeID, pin string) (*Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Burn a comparison anyway so unknown ids cost the same
			// as wrong PINs.
			verifyPIN(pin, "")
			s.deny(ctx, AuditLoginPIN, "", employeeID, "no employee record")
			return nil, ErrAuthenticationFailed
		}
		observability.RecordLoginAttempt("pin", observability.OutcomeError)
		return nil, oops.Code("AUTH_STORE_FAILED").
			With("operation", "get employee by id").
			Wrap(err)
	}

	if !verifyPIN(pin, employee.PIN) {
		s.deny(ctx, AuditLoginPIN, employee.TenantID, employee.ID, "pin mismatch")
		return nil, ErrAuthenticationFailed
	}

	employee.NormalizePermissions()
	employee.Permissions = s.enforceTenantScope(employee)

	if employee.IsAdmin() && employee.ProviderCredential != "" {
		if _, signInErr := s.provider.VerifyCredential(ctx, employee.Email, employee.ProviderCredential); signInErr != nil {
			s.logger.Warn("best-effort provider sign-in failed after PIN login",
				"employee_id", employee.ID,
				"error", signInErr)
		}
	}

	observability.RecordLoginAttempt("pin", observability.OutcomeSuccess)
	s.recordAudit(ctx, NewAuditEntry(employee.TenantID, employee.ID, AuditLoginPIN, AuditOutcomeSuccess, ""))
	return employee, nil
}

// enforceTenantScope drops normalized instances whose scope does not
// cover the employee's tenant. Normalize already re-stamps, so a
// foreign instance here means a caller bug upstream; drop it anyway
// rather than hand out a cross-tenant grant.
func (s *Service) enforceTenantScope(employee *Employee) []permission.Permission {
	kept := employee.Permissions[:0]
	for _, p := range employee.Permissions {
		if !p.Tenant.Matches(employee.TenantID) {
			s.logger.Warn("dropping cross-tenant permission instance",
				"employee_id", employee.ID,
				"permission_id", p.ID,
				"instance_tenant", string(p.Tenant),
				"employee_tenant", employee.TenantID)
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// verifyPIN compares PINs in constant time. Records without a PIN can
// never authenticate this way.
func verifyPIN(supplied, stored string) bool {
	suppliedSum := sha256.Sum256([]byte(supplied))
	storedSum := sha256.Sum256([]byte(stored))
	match := subtle.ConstantTimeCompare(suppliedSum[:], storedSum[:]) == 1
	return match && stored != ""
}

// deny records a failed login in metrics and the audit log.
func (s *Service) deny(ctx context.Context, action, tenantID, employeeID, detail string) {
	method := "email"
	if action == AuditLoginPIN {
		method = "pin"
	}
	observability.RecordLoginAttempt(method, observability.OutcomeDenied)
	s.recordAudit(ctx, NewAuditEntry(tenantID, employeeID, action, AuditOutcomeDenied, detail))
}

// recordAudit writes an audit entry best-effort.
func (s *Service) recordAudit(ctx context.Context, entry AuditEntry) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		errutil.LogError(s.logger, "audit record failed", err)
	}
}
