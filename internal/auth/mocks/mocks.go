// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

// Package mocks provides testify mocks for the auth ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tillhouse/tillhouse/internal/auth"
)

// testingT is the subset of *testing.T the mock constructors need.
type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockEmployeeStore is a mock of auth.EmployeeStore.
type MockEmployeeStore struct {
	mock.Mock
}

// NewMockEmployeeStore creates a MockEmployeeStore whose expectations
// are asserted at test cleanup.
func NewMockEmployeeStore(t testingT) *MockEmployeeStore {
	m := &MockEmployeeStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// GetByEmail implements auth.EmployeeStore.
func (m *MockEmployeeStore) GetByEmail(ctx context.Context, email string) (*auth.Employee, error) {
	args := m.Called(ctx, email)
	employee, _ := args.Get(0).(*auth.Employee)
	return employee, args.Error(1)
}

// GetByID implements auth.EmployeeStore.
func (m *MockEmployeeStore) GetByID(ctx context.Context, id string) (*auth.Employee, error) {
	args := m.Called(ctx, id)
	employee, _ := args.Get(0).(*auth.Employee)
	return employee, args.Error(1)
}

// Put implements auth.EmployeeStore.
func (m *MockEmployeeStore) Put(ctx context.Context, employee *auth.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

// MockIdentityProvider is a mock of auth.IdentityProvider.
type MockIdentityProvider struct {
	mock.Mock
}

// NewMockIdentityProvider creates a MockIdentityProvider whose
// expectations are asserted at test cleanup.
func NewMockIdentityProvider(t testingT) *MockIdentityProvider {
	m := &MockIdentityProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// VerifyCredential implements auth.IdentityProvider.
func (m *MockIdentityProvider) VerifyCredential(ctx context.Context, email, secret string) (*auth.Identity, error) {
	args := m.Called(ctx, email, secret)
	identity, _ := args.Get(0).(*auth.Identity)
	return identity, args.Error(1)
}

// CurrentIdentity implements auth.IdentityProvider.
func (m *MockIdentityProvider) CurrentIdentity(ctx context.Context) (*auth.Identity, error) {
	args := m.Called(ctx)
	identity, _ := args.Get(0).(*auth.Identity)
	return identity, args.Error(1)
}

// SignOut implements auth.IdentityProvider.
func (m *MockIdentityProvider) SignOut(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockAuditRecorder is a mock of auth.AuditRecorder.
type MockAuditRecorder struct {
	mock.Mock
}

// NewMockAuditRecorder creates a MockAuditRecorder whose expectations
// are asserted at test cleanup.
func NewMockAuditRecorder(t testingT) *MockAuditRecorder {
	m := &MockAuditRecorder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Record implements auth.AuditRecorder.
func (m *MockAuditRecorder) Record(ctx context.Context, entry auth.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// Compile-time interface checks.
var (
	_ auth.EmployeeStore    = (*MockEmployeeStore)(nil)
	_ auth.IdentityProvider = (*MockIdentityProvider)(nil)
	_ auth.AuditRecorder    = (*MockAuditRecorder)(nil)
)
