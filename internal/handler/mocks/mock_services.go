// Package mocks holds testify mocks for the handler service interfaces,
// laid out the way mockery generates them.
package mocks

import (
	context "context"

	domain "github.com/tradingconf/registration/internal/domain"
	mock "github.com/stretchr/testify/mock"

	service "github.com/tradingconf/registration/internal/service"
)

// MockApplicationServiceInterface is a mock type for the ApplicationServiceInterface type
type MockApplicationServiceInterface struct {
	mock.Mock
}

type MockApplicationServiceInterface_Expecter struct {
	mock *mock.Mock
}

func (_m *MockApplicationServiceInterface) EXPECT() *MockApplicationServiceInterface_Expecter {
	return &MockApplicationServiceInterface_Expecter{mock: &_m.Mock}
}

// Submit provides a mock function with given fields: ctx, id, form, resume
func (_m *MockApplicationServiceInterface) Submit(ctx context.Context, id domain.Identity, form service.ApplicationForm, resume domain.Resume) (*service.SubmitResult, error) {
	ret := _m.Called(ctx, id, form, resume)

	var r0 *service.SubmitResult
	if rf, ok := ret.Get(0).(func(context.Context, domain.Identity, service.ApplicationForm, domain.Resume) *service.SubmitResult); ok {
		r0 = rf(ctx, id, form, resume)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.SubmitResult)
	}

	return r0, ret.Error(1)
}

func (_e *MockApplicationServiceInterface_Expecter) Submit(ctx interface{}, id interface{}, form interface{}, resume interface{}) *mock.Call {
	return _e.mock.On("Submit", ctx, id, form, resume)
}

// Status provides a mock function with given fields: ctx, userID
func (_m *MockApplicationServiceInterface) Status(ctx context.Context, userID string) (bool, error) {
	ret := _m.Called(ctx, userID)
	return ret.Bool(0), ret.Error(1)
}

func (_e *MockApplicationServiceInterface_Expecter) Status(ctx interface{}, userID interface{}) *mock.Call {
	return _e.mock.On("Status", ctx, userID)
}

// NewMockApplicationServiceInterface creates a new instance of MockApplicationServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockApplicationServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockApplicationServiceInterface {
	m := &MockApplicationServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockTeamServiceInterface is a mock type for the TeamServiceInterface type
type MockTeamServiceInterface struct {
	mock.Mock
}

type MockTeamServiceInterface_Expecter struct {
	mock *mock.Mock
}

func (_m *MockTeamServiceInterface) EXPECT() *MockTeamServiceInterface_Expecter {
	return &MockTeamServiceInterface_Expecter{mock: &_m.Mock}
}

// GetTeam provides a mock function with given fields: ctx, userID
func (_m *MockTeamServiceInterface) GetTeam(ctx context.Context, userID string) (*domain.TeamView, error) {
	ret := _m.Called(ctx, userID)

	var r0 *domain.TeamView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.TeamView)
	}

	return r0, ret.Error(1)
}

func (_e *MockTeamServiceInterface_Expecter) GetTeam(ctx interface{}, userID interface{}) *mock.Call {
	return _e.mock.On("GetTeam", ctx, userID)
}

// LeaveTeam provides a mock function with given fields: ctx, userID
func (_m *MockTeamServiceInterface) LeaveTeam(ctx context.Context, userID string) (*service.LeaveResult, error) {
	ret := _m.Called(ctx, userID)

	var r0 *service.LeaveResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.LeaveResult)
	}

	return r0, ret.Error(1)
}

func (_e *MockTeamServiceInterface_Expecter) LeaveTeam(ctx interface{}, userID interface{}) *mock.Call {
	return _e.mock.On("LeaveTeam", ctx, userID)
}

// NewMockTeamServiceInterface creates a new instance of MockTeamServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTeamServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTeamServiceInterface {
	m := &MockTeamServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockInviteServiceInterface is a mock type for the InviteServiceInterface type
type MockInviteServiceInterface struct {
	mock.Mock
}

type MockInviteServiceInterface_Expecter struct {
	mock *mock.Mock
}

func (_m *MockInviteServiceInterface) EXPECT() *MockInviteServiceInterface_Expecter {
	return &MockInviteServiceInterface_Expecter{mock: &_m.Mock}
}

// SendInvite provides a mock function with given fields: ctx, fromUserID, toUserID, teamID
func (_m *MockInviteServiceInterface) SendInvite(ctx context.Context, fromUserID string, toUserID string, teamID int64) (string, error) {
	ret := _m.Called(ctx, fromUserID, toUserID, teamID)
	return ret.String(0), ret.Error(1)
}

func (_e *MockInviteServiceInterface_Expecter) SendInvite(ctx interface{}, fromUserID interface{}, toUserID interface{}, teamID interface{}) *mock.Call {
	return _e.mock.On("SendInvite", ctx, fromUserID, toUserID, teamID)
}

// AcceptInvite provides a mock function with given fields: ctx, userID, inviteID
func (_m *MockInviteServiceInterface) AcceptInvite(ctx context.Context, userID string, inviteID string) (*service.AcceptResult, error) {
	ret := _m.Called(ctx, userID, inviteID)

	var r0 *service.AcceptResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.AcceptResult)
	}

	return r0, ret.Error(1)
}

func (_e *MockInviteServiceInterface_Expecter) AcceptInvite(ctx interface{}, userID interface{}, inviteID interface{}) *mock.Call {
	return _e.mock.On("AcceptInvite", ctx, userID, inviteID)
}

// RejectInvite provides a mock function with given fields: ctx, userID, inviteID
func (_m *MockInviteServiceInterface) RejectInvite(ctx context.Context, userID string, inviteID string) error {
	ret := _m.Called(ctx, userID, inviteID)
	return ret.Error(0)
}

func (_e *MockInviteServiceInterface_Expecter) RejectInvite(ctx interface{}, userID interface{}, inviteID interface{}) *mock.Call {
	return _e.mock.On("RejectInvite", ctx, userID, inviteID)
}

// CancelInvite provides a mock function with given fields: ctx, userID, inviteID
func (_m *MockInviteServiceInterface) CancelInvite(ctx context.Context, userID string, inviteID string) error {
	ret := _m.Called(ctx, userID, inviteID)
	return ret.Error(0)
}

func (_e *MockInviteServiceInterface_Expecter) CancelInvite(ctx interface{}, userID interface{}, inviteID interface{}) *mock.Call {
	return _e.mock.On("CancelInvite", ctx, userID, inviteID)
}

// ListInvites provides a mock function with given fields: ctx, userID
func (_m *MockInviteServiceInterface) ListInvites(ctx context.Context, userID string) (*service.InviteLists, error) {
	ret := _m.Called(ctx, userID)

	var r0 *service.InviteLists
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.InviteLists)
	}

	return r0, ret.Error(1)
}

func (_e *MockInviteServiceInterface_Expecter) ListInvites(ctx interface{}, userID interface{}) *mock.Call {
	return _e.mock.On("ListInvites", ctx, userID)
}

// NewMockInviteServiceInterface creates a new instance of MockInviteServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockInviteServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockInviteServiceInterface {
	m := &MockInviteServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockUserServiceInterface is a mock type for the UserServiceInterface type
type MockUserServiceInterface struct {
	mock.Mock
}

type MockUserServiceInterface_Expecter struct {
	mock *mock.Mock
}

func (_m *MockUserServiceInterface) EXPECT() *MockUserServiceInterface_Expecter {
	return &MockUserServiceInterface_Expecter{mock: &_m.Mock}
}

// Profile provides a mock function with given fields: ctx, userID
func (_m *MockUserServiceInterface) Profile(ctx context.Context, userID string) (*domain.User, error) {
	ret := _m.Called(ctx, userID)

	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}

	return r0, ret.Error(1)
}

func (_e *MockUserServiceInterface_Expecter) Profile(ctx interface{}, userID interface{}) *mock.Call {
	return _e.mock.On("Profile", ctx, userID)
}

// Directory provides a mock function with given fields: ctx, userID, includeTeamed
func (_m *MockUserServiceInterface) Directory(ctx context.Context, userID string, includeTeamed bool) ([]domain.DirectoryUser, error) {
	ret := _m.Called(ctx, userID, includeTeamed)

	var r0 []domain.DirectoryUser
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.DirectoryUser)
	}

	return r0, ret.Error(1)
}

func (_e *MockUserServiceInterface_Expecter) Directory(ctx interface{}, userID interface{}, includeTeamed interface{}) *mock.Call {
	return _e.mock.On("Directory", ctx, userID, includeTeamed)
}

// NewMockUserServiceInterface creates a new instance of MockUserServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockUserServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserServiceInterface {
	m := &MockUserServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
