package handler

import (
	"context"

	"github.com/hitoshi/medicare/internal/auth"
	"github.com/hitoshi/medicare/internal/contact"
	"github.com/hitoshi/medicare/internal/model"
)

// --- モック定義 ---

type mockAuthService struct {
	signupFn func(ctx context.Context, name, email, password string) (*auth.Result, error)
	loginFn  func(ctx context.Context, email, password string) (*auth.Result, error)
}

func (m *mockAuthService) Signup(ctx context.Context, name, email, password string) (*auth.Result, error) {
	return m.signupFn(ctx, name, email, password)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*auth.Result, error) {
	return m.loginFn(ctx, email, password)
}

type mockDoctorService struct {
	listFn func(ctx context.Context) ([]*model.Doctor, error)
}

func (m *mockDoctorService) List(ctx context.Context) ([]*model.Doctor, error) {
	return m.listFn(ctx)
}

type mockAppointmentService struct {
	createFn func(ctx context.Context, input model.AppointmentInput) (*model.Appointment, error)
	listFn   func(ctx context.Context) ([]model.AppointmentWithDoctor, error)
}

func (m *mockAppointmentService) Create(ctx context.Context, input model.AppointmentInput) (*model.Appointment, error) {
	return m.createFn(ctx, input)
}

func (m *mockAppointmentService) List(ctx context.Context) ([]model.AppointmentWithDoctor, error) {
	return m.listFn(ctx)
}

type mockContactService struct {
	submitFn func(ctx context.Context, input contact.Input) (*model.Contact, error)
}

func (m *mockContactService) Submit(ctx context.Context, input contact.Input) (*model.Contact, error) {
	return m.submitFn(ctx, input)
}

type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) PingContext(context.Context) error {
	return m.err
}
