package service

import (
	"context"
	"fmt"

	"bloom-market/internal/model"
	"bloom-market/internal/repository"
	"bloom-market/internal/validate"

	"github.com/rs/zerolog"
)

// customerService implements CustomerService.
type customerService struct {
	customerRepo repository.CustomerRepository
	logger       zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo repository.CustomerRepository, logger zerolog.Logger) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		logger:       logger.With().Str("service", "customer").Logger(),
	}
}

// Prefill looks up a customer by normalized identity. A miss is not an
// error; the handler renders it as a JSON null.
func (s *customerService) Prefill(ctx context.Context, req *model.PrefillRequest) (*model.PrefillResponse, error) {
	email := validate.NormalizeEmail(req.Email)
	phone := validate.NormalizePhone(req.Phone)

	customer, err := s.customerRepo.FindByIdentity(ctx, email, phone)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to look up customer")
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	if customer == nil {
		s.logger.Debug().Str("email", email).Msg("no customer to prefill")
		return nil, nil
	}

	resp := &model.PrefillResponse{
		Email:    customer.Email,
		Phone:    customer.Phone,
		Timezone: customer.Timezone,
	}
	if resp.Timezone == "" {
		resp.Timezone = model.DefaultTimezone
	}
	if customer.Name != "" {
		resp.Name = &customer.Name
	}
	if customer.DefaultAddress != "" {
		resp.DefaultAddress = &customer.DefaultAddress
	}

	return resp, nil
}
