package services

import (
	"eventuras/internal/domain"
)

type accessControlService struct{}

// NewAccessControlService creates the access control service.
func NewAccessControlService() domain.AccessControlService {
	return &accessControlService{}
}

// ownerMayEdit holds the registration statuses in which the owning user may
// still edit without an elevated role.
var ownerMayEdit = map[domain.RegistrationStatus]bool{
	domain.StatusDraft:       true,
	domain.StatusWaitingList: true,
}

func (s *accessControlService) CheckReadRegistration(p *domain.Principal, reg *domain.Registration) error {
	if p == nil || reg == nil {
		return domain.ErrNotAccessible
	}
	if p.IsAdminOf(reg.OrganizationID) {
		return nil
	}
	if reg.UserID == p.UserID {
		return nil
	}
	return domain.ErrNotAccessible
}

func (s *accessControlService) CheckUpdateRegistration(p *domain.Principal, reg *domain.Registration) error {
	if p == nil || reg == nil {
		return domain.ErrNotAccessible
	}
	if p.IsAdminOf(reg.OrganizationID) {
		return nil
	}
	if reg.UserID == p.UserID && ownerMayEdit[reg.Status] {
		return nil
	}
	return domain.ErrNotAccessible
}

func (s *accessControlService) CheckReadOrder(p *domain.Principal, order *domain.Order, reg *domain.Registration) error {
	if p == nil || order == nil {
		return domain.ErrNotAccessible
	}
	if p.IsAdminOf(order.OrganizationID) {
		return nil
	}
	if reg != nil && reg.UserID == p.UserID {
		return nil
	}
	return domain.ErrNotAccessible
}

func (s *accessControlService) CheckUpdateOrder(p *domain.Principal, order *domain.Order, reg *domain.Registration) error {
	if p == nil || order == nil {
		return domain.ErrNotAccessible
	}
	if p.IsAdminOf(order.OrganizationID) {
		return nil
	}
	if reg != nil && reg.UserID == p.UserID && ownerMayEdit[reg.Status] && order.Status == domain.OrderDraft {
		return nil
	}
	return domain.ErrNotAccessible
}

func (s *accessControlService) RequireOrgAdmin(p *domain.Principal, orgID int) error {
	if !p.IsAdminOf(orgID) {
		return domain.ErrNotAccessible
	}
	return nil
}
