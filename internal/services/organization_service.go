package services

import (
	"context"
	"strings"

	"memberhub/internal/models"
	"memberhub/internal/repositories"
)

type OrganizationInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type OrganizationService interface {
	List(ctx context.Context) ([]*models.Organization, error)
	Get(ctx context.Context, id int64) (*models.Organization, error)
	Create(ctx context.Context, in OrganizationInput) (*models.Organization, error)
}

type organizationService struct {
	repo repositories.OrganizationRepository
}

func NewOrganizationService(repo repositories.OrganizationRepository) OrganizationService {
	return &organizationService{repo: repo}
}

func (s *organizationService) List(ctx context.Context) ([]*models.Organization, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, dependency("list organizations", err)
	}
	return list, nil
}

func (s *organizationService) Get(ctx context.Context, id int64) (*models.Organization, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo("get organization", err)
	}
	return o, nil
}

func (s *organizationService) Create(ctx context.Context, in OrganizationInput) (*models.Organization, error) {
	o := &models.Organization{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
	}
	if o.Name == "" {
		return nil, required("name")
	}
	if e := strings.TrimSpace(in.Email); e != "" {
		email, err := NormalizeContact(models.ChannelEmail, e)
		if err != nil {
			return nil, err
		}
		o.Email = email
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fromRepo("create organization", err)
	}
	return o, nil
}
