// AngelaMos | 2026
// service.go

package funnel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/angelamos/agencyhub/internal/core"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) UpsertFunnel(
	ctx context.Context,
	subAccountID string,
	req UpsertFunnelRequest,
) (*Funnel, error) {
	if req.ID != "" {
		existing, err := s.repo.GetFunnel(ctx, req.ID)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.SubAccountID != subAccountID {
			return nil, fmt.Errorf(
				"funnel belongs to another sub account: %w", core.ErrForbidden,
			)
		}
	}

	f := &Funnel{
		ID:            req.ID,
		SubAccountID:  subAccountID,
		Name:          req.Name,
		Description:   req.Description,
		SubDomainName: strings.ToLower(req.SubDomainName),
		Favicon:       req.Favicon,
	}
	if f.ID == "" {
		f.ID = uuid.New().String()
	}

	if err := s.repo.UpsertFunnel(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *Service) GetFunnel(ctx context.Context, id string) (*Funnel, error) {
	return s.repo.GetFunnel(ctx, id)
}

func (s *Service) ListFunnels(
	ctx context.Context,
	subAccountID string,
) ([]Funnel, error) {
	return s.repo.ListFunnels(ctx, subAccountID)
}

func (s *Service) SetPublished(
	ctx context.Context,
	id string,
	published bool,
) error {
	return s.repo.SetPublished(ctx, id, published)
}

func (s *Service) SetLiveProducts(
	ctx context.Context,
	id, products string,
) error {
	return s.repo.SetLiveProducts(ctx, id, products)
}

func (s *Service) DeleteFunnel(ctx context.Context, id string) error {
	return s.repo.DeleteFunnel(ctx, id)
}

// UpsertPage creates a page with the default body tree, or updates an
// existing page's metadata. Content changes go through
// UpdatePageContent.
func (s *Service) UpsertPage(
	ctx context.Context,
	funnelID string,
	req UpsertPageRequest,
) (*Page, error) {
	pathName := normalizePath(req.PathName)

	if req.ID != "" {
		existing, err := s.repo.GetPage(ctx, req.ID)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			if existing.FunnelID != funnelID {
				return nil, fmt.Errorf(
					"page belongs to another funnel: %w", core.ErrForbidden,
				)
			}
			existing.Name = req.Name
			existing.PathName = pathName
			existing.PreviewImage = req.PreviewImage
			if err := s.repo.UpdatePage(ctx, existing); err != nil {
				return nil, err
			}
			return existing, nil
		}
	}

	content, err := json.Marshal(DefaultContent())
	if err != nil {
		return nil, fmt.Errorf("encode default content: %w", err)
	}

	page := &Page{
		ID:           req.ID,
		FunnelID:     funnelID,
		Name:         req.Name,
		PathName:     pathName,
		Content:      string(content),
		PreviewImage: req.PreviewImage,
	}
	if page.ID == "" {
		page.ID = uuid.New().String()
	}

	if err := s.repo.CreatePage(ctx, page); err != nil {
		return nil, err
	}

	return page, nil
}

func (s *Service) GetPage(ctx context.Context, id string) (*Page, error) {
	return s.repo.GetPage(ctx, id)
}

func (s *Service) ListPages(
	ctx context.Context,
	funnelID string,
) ([]Page, error) {
	return s.repo.ListPages(ctx, funnelID)
}

// UpdatePageContent validates the submitted element tree and persists
// it. Invalid trees never reach storage.
func (s *Service) UpdatePageContent(
	ctx context.Context,
	pageID string,
	content Node,
) error {
	if err := ValidateTree(&content); err != nil {
		return err
	}

	encoded, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("encode page content: %w", err)
	}

	return s.repo.UpdatePageContent(ctx, pageID, string(encoded))
}

func (s *Service) ReorderPages(
	ctx context.Context,
	funnelID string,
	req ReorderPagesRequest,
) error {
	seen := make(map[string]bool, len(req.PageIDs))
	for _, id := range req.PageIDs {
		if seen[id] {
			return fmt.Errorf(
				"duplicate page id %s: %w", id, core.ErrInvalidInput,
			)
		}
		seen[id] = true
	}

	return s.repo.ReorderPages(ctx, funnelID, req.PageIDs)
}

func (s *Service) DeletePage(ctx context.Context, id string) error {
	return s.repo.DeletePage(ctx, id)
}

// PublicPage serves the published page for a subdomain and path and
// counts the visit.
func (s *Service) PublicPage(
	ctx context.Context,
	subdomain, path string,
) (*Page, error) {
	page, err := s.repo.ResolvePage(
		ctx, strings.ToLower(subdomain), normalizePath(path),
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementVisits(ctx, page.ID); err != nil {
		// the visit counter must never take a page down
		s.logger.Warn("visit counter update failed",
			slog.String("page_id", page.ID),
			slog.String("error", err.Error()),
		)
	}

	return page, nil
}

func normalizePath(path string) string {
	return strings.Trim(strings.ToLower(path), "/")
}
