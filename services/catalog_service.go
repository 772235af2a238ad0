package services

import (
	"context"
	"errors"
	"time"

	"github.com/yeremiapane/service-booking/cache"
	"github.com/yeremiapane/service-booking/models"
	"github.com/yeremiapane/service-booking/utils"
	"gorm.io/gorm"
)

const servicesCacheNamespace = "services-v1"

// ServiceInput is the validated payload for creating or updating a service.
type ServiceInput struct {
	Name        string
	Category    string
	Price       float64
	Description string
}

// CatalogService owns the services table.
type CatalogService struct {
	DB       *gorm.DB
	Cache    cache.Store
	CacheTTL time.Duration
}

func NewCatalogService(db *gorm.DB, store cache.Store, ttl time.Duration) *CatalogService {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &CatalogService{DB: db, Cache: store, CacheTTL: ttl}
}

func ServicesCacheKey(page, perPage int) string {
	return cache.Key(servicesCacheNamespace, cache.P("page", page), cache.P("per_page", perPage))
}

// ListPublic returns one page of active services through the read-through
// cache. The result may lag writes by up to CacheTTL. Links are added per
// call from baseURL and are never part of the cached value.
func (s *CatalogService) ListPublic(ctx context.Context, page, perPage int, baseURL string) (utils.Page[models.ServiceView], cache.Source, error) {
	key := ServicesCacheKey(page, perPage)
	result, src, err := cache.Remember(ctx, s.Cache, key, s.CacheTTL, func(ctx context.Context) (utils.Page[models.ServiceView], error) {
		services, total, err := s.list(ctx, page, perPage, models.ExcludeDeleted)
		if err != nil {
			return utils.Page[models.ServiceView]{}, err
		}
		views := make([]models.ServiceView, 0, len(services))
		for _, svc := range services {
			views = append(views, svc.View())
		}
		return utils.NewPage(views, page, perPage, total), nil
	})
	if err != nil {
		return result, src, err
	}
	return result.WithLinks(baseURL), src, nil
}

// List is the uncached admin listing; scope decides whether tombstoned
// services are shown.
func (s *CatalogService) List(ctx context.Context, page, perPage int, scope models.Scope, baseURL string) (utils.Page[models.Service], error) {
	services, total, err := s.list(ctx, page, perPage, scope)
	if err != nil {
		return utils.Page[models.Service]{}, err
	}
	return utils.Paginate(services, page, perPage, total, baseURL), nil
}

func (s *CatalogService) list(ctx context.Context, page, perPage int, scope models.Scope) ([]models.Service, int64, error) {
	query := func() *gorm.DB {
		return scope.Apply(s.DB.WithContext(ctx).Model(&models.Service{}))
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, utils.StoreError("Error fetching services.", err)
	}

	var services []models.Service
	err := query().Order("created_at ASC").Order("id ASC").
		Limit(perPage).Offset(utils.Offset(page, perPage)).
		Find(&services).Error
	if err != nil {
		return nil, 0, utils.StoreError("Error fetching services.", err)
	}
	return services, total, nil
}

func (s *CatalogService) Get(ctx context.Context, id string, scope models.Scope) (*models.Service, error) {
	if id == "" {
		return nil, utils.NotFound("Service not found.")
	}
	var svc models.Service
	err := scope.Apply(s.DB.WithContext(ctx)).First(&svc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Service not found.")
	}
	if err != nil {
		return nil, utils.StoreError("Error retrieving service.", err)
	}
	return &svc, nil
}

func (s *CatalogService) Create(ctx context.Context, in ServiceInput) (*models.Service, error) {
	svc := models.Service{
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		Description: in.Description,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueService(tx, in.Name, in.Category, ""); err != nil {
			return err
		}
		return tx.Create(&svc).Error
	})
	if err != nil {
		return nil, storeOr(err, "Service creation failed.")
	}
	utils.InfoLogger.Printf("Service created: %s (%s / %s)", svc.ID, svc.Name, svc.Category)
	return &svc, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, in ServiceInput) (*models.Service, error) {
	var svc models.Service
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&svc, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound("Service not found.")
			}
			return err
		}
		if err := ensureUniqueService(tx, in.Name, in.Category, svc.ID); err != nil {
			return err
		}
		svc.Name = in.Name
		svc.Category = in.Category
		svc.Price = in.Price
		svc.Description = in.Description
		return tx.Save(&svc).Error
	})
	if err != nil {
		return nil, storeOr(err, "Service update failed.")
	}
	return &svc, nil
}

// Delete tombstones the service. Its bookings are kept.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Service{})
	if res.Error != nil {
		return utils.StoreError("Service deletion failed.", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFound("Service not found.")
	}
	return nil
}

// Restore clears the tombstone, refusing when an active service already uses
// the same name and category.
func (s *CatalogService) Restore(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := models.OnlyDeleted.Apply(tx).First(&svc, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound("Deleted service not found.")
			}
			return err
		}
		if err := ensureUniqueService(tx, svc.Name, svc.Category, svc.ID); err != nil {
			return err
		}
		svc.DeletedAt = gorm.DeletedAt{}
		return tx.Unscoped().Model(&svc).Update("deleted_at", nil).Error
	})
	if err != nil {
		return nil, storeOr(err, "Service restore failed.")
	}
	return &svc, nil
}

func ensureUniqueService(tx *gorm.DB, name, category, exceptID string) error {
	q := tx.Model(&models.Service{}).Where("name = ? AND category = ?", name, category)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		if exceptID != "" {
			return utils.Conflict("Another service with the same name and category already exists.")
		}
		return utils.Conflict("A service with the same name and category already exists.")
	}
	return nil
}

// storeOr passes AppErrors through and wraps everything else as a store
// failure with message.
func storeOr(err error, message string) error {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return utils.StoreError(message, err)
}
