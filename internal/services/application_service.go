package services

import (
	"strings"

	"gorm.io/gorm"

	"careers-portal-backend/internal/dtos"
	"careers-portal-backend/internal/models"
)

// ApplicationService owns all database access for applications. Every
// query is scoped to a single user_id; this is the access-control
// boundary at the data layer.
type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

// Create inserts one application row for the owner and returns it with
// the generated id.
func (s *ApplicationService) Create(userID uint, form *dtos.ApplicationForm) (*models.Application, error) {
	app := form.ToModel(userID)
	if err := s.DB.Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// ListOptions carries pagination and sorting for ListByUser.
type ListOptions struct {
	Page  int
	Limit int
	Sort  string // "column:asc|desc"
}

// Sortable columns. Anything else silently falls back to
// created_at descending -- never an error, never an arbitrary column.
var allowedSortColumns = map[string]bool{
	"created_at":           true,
	"updated_at":           true,
	"first_name":           true,
	"last_name":            true,
	"position_applied_for": true,
	"expected_salary":      true,
}

// ListByUser returns one page of the user's applications. Page is
// 1-indexed and clamped to >= 1; limit is clamped to [1, 100].
func (s *ApplicationService) ListByUser(userID uint, opts ListOptions) ([]models.Application, error) {
	page, limit := ClampPage(opts.Page), ClampLimit(opts.Limit)
	orderCol, orderDir := parseSort(opts.Sort)

	var apps []models.Application
	err := s.DB.
		Where("user_id = ?", userID).
		Order(orderCol + " " + orderDir).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&apps).Error
	return apps, err
}

// CountByUser returns the user's total application count.
func (s *ApplicationService) CountByUser(userID uint) (int64, error) {
	var total int64
	err := s.DB.Model(&models.Application{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}

// OwnsResume reports whether one of the user's applications references
// the given stored filename. Used to gate resume downloads.
func (s *ApplicationService) OwnsResume(userID uint, filename string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Application{}).
		Where("user_id = ? AND resume_path = ?", userID, filename).
		Count(&count).Error
	return count > 0, err
}

// ClampPage keeps pages 1-indexed.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampLimit bounds the page size to [1, 100], defaulting to 20.
func ClampLimit(limit int) int {
	if limit < 1 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func parseSort(sort string) (column, direction string) {
	column, direction = "created_at", "DESC"

	parts := strings.SplitN(sort, ":", 2)
	if allowedSortColumns[parts[0]] {
		column = parts[0]
		if len(parts) == 2 && strings.EqualFold(parts[1], "asc") {
			direction = "ASC"
		}
	}
	return column, direction
}
