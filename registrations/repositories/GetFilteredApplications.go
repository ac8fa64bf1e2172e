package repositories

import (
	"voter-registration-backend/db/models"

	"gorm.io/gorm"
)

// applicationsQueryBuilder builds queries for application filtering
type applicationsQueryBuilder struct {
	query   *gorm.DB
	filters map[string]string
}

func newApplicationsQueryBuilder(db *gorm.DB, filters map[string]string) *applicationsQueryBuilder {
	return &applicationsQueryBuilder{
		query:   db.Model(&models.Application{}),
		filters: filters,
	}
}

func (aqb *applicationsQueryBuilder) applyBasicApplicationFilters() *applicationsQueryBuilder {
	if status, ok := aqb.filters["status"]; ok {
		aqb.query = aqb.query.Where("status = ?", status)
	}
	if applicationType, ok := aqb.filters["application_type"]; ok {
		aqb.query = aqb.query.Where("application_type = ?", applicationType)
	}
	if applicantID, ok := aqb.filters["applicant_id"]; ok {
		aqb.query = aqb.query.Where("applicant_id = ?", applicantID)
	}
	return aqb
}

func (aqb *applicationsQueryBuilder) applyDateRangeFilter() *applicationsQueryBuilder {
	startDate := aqb.filters["start_date"]
	endDate := aqb.filters["end_date"]

	if startDate != "" && startDate != "null" && endDate != "" && endDate != "null" {
		aqb.query = aqb.query.Where("DATE(submission_date) BETWEEN DATE(?) AND DATE(?)", startDate, endDate)
	}
	return aqb
}

func (aqb *applicationsQueryBuilder) applyLatestOrder() *applicationsQueryBuilder {
	aqb.query = aqb.query.Order("submission_date DESC")
	return aqb
}

func (aqb *applicationsQueryBuilder) Limit(limit int) *applicationsQueryBuilder {
	aqb.query = aqb.query.Limit(limit)
	return aqb
}

func (aqb *applicationsQueryBuilder) Offset(offset int) *applicationsQueryBuilder {
	aqb.query = aqb.query.Offset(offset)
	return aqb
}

// GetFilteredApplications returns filtered applications with pagination.
// Passing paginationEnabled=false returns the full filtered set, which the
// export path uses.
func (r *applicationReaderRepository) GetFilteredApplications(filters map[string]string, paginationEnabled bool, limit, offset int) ([]models.Application, int64, error) {
	aqb := newApplicationsQueryBuilder(r.DB, filters).applyBasicApplicationFilters().applyDateRangeFilter().applyLatestOrder()
	aqb2 := newApplicationsQueryBuilder(r.DB, filters).applyBasicApplicationFilters().applyDateRangeFilter()

	if paginationEnabled {
		aqb = aqb.Limit(limit).Offset(offset)
	}

	var applications []models.Application
	if err := aqb.query.Preload("Applicant").Find(&applications).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := aqb2.query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return applications, total, nil
}
