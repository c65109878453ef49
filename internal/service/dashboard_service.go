package service

import (
	"time"

	"go-bizbook/internal/model"

	"gorm.io/gorm"
)

// DashboardStats summarizes one user's books.
type DashboardStats struct {
	TotalProducts   int64   `json:"total_products"`
	LowStockCount   int64   `json:"low_stock_count"`
	TotalSales      int64   `json:"total_sales"`
	SalesTotal      float64 `json:"sales_total"`
	IncomeTotal     float64 `json:"income_total"`
	RemittanceTotal float64 `json:"remittance_total"`
}

type DashboardService interface {
	GetStats(userID uint, startDate, endDate time.Time) (*DashboardStats, error)
}

type dashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) DashboardService {
	return &dashboardService{db: db}
}

const lowStockThreshold = 10

func (s *dashboardService) GetStats(userID uint, startDate, endDate time.Time) (*DashboardStats, error) {
	var stats DashboardStats

	if err := s.db.Model(&model.Product{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&model.Product{}).
		Where("user_id = ? AND stock < ?", userID, lowStockThreshold).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&model.Sale{}).
		Where("user_id = ? AND sale_date BETWEEN ? AND ?", userID, startDate, endDate).
		Count(&stats.TotalSales).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&model.Sale{}).
		Where("user_id = ? AND sale_date BETWEEN ? AND ?", userID, startDate, endDate).
		Select("COALESCE(SUM(total_sale_price), 0)").
		Scan(&stats.SalesTotal).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&model.Income{}).
		Where("user_id = ? AND income_date BETWEEN ? AND ?", userID, startDate, endDate).
		Select("COALESCE(SUM(amount - discount), 0)").
		Scan(&stats.IncomeTotal).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&model.Remittance{}).
		Where("user_id = ? AND remittance_date BETWEEN ? AND ?", userID, startDate, endDate).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.RemittanceTotal).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
