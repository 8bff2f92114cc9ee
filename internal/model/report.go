package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesStats aggregates checkout totals over a time range
type SalesStats struct {
	TotalSales        int64               `json:"total_sales"`
	TotalRevenue      decimal.Decimal     `json:"total_revenue"`
	AverageOrderValue decimal.Decimal     `json:"average_order_value"`
	ByPaymentMethod   []PaymentMethodStat `json:"by_payment_method"`
	StartDate         time.Time           `json:"start_date"`
	EndDate           time.Time           `json:"end_date"`
}

// PaymentMethodStat is the per-method breakdown of SalesStats
type PaymentMethodStat struct {
	PaymentMethod string          `json:"payment_method"`
	Count         int64           `json:"count"`
	Total         decimal.Decimal `json:"total"`
}
