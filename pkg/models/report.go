package models

import (
	"time"

	"github.com/angelmondragon/stockdesk/pkg/enums"
)

// ProductQuantity is how many units of one product a bucket sold.
type ProductQuantity struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// RevenueBucket aggregates revenue over one period. Number is the 1-based position in its series.
type RevenueBucket struct {
	Period                 enums.ReportPeriod `json:"period"`
	Number                 int                `json:"number"`
	PeriodStart            time.Time          `json:"periodStart"`
	PeriodEnd              time.Time          `json:"periodEnd"`
	TotalRevenueMinor      int64              `json:"totalRevenue"`
	OrderCount             int                `json:"orderCount"`
	AverageOrderValueMinor int64              `json:"averageOrderValue"`
	TotalQuantity          int                `json:"totalQuantity"`
	ProductQuantities      []ProductQuantity  `json:"productQuantities"`
}
