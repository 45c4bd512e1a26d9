package reports

import "github.com/angelmondragon/stockdesk/pkg/flex"

const bucketSelection = "periodStart periodEnd totalRevenue orderCount averageOrderValue totalQuantity " +
	"productQuantities { productId productName quantity }"

type productQuantityRecord struct {
	ProductID   *flex.Int `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    flex.Int  `json:"quantity"`
}

type bucketRecord struct {
	PeriodStart       flex.Time               `json:"periodStart"`
	PeriodEnd         flex.Time               `json:"periodEnd"`
	TotalRevenue      flex.Money              `json:"totalRevenue"`
	OrderCount        flex.Int                `json:"orderCount"`
	AverageOrderValue flex.Money              `json:"averageOrderValue"`
	TotalQuantity     flex.Int                `json:"totalQuantity"`
	ProductQuantities []productQuantityRecord `json:"productQuantities"`
}
