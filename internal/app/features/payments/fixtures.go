package payments

import (
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/domain/models"
)

var sampleSummary = viewload.NewFixture(models.PaymentSummary{
	AccountBalance:   3987550,
	BalanceGrowth:    "23.4%",
	BalanceUsers:     123,
	MonthlyVolume:    1987550,
	MonthlyGrowth:    "15.2%",
	MonthlyUsers:     50,
	DailyVolume:      800000,
	DailyGrowth:      "-10.4%",
	DailyUsers:       -50,
	In:               800908,
	Out:              200908,
	Successful:       162,
	Failed:           5,
	Refunds:          2,
	TotalTransaction: 169,
})

var sampleInflow = viewload.NewFixture(
	models.Inflow{Name: "Rakeem Arinze", OrderID: "90543", Address: "32, Olaopade street, Alakuko", Service: "Babysitting", Hours: 6, Date: "27/09/25", Amount: 30000, Type: "Transfer", Status: "Successful"},
	models.Inflow{Name: "Rakeem Arinze", OrderID: "90544", Address: "12, Alagbado street, Ikeja", Service: "Tutoring", Hours: 4, Date: "29/09/25", Amount: 15000, Type: "Transfer", Status: "Pending"},
)

var sampleOutflow = viewload.NewFixture(
	models.Outflow{Provider: "Rakeem Arinze", ServiceID: "90543", Address: "32, Olaopade street, Alakuko", Service: "Errand", Hours: 6, Date: "27/09/25", Amount: 30000, Status: "Successful"},
	models.Outflow{Provider: "Rakeem Arinze", ServiceID: "90544", Address: "14, Ajayi street, Agege", Service: "Bricklayer", Hours: 6, Date: "28/09/25", Amount: 20000, Status: "Pending"},
)
