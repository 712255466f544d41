package dashboard

import (
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/domain/catalog"
	"github.com/runpro9ja/adminhub/internal/domain/models"
)

var sampleAnalytics = viewload.NewFixture(models.CompanyAnalytics{})

var sampleAgents = viewload.NewFixture(
	models.Agent{ID: "890221", Name: "Oladejo Nehemiah", Service: "Plumber", Status: "Active", WorkRate: 89},
	models.Agent{ID: "890222", Name: "Oladejo Nehemiah", Service: "Plumber", Status: "Active", WorkRate: 89},
	models.Agent{ID: "890223", Name: "Oladejo Nehemiah", Service: "Plumber", Status: "Active", WorkRate: 89},
	models.Agent{ID: "890224", Name: "Oladejo Nehemiah", Service: "Plumber", Status: "Active", WorkRate: 89},
)

var samplePayments = viewload.NewFixture(
	models.Payment{ID: "1", Name: "Thompson Jacinta", Service: "Lawn nail technician", Amount: 23000, Status: "success"},
	models.Payment{ID: "2", Name: "Musa Bello", Service: "Plumbing repair", Amount: 15500, Status: "success"},
	models.Payment{ID: "3", Name: "Grace Okafor", Service: "Home cleaning", Amount: 12000, Status: "pending"},
)

var sampleShares = viewload.NewFixture(
	catalog.Share{CategoryID: "68eab135001131897a342de4", Name: "Cleaning Services", Count: 31, Percent: 41.9},
	catalog.Share{CategoryID: "68eab133001131897a342dac", Name: "Painting Services", Count: 9, Percent: 12.2},
	catalog.Share{CategoryID: "68eab131001131897a342d85", Name: "Professional Plumbing", Count: 8, Percent: 10.8},
	catalog.Share{CategoryID: "68eab135001131897a342ddb", Name: "Moving Services", Count: 6, Percent: 8.1},
	catalog.Share{CategoryID: "68eab134001131897a342dc9", Name: "Errand Services", Count: 5, Percent: 6.8},
	catalog.Share{CategoryID: "68eab131001131897a342d8f", Name: "Electrical Services", Count: 4, Percent: 5.4},
)

var sampleMonthly = viewload.NewFixture(
	models.TrendPoint{Name: "Jan", Value: 65},
	models.TrendPoint{Name: "Feb", Value: 80},
	models.TrendPoint{Name: "Mar", Value: 30},
	models.TrendPoint{Name: "Apr", Value: 10},
	models.TrendPoint{Name: "May", Value: 5},
	models.TrendPoint{Name: "Jun", Value: 15},
	models.TrendPoint{Name: "Jul", Value: 100},
	models.TrendPoint{Name: "Aug", Value: 100},
	models.TrendPoint{Name: "Sept", Value: 85},
	models.TrendPoint{Name: "Oct", Value: 0},
	models.TrendPoint{Name: "Nov", Value: 0},
	models.TrendPoint{Name: "Dec", Value: 0},
)

var sampleWeekly = viewload.NewFixture(
	models.TrendPoint{Name: "Monday", Value: 0},
	models.TrendPoint{Name: "Tuesday", Value: 75},
	models.TrendPoint{Name: "Wednesday", Value: 100},
	models.TrendPoint{Name: "Thursday", Value: 20},
	models.TrendPoint{Name: "Friday", Value: 10},
	models.TrendPoint{Name: "Saturday", Value: 70},
	models.TrendPoint{Name: "Sunday", Value: 30},
)
