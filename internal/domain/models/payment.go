// internal/domain/models/payment.go
package models

// Payment is a row of the dashboard's recent payments list.
type Payment struct {
	ID      FlexString `json:"id"`
	Name    string     `json:"name"`
	Service string     `json:"service"`
	Amount  Amount     `json:"amount"`
	Status  string     `json:"status"`
}

// PaymentSummary backs the summary cards on the payments page.
type PaymentSummary struct {
	AccountBalance   Amount `json:"accountBalance"`
	BalanceGrowth    string `json:"balanceGrowth"`
	BalanceUsers     int    `json:"balanceUsers"`
	MonthlyVolume    Amount `json:"monthlyTransaction"`
	MonthlyGrowth    string `json:"monthlyGrowth"`
	MonthlyUsers     int    `json:"monthlyUsers"`
	DailyVolume      Amount `json:"dailyTransaction"`
	DailyGrowth      string `json:"dailyGrowth"`
	DailyUsers       int    `json:"dailyUsers"`
	In               Amount `json:"in"`
	Out              Amount `json:"out"`
	Successful       int    `json:"successfulTransactions"`
	Failed           int    `json:"failedTransactions"`
	Refunds          int    `json:"refunds"`
	TotalTransaction int    `json:"totalTransactions"`
}

// Inflow is a customer payment into the platform.
type Inflow struct {
	Name    string     `json:"name"`
	OrderID FlexString `json:"orderId"`
	Address string     `json:"address"`
	Service string     `json:"service"`
	Hours   int        `json:"hours"`
	Date    string     `json:"date"`
	Amount  Amount     `json:"amount"`
	Type    string     `json:"type"`
	Status  string     `json:"status"`
}

// Outflow is a payout to a provider.
type Outflow struct {
	Provider  string     `json:"provider"`
	ServiceID FlexString `json:"serviceId"`
	Address   string     `json:"address"`
	Service   string     `json:"service"`
	Hours     int        `json:"hours"`
	Date      string     `json:"date"`
	Amount    Amount     `json:"amount"`
	Status    string     `json:"status"`
}

func (p Payment) Tone() string { return StatusTone(p.Status) }
func (i Inflow) Tone() string { return StatusTone(i.Status) }
func (o Outflow) Tone() string { return StatusTone(o.Status) }
