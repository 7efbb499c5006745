package models

// YieldRequest is the query accepted by the yield HTTP endpoint.
type YieldRequest struct {
	Ticker     string `query:"ticker" json:"ticker" validate:"required,max=32"`
	InvestDate string `query:"invest_date" json:"invest_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `query:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Format     string `query:"format" json:"format" default:"json" validate:"oneof=json csv"`
}
