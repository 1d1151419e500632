package finance

import (
	"github.com/shopspring/decimal"
)

// CommissionInputs describes a sale and the agent's split arrangement.
type CommissionInputs struct {
	SalePrice      float64
	CommissionRate float64 // percent of sale price
	AgentSplit     float64 // percent of gross commission kept by the agent
	BrokerageFee   float64 // flat fee deducted from the agent's share
}

// CommissionResult is the split, in cents.
type CommissionResult struct {
	Gross          float64 `json:"gross"`
	AgentShare     float64 `json:"agentShare"`
	BrokerageShare float64 `json:"brokerageShare"`
	Net            float64 `json:"net"`
}

var hundred = decimal.NewFromInt(100)

// CommissionSplit divides the gross commission between agent and brokerage
// using decimal arithmetic so that the shares always add back to the gross.
func CommissionSplit(in CommissionInputs) (CommissionResult, error) {
	if err := checkNonNegative("sale price", in.SalePrice); err != nil {
		return CommissionResult{}, err
	}
	if err := checkPercent("commission rate", in.CommissionRate); err != nil {
		return CommissionResult{}, err
	}
	if err := checkPercent("agent split", in.AgentSplit); err != nil {
		return CommissionResult{}, err
	}
	if err := checkNonNegative("brokerage fee", in.BrokerageFee); err != nil {
		return CommissionResult{}, err
	}

	gross := decimal.NewFromFloat(in.SalePrice).
		Mul(decimal.NewFromFloat(in.CommissionRate)).
		Div(hundred).
		Round(2)
	agent := gross.Mul(decimal.NewFromFloat(in.AgentSplit)).Div(hundred).Round(2)
	brokerage := gross.Sub(agent)
	net := agent.Sub(decimal.NewFromFloat(in.BrokerageFee)).Round(2)

	return CommissionResult{
		Gross:          gross.InexactFloat64(),
		AgentShare:     agent.InexactFloat64(),
		BrokerageShare: brokerage.InexactFloat64(),
		Net:            net.InexactFloat64(),
	}, nil
}
