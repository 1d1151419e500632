package finance

import (
	"fmt"
	"math"
	"time"

	"github.com/iwvelando/homecalc/pkg/constants"
	"github.com/iwvelando/homecalc/pkg/datetime"
	"github.com/iwvelando/homecalc/pkg/mathutil"
	"go.uber.org/zap"
)

// SavingsInputs describes a buyer saving toward a down payment.
type SavingsInputs struct {
	TargetHomePrice       float64
	TargetDownPayment     float64
	InsurancePremium      float64 // on the target price at the target down payment
	ClosingCosts          float64
	CashBalance           float64
	FHSABalance           float64
	RRSPBalance           float64
	TimelineYears         int
	AnnualReturn          float64 // percent
	FHSAAnnualLimit       float64
	FHSALifetimeLimit     float64
	MonthlyRRSPCap        float64
	StartDate             string // YYYY-MM; the month before the first contribution
	ProjectionMonthsLimit int
}

// SavingsMonth is one row of the savings projection.
type SavingsMonth struct {
	Month        int     `json:"month"`
	Date         string  `json:"date"`
	FHSA         float64 `json:"fhsa"`
	RRSP         float64 `json:"rrsp"`
	Other        float64 `json:"other"`
	Contribution float64 `json:"contribution"`
	Growth       float64 `json:"growth"`
	Balance      float64 `json:"balance"`
}

// SavingsPlan is the result of planning toward a down payment.
type SavingsPlan struct {
	CurrentSavings        float64        `json:"currentSavings"`
	Shortfall             float64        `json:"shortfall"`
	Months                int            `json:"months"`
	FutureValueOfSavings  float64        `json:"futureValueOfSavings"`
	MonthlySavingsGoal    float64        `json:"monthlySavingsGoal"`
	MonthlyFHSA           float64        `json:"monthlyFhsa"`
	MonthlyRRSP           float64        `json:"monthlyRrsp"`
	MonthlyOther          float64        `json:"monthlyOther"`
	Projection            []SavingsMonth `json:"projection"`
	ProjectedBalance      float64        `json:"projectedBalance"`
	FHSALifetimeRemaining float64        `json:"fhsaLifetimeRemaining"`
	TargetHomePrice       float64        `json:"targetHomePrice"`
	DownPaymentRatio      float64        `json:"downPaymentRatio"` // percent of the target price
	InsurancePremium      float64        `json:"insurancePremium"`
	ClosingCosts          float64        `json:"closingCosts"`
	CashToClose           float64        `json:"cashToClose"` // down payment plus closing costs
}

// SavingsPlanner builds savings plans.
type SavingsPlanner struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewSavingsPlanner creates a planner. A nil logger is replaced by a no-op
// logger.
func NewSavingsPlanner(logger *zap.Logger) *SavingsPlanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SavingsPlanner{logger: logger, now: time.Now}
}

// WithClock makes the planner date projections that have no start date from
// now instead of the wall clock.
func (sp *SavingsPlanner) WithClock(now func() time.Time) *SavingsPlanner {
	if now != nil {
		sp.now = now
	}
	return sp
}

// Plan computes the level monthly contribution that closes the shortfall
// by the end of the timeline and projects the balance month by month.
func (sp *SavingsPlanner) Plan(in SavingsInputs) (SavingsPlan, error) {
	if err := in.validate(); err != nil {
		return SavingsPlan{}, err
	}

	startDate := in.StartDate
	if startDate == "" {
		startDate = sp.now().Format(constants.DateTimeLayout)
	}
	if _, err := time.Parse(constants.DateTimeLayout, startDate); err != nil {
		return SavingsPlan{}, fmt.Errorf("%w: start date %q must use YYYY-MM", ErrInvalidInput, startDate)
	}

	var plan SavingsPlan
	plan.TargetHomePrice = in.TargetHomePrice
	plan.DownPaymentRatio = mathutil.CalculatePercentage(in.TargetDownPayment, in.TargetHomePrice)
	plan.InsurancePremium = in.InsurancePremium
	plan.ClosingCosts = in.ClosingCosts
	plan.CashToClose = in.TargetDownPayment + in.ClosingCosts
	plan.CurrentSavings = in.CashBalance + in.FHSABalance + in.RRSPBalance
	plan.Shortfall = in.TargetDownPayment - plan.CurrentSavings
	plan.Months = in.TimelineYears * constants.MonthsPerYear

	monthlyReturn := percentToDecimal(in.AnnualReturn) / constants.MonthsPerYear
	growthFactor := math.Pow(1+monthlyReturn, float64(plan.Months))
	plan.FutureValueOfSavings = plan.CurrentSavings * growthFactor

	if plan.Shortfall > 0 {
		if monthlyReturn == 0 {
			plan.MonthlySavingsGoal = plan.Shortfall / float64(plan.Months)
		} else {
			plan.MonthlySavingsGoal = plan.Shortfall / ((growthFactor - 1) / monthlyReturn)
		}
	}

	plan.MonthlyFHSA = math.Min(in.FHSAAnnualLimit/constants.MonthsPerYear, plan.MonthlySavingsGoal*constants.SavingsAllocationShare)
	rrspCap := in.MonthlyRRSPCap
	if rrspCap == 0 {
		rrspCap = constants.DefaultMonthlyRRSPCap
	}
	plan.MonthlyRRSP = math.Min(plan.MonthlySavingsGoal*constants.SavingsAllocationShare, rrspCap)
	plan.MonthlyOther = plan.MonthlySavingsGoal - plan.MonthlyFHSA - plan.MonthlyRRSP

	limit := in.ProjectionMonthsLimit
	if limit <= 0 {
		limit = constants.MaxSavingsProjectionMonths
	}
	horizon := plan.Months
	if horizon > limit {
		horizon = limit
	}

	fhsaRoom := math.Inf(1)
	if in.FHSALifetimeLimit > 0 {
		fhsaRoom = math.Max(in.FHSALifetimeLimit-in.FHSABalance, 0)
	}

	balance := plan.CurrentSavings
	plan.Projection = make([]SavingsMonth, 0, horizon)
	for month := 1; month <= horizon; month++ {
		date, err := datetime.OffsetDate(startDate, constants.DateTimeLayout, month)
		if err != nil {
			return SavingsPlan{}, err
		}

		fhsa := math.Min(plan.MonthlyFHSA, fhsaRoom)
		if fhsa < plan.MonthlyFHSA {
			sp.logger.Debug(fmt.Sprintf("%s: FHSA lifetime limit reached, redirecting %.2f to other savings",
				date, plan.MonthlyFHSA-fhsa),
				zap.String("op", "finance.Plan"),
			)
		}
		fhsaRoom -= fhsa

		row := SavingsMonth{
			Month:        month,
			Date:         date,
			FHSA:         fhsa,
			RRSP:         plan.MonthlyRRSP,
			Other:        plan.MonthlySavingsGoal - fhsa - plan.MonthlyRRSP,
			Contribution: plan.MonthlySavingsGoal,
			Growth:       balance * monthlyReturn,
		}
		balance += row.Contribution + row.Growth
		row.Balance = balance
		plan.Projection = append(plan.Projection, row)
	}
	plan.ProjectedBalance = balance
	if !math.IsInf(fhsaRoom, 1) {
		plan.FHSALifetimeRemaining = fhsaRoom
	}

	sp.logger.Debug("computed savings plan",
		zap.String("op", "finance.Plan"),
		zap.Float64("shortfall", plan.Shortfall),
		zap.Float64("monthlyGoal", plan.MonthlySavingsGoal),
		zap.Int("projectedMonths", len(plan.Projection)),
	)
	return plan, nil
}

func (in SavingsInputs) validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"target home price", in.TargetHomePrice},
		{"target down payment", in.TargetDownPayment},
		{"insurance premium", in.InsurancePremium},
		{"closing costs", in.ClosingCosts},
		{"cash balance", in.CashBalance},
		{"FHSA balance", in.FHSABalance},
		{"RRSP balance", in.RRSPBalance},
		{"annual return", in.AnnualReturn},
		{"FHSA annual limit", in.FHSAAnnualLimit},
		{"FHSA lifetime limit", in.FHSALifetimeLimit},
		{"monthly RRSP cap", in.MonthlyRRSPCap},
	} {
		if err := checkNonNegative(v.name, v.val); err != nil {
			return err
		}
	}
	if in.TimelineYears <= 0 {
		return fmt.Errorf("%w: timeline must be positive, got %d years", ErrInvalidInput, in.TimelineYears)
	}
	return nil
}
