package payroll

import (
	"time"

	"github.com/planillapro/planilla-backend-go/internal/domain/contract"
	"github.com/shopspring/decimal"
)

// The first half advances 40% of declared salary, the second half settles the
// remaining 60%. Fixed business policy, not configurable.
var (
	firstHalfShare  = decimal.RequireFromString("0.4")
	secondHalfShare = decimal.RequireFromString("0.6")

	// Fixed proration denominators, regardless of actual days in the month.
	monthlyDenominator = decimal.NewFromInt(30)
	halfDenominator    = decimal.NewFromInt(15)

	// An advance never exceeds 30% of the real salary.
	advanceCapRate = decimal.RequireFromString("0.3")
)

// ResolvePeriods produces the concrete settlement date ranges payroll applies
// to for a year/month under the given payment frequency. Biweekly contracts
// get days 1-15 and day 16 through the true last calendar day.
func ResolvePeriods(freq contract.PayFrequency, year, month int) ([]Period, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, ErrInvalidPeriod
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	switch freq {
	case contract.PayFrequencyMonthly:
		return []Period{{Start: first, End: last, Kind: PeriodMonthly}}, nil
	case contract.PayFrequencyBiweekly:
		mid := time.Date(year, time.Month(month), 15, 0, 0, 0, 0, time.UTC)
		return []Period{
			{Start: first, End: mid, Kind: PeriodFirstHalf},
			{Start: mid.AddDate(0, 0, 1), End: last, Kind: PeriodSecondHalf},
		}, nil
	default:
		return nil, ErrInvalidPeriod
	}
}

// WorkedDays counts the days considered worked between the hire date and the
// period bounds. The count is deliberately day-by-day rather than a closed
// form: the contract with callers is "days considered worked", which may later
// exclude holidays the same way it excludes Sundays.
func WorkedDays(hireDate, periodStart, periodEnd time.Time, includeSundays bool) int {
	if hireDate.After(periodEnd) {
		return 0
	}

	effective := periodStart
	if hireDate.After(periodStart) {
		effective = hireDate
	}

	days := 0
	for d := effective; !d.After(periodEnd); d = d.AddDate(0, 0, 1) {
		if !includeSundays && d.Weekday() == time.Sunday {
			continue
		}
		days++
	}
	return days
}

// NeedsProportional reports whether the hire falls mid-period, which prorates
// the salary for that period.
func NeedsProportional(hireDate, periodStart time.Time) bool {
	return hireDate.After(periodStart)
}

// Aggregate sums adjustment lines into per-channel totals for the requested
// half. A nil half (monthly settlement) takes every line; a line with no
// target half applies unconditionally.
func Aggregate(lines []AdjustmentLine, half *int) ChannelTotals {
	totals := ZeroChannelTotals()
	for _, l := range lines {
		if !l.AppliesTo(half) {
			continue
		}
		v := l.Value()
		if l.Channel == ChannelCash {
			totals.Cash = totals.Cash.Add(v)
		} else {
			totals.Bank = totals.Bank.Add(v)
		}
	}
	return totals
}

// Calculate is the central settlement function: deterministic and state-free,
// recomputing with unchanged inputs reproduces identical output.
//
// diff = real - accounting is the cash-channel base. Monthly settlements pay
// the full bases; quincenal halves pay the 0.4/0.6 shares of each base.
// Mid-period hires prorate the bases by workedDays/30 (monthly) or
// workedDays/15 (per half) before adjustments are applied.
func Calculate(in CalcInput) CalcResult {
	var bankBase, cashBase decimal.Decimal

	switch in.PeriodKind {
	case PeriodFirstHalf, PeriodSecondHalf:
		share := firstHalfShare
		if in.PeriodKind == PeriodSecondHalf {
			share = secondHalfShare
		}
		diff := in.RealSalary.Sub(in.AccountingSalary)
		bankBase = share.Mul(in.AccountingSalary)
		cashBase = share.Mul(diff)
		if in.NeedsProportional {
			wd := decimal.NewFromInt(int64(in.WorkedDays))
			bankBase = bankBase.Mul(wd).Div(halfDenominator)
			cashBase = cashBase.Mul(wd).Div(halfDenominator)
		}
	default:
		acc := in.AccountingSalary
		real := in.RealSalary
		if in.NeedsProportional {
			wd := decimal.NewFromInt(int64(in.WorkedDays))
			acc = acc.Mul(wd).Div(monthlyDenominator)
			real = real.Mul(wd).Div(monthlyDenominator)
		}
		bankBase = acc
		cashBase = real.Sub(acc)
	}

	bank := bankBase.
		Add(in.Additionals.Bank).
		Add(in.Campaign.Bank).
		Sub(in.Discounts.Bank).
		Sub(in.Loan.Bank)
	cash := cashBase.
		Add(in.Additionals.Cash).
		Add(in.Campaign.Cash).
		Sub(in.Discounts.Cash).
		Sub(in.Loan.Cash)

	return CalcResult{
		BankTransferAmount: bank,
		CashAmount:         cash,
		TotalAmount:        bank.Add(cash),
		WorkedDays:         in.WorkedDays,
		NeedsProportional:  in.NeedsProportional,
		AdditionalsTotal:   in.Additionals.Total(),
		DiscountsTotal:     in.Discounts.Total().Add(in.Loan.Total()),
		CampaignTotal:      in.Campaign.Total(),
	}
}

// AdvanceCeilingInput carries the figures the advance ceiling is computed
// from. RegularDiscounts excludes existing advance lines so an advance being
// replaced does not shrink its own ceiling.
type AdvanceCeilingInput struct {
	AccountingSalary decimal.Decimal
	RealSalary       decimal.Decimal
	Monthly          bool
	Half             *int
	Additionals      ChannelTotals
	RegularDiscounts ChannelTotals
	Channel          *Channel
}

// AdvanceCeiling computes the maximum salary advance per channel:
// min(base salary share + additionals - regular discounts, 30% of real
// salary), never negative. Monthly contracts use half of each channel share;
// quincenal halves use their 0.4/0.6 share. A nil channel returns the
// combined ceiling over both channels.
func AdvanceCeiling(in AdvanceCeilingInput) decimal.Decimal {
	diff := in.RealSalary.Sub(in.AccountingSalary)

	var bankBase, cashBase decimal.Decimal
	switch {
	case in.Monthly:
		two := decimal.NewFromInt(2)
		bankBase = in.AccountingSalary.Div(two)
		cashBase = diff.Div(two)
	case in.Half != nil && *in.Half == 2:
		bankBase = secondHalfShare.Mul(in.AccountingSalary)
		cashBase = secondHalfShare.Mul(diff)
	case in.Half != nil:
		bankBase = firstHalfShare.Mul(in.AccountingSalary)
		cashBase = firstHalfShare.Mul(diff)
	default:
		bankBase = in.AccountingSalary
		cashBase = diff
	}

	limit := advanceCapRate.Mul(in.RealSalary)
	bank := clampCeiling(bankBase.Add(in.Additionals.Bank).Sub(in.RegularDiscounts.Bank), limit)
	cash := clampCeiling(cashBase.Add(in.Additionals.Cash).Sub(in.RegularDiscounts.Cash), limit)

	if in.Channel != nil {
		if *in.Channel == ChannelCash {
			return cash
		}
		return bank
	}
	return bank.Add(cash)
}

func clampCeiling(v, limit decimal.Decimal) decimal.Decimal {
	if v.GreaterThan(limit) {
		v = limit
	}
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
