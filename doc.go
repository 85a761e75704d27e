// Package hearth models a household's long-horizon financial trajectory:
// historical cash flow, tax liability, retirement-account growth, and
// withdrawal sequencing through end of life.
//
// The core functionalities include:
//   - Streams: binding a year-indexed series to a filtered subset of a
//     transaction or budget feed, with inflation-based projection and
//     manual overrides.
//   - Financial Entities: aggregating named income and expense streams
//     into total income, total expense, and net cash flow.
//   - Individuals and Households: life-stage-aware income modelling,
//     payroll deductions, wage bases, Social Security estimates, and a
//     solver for the joint contribution required to cover shared expenses
//     and taxes.
//   - Portfolios: per-holding forecast matrices tracking compounding
//     growth and cost basis in parallel.
//   - Retirement Scenarios: year-by-year withdrawal simulation across a
//     priority-ordered set of account types, recording capital gains,
//     ordinary income, and shortfalls.
//
// The engine consumes two external data feeds (transactions and budgets)
// through a uniform query interface and a price source for holdings; it is
// otherwise ignorant of where the data came from. This package serves as
// the foundational logic for the `hfp` command-line tool.
package hearth
