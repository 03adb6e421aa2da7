// Package fundnav computes fund analytics out of a cashflow ledger.
//
// The core functionalities include:
//   - Record Validation: normalizing raw spreadsheet rows into immutable
//     CashflowRecords (currency typo correction, closed cashflow types, EUR base).
//   - IRR: the annualized internal rate of return of each local currency, and of
//     the whole fund over base amounts.
//   - NAV Schedule: the present value of the remaining cashflows of a currency at
//     each of its cashflow dates, discounted at the currency IRR.
//   - FX Hedging: forward sales of each foreign currency sized on the NAV
//     expected at the next NAV date.
//
// A Pipeline runs all of them in sequence for a single fund. This package
// serves as the foundational logic for the `fnav` command-line tool.
package fundnav
