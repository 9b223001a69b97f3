// Package moneybook provides the types and operations for managing a
// personal money book. It is designed to be local-first and auditable,
// keeping the user's financial data in plain files under their control.
//
// The core functionalities include:
//   - Bank Accounts: Saving accounts (with income and monthly recurring
//     transactions) and investment accounts (with a bond holding), each
//     carrying an ordered transaction ledger and a running balance.
//   - Credit Cards: Monthly spending limits, unpaid and paid expenditure
//     ledgers, and a bill cycle settled from a bank account with a cash
//     rebate.
//   - Savings Goals: Target amounts tracked against the balance of a tied
//     saving account.
//   - Data Persistence: Encoding and decoding the whole profile to and
//     from human-readable CSV files, tolerating partial corruption on
//     load.
//
// This package serves as the foundational logic for the `mbk` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package moneybook
